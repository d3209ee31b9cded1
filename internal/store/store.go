package store

import (
	"context"
	"time"

	"github.com/codecritic/codecritic/internal/review"
)

// Review is one persisted review run: the submission that was reviewed and
// the finished result. Results are written once and never updated.
type Review struct {
	ID         string            `json:"id"`
	Language   string            `json:"language"`
	ReviewType review.ReviewType `json:"reviewType"`
	Code       string            `json:"code"`
	Result     *review.Result    `json:"result"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Store persists finished reviews. The review engine never reads this back;
// only the history endpoints do.
type Store interface {
	CreateReview(ctx context.Context, r *Review) error
	GetReview(ctx context.Context, id string) (*Review, error)
	ListReviews(ctx context.Context, limit int) ([]*Review, error)
	Close() error
}
