package providers

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/codecritic/codecritic/internal/review"
)

// Default retry policy shared by all providers. The delay is a constant wait
// between attempts, not a backoff curve.
const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 2 * time.Second
)

// Options configures a provider client.
type Options struct {
	APIKey        string
	BaseURL       string
	Model         string
	FallbackModel string
	MaxAttempts   int
	RetryDelay    time.Duration
}

func (o *Options) applyDefaults() {
	if o.MaxAttempts == 0 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if o.RetryDelay == 0 {
		o.RetryDelay = DefaultRetryDelay
	}
}

// New creates a provider client by name.
func New(provider string, opts Options, log *zap.Logger) (review.Provider, error) {
	switch provider {
	case "openai":
		return NewOpenAI(opts, log)
	case "huggingface", "hf":
		return NewHuggingFace(opts, log)
	default:
		return nil, fmt.Errorf("unknown provider: %s", provider)
	}
}
