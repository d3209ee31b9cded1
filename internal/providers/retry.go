package providers

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/codecritic/codecritic/internal/review"
)

type rateLimitError struct{}

func (e *rateLimitError) Error() string { return "rate limited" }

type quotaError struct {
	message string
}

func (e *quotaError) Error() string { return "quota exhausted: " + e.message }

type authError struct {
	message string
}

func (e *authError) Error() string { return "authentication error: " + e.message }

// IsAuthError checks if an error is an authentication error.
func IsAuthError(err error) bool {
	var ae *authError
	return errors.As(err, &ae)
}

// attemptFunc performs a single model invocation and parses the response.
type attemptFunc func(ctx context.Context, model string) (*review.Result, error)

// runChain applies the shared retry/fallback policy over a primary and an
// optional fallback model.
//
// The budget counts total attempts per model: with budget 2 a model is tried
// at most twice, even if a third attempt would have succeeded. Rate limits
// are retried in place after a fixed delay (no exponential backoff); quota
// and other permanent errors skip straight to the fallback model with the
// attempt counter reset. When both models are exhausted the chain returns
// nil — a provider never partially succeeds.
func runChain(ctx context.Context, log *zap.Logger, provider, primary, fallback string, budget int, delay time.Duration, fn attemptFunc) *review.Result {
	if budget < 1 {
		budget = 1
	}
	models := []string{primary}
	if fallback != "" && fallback != primary {
		models = append(models, fallback)
	}

	for _, model := range models {
	attempts:
		for attempt := 1; attempt <= budget; attempt++ {
			res, err := fn(ctx, model)
			if err == nil {
				return res
			}

			var rle *rateLimitError
			if !errors.As(err, &rle) {
				// Quota, auth, network, or malformed response: retrying the
				// same model cannot help.
				log.Warn("provider attempt failed",
					zap.String("provider", provider),
					zap.String("model", model),
					zap.Error(err))
				break attempts
			}

			log.Info("provider rate limited",
				zap.String("provider", provider),
				zap.String("model", model),
				zap.Int("attempt", attempt),
				zap.Int("budget", budget))

			if attempt < budget {
				select {
				case <-ctx.Done():
					return nil
				case <-time.After(delay):
				}
			}
		}
	}

	log.Warn("provider exhausted all models",
		zap.String("provider", provider),
		zap.Strings("models", models))
	return nil
}
