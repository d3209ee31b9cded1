package cli

import (
	"go.uber.org/zap"

	"github.com/codecritic/codecritic/internal/analyzer"
	"github.com/codecritic/codecritic/internal/cache"
	"github.com/codecritic/codecritic/internal/config"
	"github.com/codecritic/codecritic/internal/providers"
	"github.com/codecritic/codecritic/internal/review"
)

// buildEngine assembles the review engine from config: the ordered provider
// chain, the response cache, and the pattern analyzer. Providers without
// credentials are skipped with a warning rather than failing startup — the
// engine degrades to static-only reviews when the chain is empty.
func buildEngine(cfg *config.Config, log *zap.Logger) (*review.Engine, error) {
	var chain []review.Provider
	for _, name := range cfg.Providers.Chain {
		pc, ok := providerConfig(cfg, name)
		if !ok {
			log.Warn("unknown provider in chain, skipping", zap.String("provider", name))
			continue
		}
		if pc.APIKey == "" {
			log.Warn("provider has no credentials, skipping", zap.String("provider", name))
			continue
		}
		p, err := providers.New(name, providers.Options{
			APIKey:        pc.APIKey,
			BaseURL:       pc.BaseURL,
			Model:         pc.Model,
			FallbackModel: pc.FallbackModel,
			MaxAttempts:   cfg.Providers.Retry.MaxAttempts,
			RetryDelay:    cfg.Providers.Retry.Delay(),
		}, log)
		if err != nil {
			log.Warn("failed to build provider, skipping",
				zap.String("provider", name), zap.Error(err))
			continue
		}
		chain = append(chain, p)
	}

	c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
	if err != nil {
		return nil, err
	}

	return review.NewEngine(review.EngineOptions{
		Providers:     chain,
		Analyze:       analyzer.Analyze,
		Cache:         c,
		Logger:        log,
		RedactSecrets: cfg.Privacy.RedactSecrets,
		GitLabBaseURL: cfg.GitLab.BaseURL,
	}), nil
}

func providerConfig(cfg *config.Config, name string) (config.ProviderConfig, bool) {
	switch name {
	case "openai":
		return cfg.Providers.OpenAI, true
	case "huggingface", "hf":
		return cfg.Providers.HuggingFace, true
	default:
		return config.ProviderConfig{}, false
	}
}
