package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config is the complete codecritic configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Providers ProvidersConfig `mapstructure:"providers" yaml:"providers"`
	Cache     CacheConfig     `mapstructure:"cache" yaml:"cache"`
	Privacy   PrivacyConfig   `mapstructure:"privacy" yaml:"privacy"`
	GitLab    GitLabConfig    `mapstructure:"gitlab" yaml:"gitlab"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ProvidersConfig holds the ordered provider chain and per-backend settings.
type ProvidersConfig struct {
	Chain       []string       `mapstructure:"chain" yaml:"chain"`
	Retry       RetryConfig    `mapstructure:"retry" yaml:"retry"`
	OpenAI      ProviderConfig `mapstructure:"openai" yaml:"openai"`
	HuggingFace ProviderConfig `mapstructure:"huggingface" yaml:"huggingface"`
}

// ProviderConfig configures one AI backend. The API key is taken from the
// environment, never from the config file.
type ProviderConfig struct {
	APIKey        string `mapstructure:"-" yaml:"-"`
	BaseURL       string `mapstructure:"base_url" yaml:"base_url"`
	Model         string `mapstructure:"model" yaml:"model"`
	FallbackModel string `mapstructure:"fallback_model" yaml:"fallback_model"`
}

// RetryConfig is the fixed-delay retry policy applied per model.
type RetryConfig struct {
	MaxAttempts int `mapstructure:"max_attempts" yaml:"max_attempts"`
	DelayMS     int `mapstructure:"delay_ms" yaml:"delay_ms"`
}

// Delay returns the inter-attempt delay as a duration.
func (r RetryConfig) Delay() time.Duration {
	return time.Duration(r.DelayMS) * time.Millisecond
}

type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled" yaml:"enabled"`
	Dir        string `mapstructure:"dir" yaml:"dir"`
	TTLSeconds int    `mapstructure:"ttl_seconds" yaml:"ttl_seconds"`
}

type PrivacyConfig struct {
	RedactSecrets bool `mapstructure:"redact_secrets" yaml:"redact_secrets"`
}

type GitLabConfig struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
	Token   string `mapstructure:"-" yaml:"-"`
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{Path: "codecritic.db"},
		Providers: ProvidersConfig{
			Chain: []string{"openai", "huggingface"},
			Retry: RetryConfig{MaxAttempts: 3, DelayMS: 2000},
			OpenAI: ProviderConfig{
				Model:         "gpt-4o",
				FallbackModel: "gpt-4o-mini",
			},
			HuggingFace: ProviderConfig{
				Model:         "meta-llama/Llama-3.1-70B-Instruct",
				FallbackModel: "mistralai/Mistral-7B-Instruct-v0.3",
			},
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 86400,
		},
		Privacy: PrivacyConfig{RedactSecrets: true},
		GitLab:  GitLabConfig{BaseURL: "https://gitlab.com/api/v4"},
	}
}

// Load reads configuration from the given YAML file path, falling back to
// .codecritic.yaml in the working directory or $HOME. A missing config file
// is not an error; defaults apply. API keys and tokens are read from the
// environment: OPENAI_API_KEY, HF_API_TOKEN, GITLAB_TOKEN.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".codecritic")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Providers.OpenAI.APIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Providers.HuggingFace.APIKey = os.Getenv("HF_API_TOKEN")
	cfg.GitLab.Token = os.Getenv("GITLAB_TOKEN")

	return cfg, nil
}
