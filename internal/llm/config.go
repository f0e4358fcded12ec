package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderGemini    = "gemini"
	ProviderMock      = "mock"
)

// OpenRouterBaseURL is used when only OPENROUTER_API_KEY is set; OpenRouter
// speaks the OpenAI protocol.
const OpenRouterBaseURL = "https://openrouter.ai/api/v1"

// defaultModels holds the model used when none is configured.
var defaultModels = map[string]string{
	ProviderAnthropic: "claude-haiku",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderGemini:    "gemini-flash",
	ProviderMock:      "mock",
}

// modelAliases maps friendly names to provider model IDs. Unknown names
// pass through unchanged.
var modelAliases = map[string]string{
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"claude-sonnet": "claude-sonnet-4-20250514",
	"gemini-flash":  "gemini-2.0-flash",
	"gemini-pro":    "gemini-2.0-pro",
}

// Config selects and configures one provider.
type Config struct {
	Provider string        `mapstructure:"provider"`
	Model    string        `mapstructure:"model"`
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"` // OpenAI-compatible endpoints only
	Timeout  time.Duration `mapstructure:"timeout"`
	Retry    RetryConfig   `mapstructure:"retry"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// DefaultConfig returns an unconfigured Config with retry and timeout
// defaults filled in.
func DefaultConfig() Config {
	return Config{
		Timeout: 30 * time.Second,
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
	}
}

// ConfigFromEnv reads ADAPTIQUIZ_LLM_* variables over the defaults. When no
// provider is named it falls back to DiscoverConfig.
func ConfigFromEnv() (Config, bool) {
	cfg := DefaultConfig()
	cfg.Provider = os.Getenv("ADAPTIQUIZ_LLM_PROVIDER")
	if cfg.Provider == "" {
		return DiscoverConfig()
	}
	cfg.Model = os.Getenv("ADAPTIQUIZ_LLM_MODEL")
	cfg.APIKey = os.Getenv("ADAPTIQUIZ_LLM_API_KEY")
	cfg.BaseURL = os.Getenv("ADAPTIQUIZ_LLM_BASE_URL")
	return cfg, true
}

// DiscoverConfig probes the vendors' standard API key variables in the
// order Gemini, OpenAI, Anthropic, OpenRouter.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	probes := []struct {
		env, provider, baseURL string
	}{
		{"GEMINI_API_KEY", ProviderGemini, ""},
		{"OPENAI_API_KEY", ProviderOpenAI, ""},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, ""},
		{"OPENROUTER_API_KEY", ProviderOpenAI, OpenRouterBaseURL},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			cfg.APIKey = k
			cfg.BaseURL = p.baseURL
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the provider is known and has a key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini:
		if c.APIKey == "" {
			return fmt.Errorf("an API key is required for the %s provider (set ADAPTIQUIZ_LLM_API_KEY)", c.Provider)
		}
		return nil
	case "":
		return fmt.Errorf("no LLM provider configured")
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}

// ResolvedModel returns the provider model ID for c.
func (c Config) ResolvedModel() string {
	name := c.Model
	if name == "" {
		name = defaultModels[c.Provider]
	}
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}
