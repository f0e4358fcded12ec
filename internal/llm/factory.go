package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// New builds the configured provider wrapped as
// caller → timeout → retry → logging → provider, so every attempt is
// logged and the whole exchange is bounded by cfg.Timeout.
func New(ctx context.Context, cfg Config, rec Recorder, log *zap.SugaredLogger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithTimeout(WithRetry(WithLogging(base, cfg.Provider, rec, log), cfg.Retry), cfg.Timeout), nil
}
