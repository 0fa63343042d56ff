package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/flashquiz/internal/store"

	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration, wrapped so that every
// attempt is recorded in repo and transient failures are retried.
// A nil repo disables the request log.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}

	sel := cfg.Selected()

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(sel)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(sel)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, sel)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(sel)
	case ProviderMock:
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// caller → retry → logging → base
	p := base
	if repo != nil {
		p = WithLogging(p, repo, log)
	}
	return WithRetry(p, cfg.Retry, log), nil
}
