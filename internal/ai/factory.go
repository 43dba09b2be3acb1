package ai

import (
	"context"
	"fmt"

	"tripplanner/internal/config"
)

// NewProvider builds the LLMProvider selected by cfg.Provider.
// The returned close func releases provider resources and is never nil.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (LLMProvider, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Provider {
	case config.ProviderGroq, config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.Temperature), noop, nil
	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, noop, err
		}
		return p, p.Close, nil
	default:
		return nil, noop, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
