package provider

import (
	"fmt"

	"quizforge/internal/config"
	"quizforge/internal/domain"

	"go.uber.org/zap"
)

// Build constructs one adapter per enrolled provider name. Enrollment has
// already filtered out providers without credentials, so construction here
// failing is a configuration bug worth surfacing, not skipping.
func Build(names []string, cfg *config.Config, logger *zap.Logger) (map[string]domain.Provider, error) {
	providers := make(map[string]domain.Provider, len(names))
	timeout := cfg.LLM.Timeout

	for _, name := range names {
		switch name {
		case "openai":
			providers[name] = NewOpenAI(cfg.LLM.OpenAI, timeout)
		case "anthropic":
			providers[name] = NewAnthropic(cfg.LLM.Anthropic, timeout)
		case "google":
			providers[name] = NewGoogle(cfg.LLM.Google, timeout)
		case "groq":
			providers[name] = NewGroq(cfg.LLM.Groq, timeout)
		case "cohere":
			providers[name] = NewCohere(cfg.LLM.Cohere, timeout)
		case "mistral":
			providers[name] = NewMistral(cfg.LLM.Mistral, timeout)
		case "ollama":
			p, err := NewOllama(cfg.LLM.Ollama, timeout)
			if err != nil {
				return nil, fmt.Errorf("initialize ollama adapter: %w", err)
			}
			providers[name] = p
		default:
			return nil, fmt.Errorf("no adapter for provider %q", name)
		}
		logger.Info("Provider adapter initialized", zap.String("provider", name))
	}
	return providers, nil
}
