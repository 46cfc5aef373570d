// Package registry holds the static, process-lifetime description of the
// configured providers and the ordered fallback chains per workload. It is
// built once at startup and read-only afterward.
package registry

import (
	"quizforge/internal/config"
	"quizforge/internal/domain"

	"go.uber.org/zap"
)

// Registry is the configuration registry consulted by the orchestrator.
// Providers without a credential are excluded from the chains at build
// time, never at call time.
type Registry struct {
	descriptors map[string]domain.ProviderDescriptor
	chains      map[domain.Workload][]string
}

// Build constructs the registry from the decoded configuration. Chain order
// follows the configured order exactly; names that are unknown or lack a
// credential are dropped with a warning.
func Build(cfg *config.Config, logger *zap.Logger) *Registry {
	descriptors := map[string]domain.ProviderDescriptor{
		"openai":    descriptorFor("openai", cfg.LLM.OpenAI),
		"anthropic": descriptorFor("anthropic", cfg.LLM.Anthropic),
		"google":    descriptorFor("google", cfg.LLM.Google),
		"groq":      descriptorFor("groq", cfg.LLM.Groq),
		"cohere":    descriptorFor("cohere", cfg.LLM.Cohere),
		"mistral":   descriptorFor("mistral", cfg.LLM.Mistral),
		"ollama": {
			Name:              "ollama",
			Model:             cfg.LLM.Ollama.Model,
			CredentialPresent: cfg.LLM.Ollama.ServerURL != "",
			RateLimit: domain.RateLimit{
				MaxRequests: cfg.LLM.Ollama.MaxRequests,
				Window:      cfg.LLM.Ollama.Window,
			},
		},
	}

	r := &Registry{
		descriptors: descriptors,
		chains:      make(map[domain.Workload][]string),
	}
	r.chains[domain.WorkloadQuiz] = r.buildChain(domain.WorkloadQuiz, cfg.LLM.QuizProviders, logger)
	r.chains[domain.WorkloadChat] = r.buildChain(domain.WorkloadChat, cfg.LLM.ChatProviders, logger)
	return r
}

func descriptorFor(name string, pc config.ProviderConfig) domain.ProviderDescriptor {
	return domain.ProviderDescriptor{
		Name:              name,
		Model:             pc.Model,
		CredentialPresent: pc.APIKey != "",
		RateLimit: domain.RateLimit{
			MaxRequests: pc.MaxRequests,
			Window:      pc.Window,
		},
	}
}

func (r *Registry) buildChain(workload domain.Workload, names []string, logger *zap.Logger) []string {
	chain := make([]string, 0, len(names))
	for _, name := range names {
		desc, ok := r.descriptors[name]
		if !ok {
			logger.Warn("Unknown provider in chain, skipping",
				zap.String("workload", string(workload)),
				zap.String("provider", name))
			continue
		}
		if !desc.CredentialPresent {
			logger.Warn("Provider has no credential, excluding from chain",
				zap.String("workload", string(workload)),
				zap.String("provider", name))
			continue
		}
		chain = append(chain, name)
	}
	if len(chain) == 0 {
		logger.Warn("Fallback chain is empty; calls for this workload will fail fast",
			zap.String("workload", string(workload)))
	}
	return chain
}

// Chain returns the ordered provider names for a workload. The returned
// slice must not be mutated.
func (r *Registry) Chain(workload domain.Workload) []string {
	return r.chains[workload]
}

// Descriptor returns the descriptor for a provider name.
func (r *Registry) Descriptor(name string) (domain.ProviderDescriptor, bool) {
	d, ok := r.descriptors[name]
	return d, ok
}

// Enrolled returns the names of all providers that appear in at least one
// chain, without duplicates. Used to decide which adapters and rate
// limiters to construct.
func (r *Registry) Enrolled() []string {
	seen := make(map[string]bool)
	var names []string
	for _, workload := range []domain.Workload{domain.WorkloadQuiz, domain.WorkloadChat} {
		for _, name := range r.chains[workload] {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
