// Package orchestrator drives a workload request across its fallback chain:
// acquire the provider's rate-limit slot, invoke the adapter, normalize the
// payload for quiz workloads, and move to the next provider on failure.
// Attempts are strictly sequential and strictly in chain order.
package orchestrator

import (
	"context"
	"errors"
	"time"

	"quizforge/internal/domain"
	"quizforge/internal/normalizer"
	"quizforge/internal/ratelimit"
	"quizforge/internal/registry"
	"quizforge/internal/util"

	"go.uber.org/zap"
)

// Orchestrator holds no per-call state; the registry, limiters, and adapter
// map are shared, immutable wiring. Limiters are the only synchronization
// point between concurrent calls.
type Orchestrator struct {
	registry   *registry.Registry
	providers  map[string]domain.Provider
	limiters   map[string]*ratelimit.Limiter
	normalizer *normalizer.Normalizer
	fallback   bool
	logger     *zap.Logger
}

func New(
	reg *registry.Registry,
	providers map[string]domain.Provider,
	limiters map[string]*ratelimit.Limiter,
	norm *normalizer.Normalizer,
	fallbackEnabled bool,
	logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		registry:   reg,
		providers:  providers,
		limiters:   limiters,
		normalizer: norm,
		fallback:   fallbackEnabled,
		logger:     logger,
	}
}

// GenerateQuiz runs the quiz workload across its chain. On success it
// returns the normalized result, the provider that produced it, and the
// attempt log; on failure one typed error.
func (o *Orchestrator) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (domain.QuizResult, string, []domain.Attempt, error) {
	var result domain.QuizResult

	providerName, attempts, err := o.run(ctx, domain.WorkloadQuiz, func(ctx context.Context, p domain.Provider) error {
		raw, err := p.GenerateQuiz(ctx, req)
		if err != nil {
			return err
		}
		parsed, err := o.normalizer.Parse(p.Name(), raw, req.NumQuestions)
		if err != nil {
			return err
		}
		result = parsed
		return nil
	})
	if err != nil {
		return domain.QuizResult{}, "", attempts, err
	}
	return result, providerName, attempts, nil
}

// Chat runs the chat workload across its chain. Replies are opaque strings;
// no normalization applies.
func (o *Orchestrator) Chat(ctx context.Context, req domain.ChatRequest) (string, string, []domain.Attempt, error) {
	var reply string

	providerName, attempts, err := o.run(ctx, domain.WorkloadChat, func(ctx context.Context, p domain.Provider) error {
		r, err := p.ChatResponse(ctx, req)
		if err != nil {
			return err
		}
		reply = r
		return nil
	})
	if err != nil {
		return "", "", attempts, err
	}
	return reply, providerName, attempts, nil
}

// run walks the chain for a workload. Each attempt: rate-limit acquire,
// then the provider call. A failed attempt is recorded and the loop moves
// on unless fallback is disabled, in which case the failure surfaces
// immediately. Context cancellation aborts whichever acquire or call is
// pending.
func (o *Orchestrator) run(ctx context.Context, workload domain.Workload, attempt func(context.Context, domain.Provider) error) (string, []domain.Attempt, error) {
	chain := o.registry.Chain(workload)
	if len(chain) == 0 {
		return "", nil, domain.NewConfigurationError(workload)
	}

	callID := util.NewULID()
	attempts := make([]domain.Attempt, 0, len(chain))

	for _, name := range chain {
		p, ok := o.providers[name]
		if !ok {
			// Chains are built from the same enrollment that built the
			// adapter map, so a missing adapter is a wiring bug.
			return "", attempts, domain.NewInternalError("no adapter for enrolled provider "+name, nil)
		}

		started := time.Now()

		err := o.limiters[name].Acquire(ctx)
		if err == nil {
			err = attempt(ctx, p)
		}
		duration := time.Since(started)

		if err == nil {
			attempts = append(attempts, domain.Attempt{
				Provider:  name,
				StartedAt: started,
				Duration:  duration,
				Outcome:   domain.OutcomeSuccess,
			})
			o.logger.Info("Workload served",
				zap.String("call_id", callID),
				zap.String("workload", string(workload)),
				zap.String("provider", name),
				zap.Duration("duration", duration))
			return name, attempts, nil
		}

		// The caller walked away; stop burning providers on a dead request.
		if ctx.Err() != nil {
			return "", attempts, ctx.Err()
		}

		attempts = append(attempts, domain.Attempt{
			Provider:  name,
			StartedAt: started,
			Duration:  duration,
			Outcome:   outcomeOf(err),
			Err:       err,
		})
		o.logger.Warn("Provider attempt failed",
			zap.String("call_id", callID),
			zap.String("workload", string(workload)),
			zap.String("provider", name),
			zap.String("outcome", string(outcomeOf(err))),
			zap.Duration("duration", duration),
			zap.Error(err))

		if !o.fallback {
			return "", attempts, err
		}
	}

	return "", attempts, domain.NewAggregateError(workload, attempts)
}

func outcomeOf(err error) domain.AttemptOutcome {
	var parseErr *domain.ParseError
	if errors.As(err, &parseErr) {
		return domain.OutcomeParseError
	}
	return domain.OutcomeProviderError
}
