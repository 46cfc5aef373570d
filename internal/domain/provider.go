package domain

import (
	"context"
	"time"
)

// Workload distinguishes the two request types the orchestrator serves.
// Each workload has its own fallback chain.
type Workload string

const (
	WorkloadQuiz Workload = "quiz"
	WorkloadChat Workload = "chat"
)

// Provider is the capability interface every text-generation backend
// implements. Adapters own the vendor wire format end to end: request
// construction, transport, and extraction of the raw text payload.
//
// GenerateQuiz returns the provider's raw textual payload; turning it into
// a QuizResult is the normalizer's job, not the adapter's. ChatResponse
// returns the reply as-is.
type Provider interface {
	Name() string
	GenerateQuiz(ctx context.Context, req QuizRequest) (string, error)
	ChatResponse(ctx context.Context, req ChatRequest) (string, error)
}

// RateLimit is a provider's request budget: at most MaxRequests calls may
// start within any rolling Window.
type RateLimit struct {
	MaxRequests int
	Window      time.Duration
}

// ProviderDescriptor is the static, process-lifetime description of one
// backend. Built once at startup from configuration and never mutated.
type ProviderDescriptor struct {
	Name              string
	Model             string
	CredentialPresent bool
	RateLimit         RateLimit
}

// AttemptOutcome classifies how a single provider attempt ended.
type AttemptOutcome string

const (
	OutcomeSuccess       AttemptOutcome = "success"
	OutcomeProviderError AttemptOutcome = "provider_error"
	OutcomeParseError    AttemptOutcome = "parse_error"
)

// Attempt records one provider attempt within an orchestration call. The
// records live only for the duration of the call and are surfaced to the
// caller for observability and aggregate failure reporting.
type Attempt struct {
	Provider  string
	StartedAt time.Time
	Duration  time.Duration
	Outcome   AttemptOutcome
	Err       error
}
