package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/normalizer"
	"quizforge/internal/ratelimit"
	"quizforge/internal/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// stubProvider scripts one backend's behavior and counts invocations.
type stubProvider struct {
	name      string
	quizRaw   string
	quizErr   error
	chatReply string
	chatErr   error
	quizCalls int
	chatCalls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (string, error) {
	s.quizCalls++
	if s.quizErr != nil {
		return "", s.quizErr
	}
	return s.quizRaw, nil
}

func (s *stubProvider) ChatResponse(ctx context.Context, req domain.ChatRequest) (string, error) {
	s.chatCalls++
	if s.chatErr != nil {
		return "", s.chatErr
	}
	return s.chatReply, nil
}

func quizJSON(n int) string {
	payload := `{"quiz":[`
	for i := 0; i < n; i++ {
		if i > 0 {
			payload += ","
		}
		payload += fmt.Sprintf(`{"question":"Q%d?","options":["A","B","C","D"],"correct_answer":"A","explanation":"Because."}`, i+1)
	}
	return payload + `]}`
}

// newTestOrchestrator wires stubs behind real registry, limiters, and
// normalizer. Chain order follows the stub order.
func newTestOrchestrator(t *testing.T, fallback bool, stubs ...*stubProvider) *Orchestrator {
	t.Helper()

	cfg := &config.Config{}
	names := make([]string, 0, len(stubs))
	providers := make(map[string]domain.Provider, len(stubs))
	limiters := make(map[string]*ratelimit.Limiter, len(stubs))
	for _, s := range stubs {
		names = append(names, s.name)
		providers[s.name] = s
		limiters[s.name] = ratelimit.New(s.name, domain.RateLimit{MaxRequests: 100, Window: time.Second})

		pc := config.ProviderConfig{APIKey: "test-key", Model: "test-model", MaxRequests: 100, Window: time.Second}
		switch s.name {
		case "openai":
			cfg.LLM.OpenAI = pc
		case "anthropic":
			cfg.LLM.Anthropic = pc
		case "google":
			cfg.LLM.Google = pc
		case "groq":
			cfg.LLM.Groq = pc
		}
	}
	cfg.LLM.QuizProviders = names
	cfg.LLM.ChatProviders = names

	reg := registry.Build(cfg, zap.NewNop())
	norm := normalizer.New(false, zap.NewNop())
	return New(reg, providers, limiters, norm, fallback, zap.NewNop())
}

var testQuizReq = domain.QuizRequest{
	Topic:            "Python Programming",
	Difficulty:       "Medium",
	NumQuestions:     3,
	TimeLimitMinutes: 30,
}

func TestAttemptOrderFollowsConfiguredChain(t *testing.T) {
	a := &stubProvider{name: "groq", quizErr: domain.NewProviderError("groq", errors.New("boom"))}
	b := &stubProvider{name: "google", quizErr: domain.NewProviderError("google", errors.New("boom"))}
	c := &stubProvider{name: "openai", quizRaw: quizJSON(3)}

	o := newTestOrchestrator(t, true, a, b, c)

	_, providerName, attempts, err := o.GenerateQuiz(context.Background(), testQuizReq)
	require.NoError(t, err)
	assert.Equal(t, "openai", providerName)

	require.Len(t, attempts, 3)
	assert.Equal(t, "groq", attempts[0].Provider)
	assert.Equal(t, "google", attempts[1].Provider)
	assert.Equal(t, "openai", attempts[2].Provider)
}

func TestFallbackReturnsSecondProviderResult(t *testing.T) {
	// providerA times out; providerB returns three well-formed questions.
	a := &stubProvider{name: "openai", quizErr: domain.NewProviderError("openai", context.DeadlineExceeded)}
	b := &stubProvider{name: "groq", quizRaw: quizJSON(3)}

	o := newTestOrchestrator(t, true, a, b)

	result, providerName, attempts, err := o.GenerateQuiz(context.Background(), testQuizReq)
	require.NoError(t, err)
	assert.Equal(t, "groq", providerName)
	assert.Len(t, result.Questions, 3)

	require.Len(t, attempts, 2)
	assert.Equal(t, "openai", attempts[0].Provider)
	assert.Equal(t, domain.OutcomeProviderError, attempts[0].Outcome)
	assert.Equal(t, "groq", attempts[1].Provider)
	assert.Equal(t, domain.OutcomeSuccess, attempts[1].Outcome)
}

func TestFallbackDisabledShortCircuits(t *testing.T) {
	a := &stubProvider{name: "openai", quizErr: domain.NewProviderError("openai", errors.New("boom"))}
	b := &stubProvider{name: "groq", quizRaw: quizJSON(3)}

	o := newTestOrchestrator(t, false, a, b)

	_, _, attempts, err := o.GenerateQuiz(context.Background(), testQuizReq)
	require.Error(t, err)

	var provErr *domain.ProviderError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "openai", provErr.Provider)

	assert.Equal(t, 0, b.quizCalls, "second provider must never be invoked")
	assert.Len(t, attempts, 1)
}

func TestExhaustionRaisesAggregateFailure(t *testing.T) {
	a := &stubProvider{name: "openai", quizErr: domain.NewProviderError("openai", errors.New("boom"))}
	b := &stubProvider{name: "groq", quizErr: domain.NewProviderError("groq", errors.New("boom"))}
	c := &stubProvider{name: "google", quizErr: domain.NewProviderError("google", errors.New("boom"))}

	o := newTestOrchestrator(t, true, a, b, c)

	_, _, _, err := o.GenerateQuiz(context.Background(), testQuizReq)
	require.Error(t, err)

	var aggErr *domain.AggregateError
	require.True(t, errors.As(err, &aggErr))
	assert.Len(t, aggErr.Attempts, 3, "attempt list length must equal chain length")
	assert.Equal(t, domain.WorkloadQuiz, aggErr.Workload)
}

func TestMalformedPayloadTriggersFallbackAsParseError(t *testing.T) {
	a := &stubProvider{name: "openai", quizRaw: "Sorry, I cannot help with that."}
	b := &stubProvider{name: "groq", quizRaw: quizJSON(3)}

	o := newTestOrchestrator(t, true, a, b)

	result, providerName, attempts, err := o.GenerateQuiz(context.Background(), testQuizReq)
	require.NoError(t, err)
	assert.Equal(t, "groq", providerName)
	assert.Len(t, result.Questions, 3)
	assert.Equal(t, domain.OutcomeParseError, attempts[0].Outcome)
}

func TestEmptyChainFailsFastWithoutAnyCall(t *testing.T) {
	o := newTestOrchestrator(t, true)

	_, _, attempts, err := o.Chat(context.Background(), domain.ChatRequest{Message: "hello"})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.ErrConfiguration, domainErr.Code)
	assert.Empty(t, attempts)
}

func TestChatWorkloadSkipsNormalization(t *testing.T) {
	a := &stubProvider{name: "google", chatReply: "Great question! Recursion is..."}

	o := newTestOrchestrator(t, true, a)

	reply, providerName, attempts, err := o.Chat(context.Background(), domain.ChatRequest{Message: "What is recursion?"})
	require.NoError(t, err)
	assert.Equal(t, "Great question! Recursion is...", reply)
	assert.Equal(t, "google", providerName)
	require.Len(t, attempts, 1)
	assert.Equal(t, domain.OutcomeSuccess, attempts[0].Outcome)
}

func TestChatFallbackAcrossProviders(t *testing.T) {
	a := &stubProvider{name: "google", chatErr: domain.NewProviderError("google", errors.New("502"))}
	b := &stubProvider{name: "groq", chatReply: "fallback reply"}

	o := newTestOrchestrator(t, true, a, b)

	reply, providerName, _, err := o.Chat(context.Background(), domain.ChatRequest{Message: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "fallback reply", reply)
	assert.Equal(t, "groq", providerName)
	assert.Equal(t, 1, a.chatCalls)
	assert.Equal(t, 1, b.chatCalls)
}

func TestCancellationAbandonsInFlightAttempt(t *testing.T) {
	a := &stubProvider{name: "openai", quizRaw: quizJSON(3)}
	o := newTestOrchestrator(t, true, a)

	// Drain the limiter so the next acquire has to wait, then cancel.
	o.limiters["openai"] = ratelimit.New("openai", domain.RateLimit{MaxRequests: 1, Window: time.Hour})
	require.NoError(t, o.limiters["openai"].Acquire(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, _, _, err := o.GenerateQuiz(ctx, testQuizReq)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, a.quizCalls, "cancelled acquire must not reach the provider")
}

func TestSuccessiveCallsAreIndependent(t *testing.T) {
	a := &stubProvider{name: "openai", quizRaw: quizJSON(3)}
	o := newTestOrchestrator(t, true, a)

	for i := 0; i < 3; i++ {
		_, _, attempts, err := o.GenerateQuiz(context.Background(), testQuizReq)
		require.NoError(t, err)
		assert.Len(t, attempts, 1, "attempt records must not leak across calls")
	}
	assert.Equal(t, 3, a.quizCalls)
}
