package provider

import (
	"context"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

// OllamaProvider talks to a local Ollama server through langchaingo.
// No credential is needed; a configured server URL enrolls it.
type OllamaProvider struct {
	llm     *ollama.LLM
	timeout time.Duration
}

func NewOllama(cfg config.OllamaConfig, timeout time.Duration) (domain.Provider, error) {
	llm, err := ollama.New(
		ollama.WithServerURL(cfg.ServerURL),
		ollama.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, err
	}
	return &OllamaProvider{llm: llm, timeout: timeout}, nil
}

func (p *OllamaProvider) Name() string {
	return "ollama"
}

func (p *OllamaProvider) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (string, error) {
	return p.call(ctx, QuizPrompt(req), quizMaxTokens)
}

func (p *OllamaProvider) ChatResponse(ctx context.Context, req domain.ChatRequest) (string, error) {
	return p.call(ctx, ChatPrompt(req), chatMaxTokens)
}

func (p *OllamaProvider) call(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	response, err := llms.GenerateFromSinglePrompt(ctx, p.llm, prompt,
		llms.WithTemperature(genTemperature),
		llms.WithMaxTokens(maxTokens),
	)
	if err != nil {
		return "", domain.NewProviderError(p.Name(), err)
	}
	return response, nil
}
