package provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
)

const (
	anthropicBaseURL    = "https://api.anthropic.com/v1"
	anthropicAPIVersion = "2023-06-01"
)

// AnthropicProvider speaks the Anthropic messages API. The system prompt is
// a top-level field rather than a message, unlike the chat-completions shape.
type AnthropicProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewAnthropic(cfg config.ProviderConfig, timeout time.Duration) domain.Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = anthropicBaseURL
	}
	return &AnthropicProvider{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *AnthropicProvider) Name() string {
	return "anthropic"
}

type anthropicRequest struct {
	Model       string        `json:"model"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
	System      string        `json:"system"`
	Messages    []chatMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (p *AnthropicProvider) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (string, error) {
	return p.complete(ctx, quizSystemPrompt, QuizPrompt(req), quizMaxTokens)
}

func (p *AnthropicProvider) ChatResponse(ctx context.Context, req domain.ChatRequest) (string, error) {
	return p.complete(ctx, chatSystemPrompt, ChatPrompt(req), chatMaxTokens)
}

func (p *AnthropicProvider) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	body := anthropicRequest{
		Model:       p.model,
		MaxTokens:   maxTokens,
		Temperature: genTemperature,
		System:      system,
		Messages:    []chatMessage{{Role: "user", Content: user}},
	}

	headers := map[string]string{
		"x-api-key":         p.apiKey,
		"anthropic-version": anthropicAPIVersion,
	}
	var out anthropicResponse
	if err := postJSON(ctx, p.client, p.baseURL+"/messages", headers, body, &out); err != nil {
		return "", domain.NewProviderError(p.Name(), err)
	}
	if len(out.Content) == 0 {
		return "", domain.NewProviderError(p.Name(), errors.New("response contained no content blocks"))
	}
	return out.Content[0].Text, nil
}
