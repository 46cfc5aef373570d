package provider

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
)

const cohereBaseURL = "https://api.cohere.ai/v1"

// CohereProvider speaks the Cohere chat API: a single message string
// instead of a role-tagged message list, and the reply comes back as a
// top-level text field.
type CohereProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewCohere(cfg config.ProviderConfig, timeout time.Duration) domain.Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = cohereBaseURL
	}
	return &CohereProvider{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *CohereProvider) Name() string {
	return "cohere"
}

type cohereRequest struct {
	Model       string  `json:"model"`
	Message     string  `json:"message"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

type cohereResponse struct {
	Text string `json:"text"`
}

func (p *CohereProvider) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (string, error) {
	return p.chat(ctx, QuizPrompt(req), quizMaxTokens)
}

func (p *CohereProvider) ChatResponse(ctx context.Context, req domain.ChatRequest) (string, error) {
	return p.chat(ctx, ChatPrompt(req), chatMaxTokens)
}

func (p *CohereProvider) chat(ctx context.Context, message string, maxTokens int) (string, error) {
	body := cohereRequest{
		Model:       p.model,
		Message:     message,
		Temperature: genTemperature,
		MaxTokens:   maxTokens,
	}

	headers := map[string]string{"Authorization": "Bearer " + p.apiKey}
	var out cohereResponse
	if err := postJSON(ctx, p.client, p.baseURL+"/chat", headers, body, &out); err != nil {
		return "", domain.NewProviderError(p.Name(), err)
	}
	if strings.TrimSpace(out.Text) == "" {
		return "", domain.NewProviderError(p.Name(), errors.New("response contained no text"))
	}
	return out.Text, nil
}
