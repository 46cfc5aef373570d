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
	openAIBaseURL  = "https://api.openai.com/v1"
	groqBaseURL    = "https://api.groq.com/openai/v1"
	mistralBaseURL = "https://api.mistral.ai/v1"
)

// chatCompletionsProvider speaks the OpenAI chat-completions wire format,
// which Groq and Mistral expose verbatim. One type, three constructors;
// the adapters stay stateless beyond name, credential, model, and endpoint.
type chatCompletionsProvider struct {
	name    string
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// NewOpenAI creates the OpenAI adapter.
func NewOpenAI(cfg config.ProviderConfig, timeout time.Duration) domain.Provider {
	return newChatCompletions("openai", cfg, openAIBaseURL, timeout)
}

// NewGroq creates the Groq adapter. Groq serves an OpenAI-compatible API,
// so only the endpoint and credential differ.
func NewGroq(cfg config.ProviderConfig, timeout time.Duration) domain.Provider {
	return newChatCompletions("groq", cfg, groqBaseURL, timeout)
}

// NewMistral creates the Mistral adapter, another OpenAI-compatible API.
func NewMistral(cfg config.ProviderConfig, timeout time.Duration) domain.Provider {
	return newChatCompletions("mistral", cfg, mistralBaseURL, timeout)
}

func newChatCompletions(name string, cfg config.ProviderConfig, defaultURL string, timeout time.Duration) domain.Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultURL
	}
	return &chatCompletionsProvider{
		name:    name,
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *chatCompletionsProvider) Name() string {
	return p.name
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionsRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatCompletionsResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (p *chatCompletionsProvider) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (string, error) {
	return p.complete(ctx, quizSystemPrompt, QuizPrompt(req), quizMaxTokens)
}

func (p *chatCompletionsProvider) ChatResponse(ctx context.Context, req domain.ChatRequest) (string, error) {
	return p.complete(ctx, chatSystemPrompt, ChatPrompt(req), chatMaxTokens)
}

func (p *chatCompletionsProvider) complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	body := chatCompletionsRequest{
		Model: p.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: genTemperature,
		MaxTokens:   maxTokens,
	}

	var out chatCompletionsResponse
	headers := map[string]string{"Authorization": "Bearer " + p.apiKey}
	if err := postJSON(ctx, p.client, p.baseURL+"/chat/completions", headers, body, &out); err != nil {
		return "", domain.NewProviderError(p.name, err)
	}
	if len(out.Choices) == 0 {
		return "", domain.NewProviderError(p.name, errors.New("response contained no choices"))
	}
	return out.Choices[0].Message.Content, nil
}
