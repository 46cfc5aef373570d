package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"quizforge/internal/config"
	"quizforge/internal/domain"
)

const googleBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// GoogleProvider speaks the Gemini generateContent API. The credential
// travels as a query parameter, not a header.
type GoogleProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewGoogle(cfg config.ProviderConfig, timeout time.Duration) domain.Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = googleBaseURL
	}
	return &GoogleProvider{
		apiKey:  cfg.APIKey,
		model:   cfg.Model,
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *GoogleProvider) Name() string {
	return "google"
}

type googlePart struct {
	Text string `json:"text"`
}

type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googleRequest struct {
	Contents []googleContent `json:"contents"`
}

type googleResponse struct {
	Candidates []struct {
		Content googleContent `json:"content"`
	} `json:"candidates"`
}

func (p *GoogleProvider) GenerateQuiz(ctx context.Context, req domain.QuizRequest) (string, error) {
	return p.generate(ctx, QuizPrompt(req))
}

func (p *GoogleProvider) ChatResponse(ctx context.Context, req domain.ChatRequest) (string, error) {
	return p.generate(ctx, ChatPrompt(req))
}

func (p *GoogleProvider) generate(ctx context.Context, prompt string) (string, error) {
	body := googleRequest{
		Contents: []googleContent{{Parts: []googlePart{{Text: prompt}}}},
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, p.model, p.apiKey)
	var out googleResponse
	if err := postJSON(ctx, p.client, url, nil, body, &out); err != nil {
		return "", domain.NewProviderError(p.Name(), err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", domain.NewProviderError(p.Name(), errors.New("response contained no candidates"))
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
