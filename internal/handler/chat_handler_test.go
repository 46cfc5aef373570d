package handler_test

import (
	"context"
	"encoding/json"
	"testing"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/handler"
	"quizforge/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChatTestApp(svc *MockChatService) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandler(),
	})
	vm := middleware.NewValidationMiddleware()
	h := handler.NewChatHandler(svc)
	app.Post("/api/chat", vm.ValidateChatRequest(), h.Chat)
	return app
}

func TestChatHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockSvc := &MockChatService{}
		mockSvc.ChatFunc = func(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
			assert.Equal(t, "What is a goroutine?", req.Message)
			return &dto.ChatResponse{
				Reply:    "A goroutine is a lightweight thread managed by the Go runtime.",
				Provider: "google",
			}, nil
		}

		app := newChatTestApp(mockSvc)
		status, body, err := postJSON(app, "/api/chat", dto.ChatRequest{
			Message: "What is a goroutine?",
		})

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, status)

		var resp dto.ChatResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Equal(t, "google", resp.Provider)
		assert.Contains(t, resp.Reply, "goroutine")
	})

	t.Run("BlankMessage", func(t *testing.T) {
		app := newChatTestApp(&MockChatService{})
		status, body, err := postJSON(app, "/api/chat", dto.ChatRequest{Message: "   "})

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, status)

		var resp middleware.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		require.Len(t, resp.Errors, 1)
		assert.Equal(t, "message", resp.Errors[0].Field)
	})

	t.Run("ProvidersExhausted", func(t *testing.T) {
		mockSvc := &MockChatService{}
		mockSvc.ChatFunc = func(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
			return nil, domain.NewAggregateError(domain.WorkloadChat, []domain.Attempt{
				{Provider: "google", Outcome: domain.OutcomeProviderError},
			})
		}

		app := newChatTestApp(mockSvc)
		status, _, err := postJSON(app, "/api/chat", dto.ChatRequest{Message: "help me"})

		require.NoError(t, err)
		assert.Equal(t, fiber.StatusBadGateway, status)
	})
}
