package service

import (
	"context"
	"strings"

	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"

	"go.uber.org/zap"
)

// TutorResponder is the orchestration port used by the chat service. It is
// satisfied by orchestrator.Orchestrator.
type TutorResponder interface {
	Chat(ctx context.Context, req domain.ChatRequest) (string, string, []domain.Attempt, error)
}

// ChatService defines the interface for tutoring chat operations
type ChatService interface {
	Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error)
}

// chatService implements ChatService
type chatService struct {
	responder TutorResponder
}

// NewChatService creates a new instance of chatService
func NewChatService(responder TutorResponder) ChatService {
	return &chatService{responder: responder}
}

// Chat implements ChatService
func (s *chatService) Chat(ctx context.Context, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, domain.NewInvalidInputError("message is required")
	}

	reply, providerName, attempts, err := s.responder.Chat(ctx, domain.ChatRequest{
		Message: message,
		Context: strings.TrimSpace(req.Context),
	})
	if err != nil {
		return nil, err
	}

	logger.Get().Info("Tutor reply produced",
		zap.String("provider", providerName),
		zap.Int("attempts", len(attempts)))

	return &dto.ChatResponse{
		Reply:    reply,
		Provider: providerName,
	}, nil
}
