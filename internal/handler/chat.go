package handler

import (
	"quizforge/internal/dto"
	"quizforge/internal/logger"
	"quizforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ChatHandler handles tutoring chat HTTP requests
type ChatHandler struct {
	service service.ChatService
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(service service.ChatService) *ChatHandler {
	return &ChatHandler{
		service: service,
	}
}

// Chat godoc
// @Summary Ask the tutor a question
// @Description Produces a tutoring reply for a student message, optionally grounded in quiz context
// @Tags chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Student message"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /chat [post]
func (h *ChatHandler) Chat(c *fiber.Ctx) error {
	req, ok := c.Locals("validated_chat_request").(*dto.ChatRequest)
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "missing request body")
	}

	resp, err := h.service.Chat(c.Context(), req)
	if err != nil {
		logger.Get().Error("Failed to produce tutor reply", zap.Error(err))
		return err
	}

	return c.JSON(resp)
}
