package middleware

import (
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGenerateQuizRequest parses and validates the quiz generation body
func (vm *ValidationMiddleware) ValidateGenerateQuizRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.GenerateQuizRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.ValidationErrors{
				domain.NewInvalidFormatError("body", "malformed JSON"),
			}
		}

		if errors := vm.validator.ValidateGenerateQuizRequest(&req); len(errors) > 0 {
			return errors // Handled by the ErrorHandler middleware
		}

		c.Locals("validated_quiz_request", &req)
		return c.Next()
	}
}

// ValidateChatRequest parses and validates the tutoring chat body
func (vm *ValidationMiddleware) ValidateChatRequest() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req dto.ChatRequest
		if err := c.BodyParser(&req); err != nil {
			return domain.ValidationErrors{
				domain.NewInvalidFormatError("body", "malformed JSON"),
			}
		}

		if errors := vm.validator.ValidateChatRequest(&req); len(errors) > 0 {
			return errors
		}

		c.Locals("validated_chat_request", &req)
		return c.Next()
	}
}
