package middleware

import (
	"errors"
	"net/http"

	"quizforge/internal/domain"
	"quizforge/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

// ValidationErrorResponse represents validation error response
type ValidationErrorResponse struct {
	Code    string                   `json:"code"`
	Message string                   `json:"message"`
	Status  int                      `json:"status"`
	Errors  []domain.ValidationError `json:"errors"`
}

// ErrorHandler is a centralized error handling middleware
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		if validationErrs, ok := err.(domain.ValidationErrors); ok {
			log.Warn("Request validation failed",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Code:    string(domain.ErrValidation),
				Message: "Request validation failed",
				Status:  http.StatusBadRequest,
				Errors:  validationErrs,
			})
		}

		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			log.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			)

			return c.Status(statusCode).JSON(ErrorResponse{
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
				Status:  statusCode,
			})
		}

		// Provider pipeline failures surface as a bad gateway: the request
		// was fine, the upstream LLMs were not.
		var aggErr *domain.AggregateError
		if errors.As(err, &aggErr) {
			log.Error("All providers failed",
				zap.String("path", c.Path()),
				zap.String("workload", string(aggErr.Workload)),
				zap.Int("attempts", len(aggErr.Attempts)),
			)
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
				Code:    string(domain.ErrAllProvidersFailed),
				Message: aggErr.Error(),
				Status:  http.StatusBadGateway,
			})
		}

		var parseErr *domain.ParseError
		if errors.As(err, &parseErr) {
			log.Error("Provider response parse failed",
				zap.String("path", c.Path()),
				zap.String("provider", parseErr.Provider),
				zap.Error(parseErr),
			)
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
				Code:    string(domain.ErrParseFailure),
				Message: "Provider returned an unparseable response",
				Status:  http.StatusBadGateway,
			})
		}

		var providerErr *domain.ProviderError
		if errors.As(err, &providerErr) {
			log.Error("Provider call failed",
				zap.String("path", c.Path()),
				zap.String("provider", providerErr.Provider),
				zap.Error(providerErr),
			)
			return c.Status(http.StatusBadGateway).JSON(ErrorResponse{
				Code:    string(domain.ErrProviderFailure),
				Message: "Provider call failed",
				Status:  http.StatusBadGateway,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.ErrInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.ErrInvalidInput, domain.ErrValidation:
		return http.StatusBadRequest
	case domain.ErrConfiguration:
		return http.StatusServiceUnavailable
	case domain.ErrProviderFailure, domain.ErrParseFailure, domain.ErrAllProvidersFailed:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
