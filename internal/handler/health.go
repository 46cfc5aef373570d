package handler

import (
	"quizforge/internal/domain"
	"quizforge/internal/registry"

	"github.com/gofiber/fiber/v2"
)

// HealthHandler reports process health and the enrolled provider set
type HealthHandler struct {
	cache    domain.Cache
	registry *registry.Registry
}

// NewHealthHandler creates a new HealthHandler instance. cache may be nil.
func NewHealthHandler(cache domain.Cache, reg *registry.Registry) *HealthHandler {
	return &HealthHandler{cache: cache, registry: reg}
}

// Health godoc
// @Summary Health check
// @Description Reports service health, cache reachability, and enrolled providers
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /healthz [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	cacheStatus := "disabled"
	if h.cache != nil {
		cacheStatus = "ok"
		if err := h.cache.Ping(c.Context()); err != nil {
			cacheStatus = "unreachable"
		}
	}

	return c.JSON(fiber.Map{
		"status":    "ok",
		"cache":     cacheStatus,
		"providers": h.registry.Enrolled(),
	})
}
