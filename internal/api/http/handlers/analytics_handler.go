package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/analytics"
)

// AnalyticsHandler serves the simulated traffic dashboard.
type AnalyticsHandler struct {
	generator *analytics.Generator
}

func NewAnalyticsHandler(generator *analytics.Generator) *AnalyticsHandler {
	return &AnalyticsHandler{generator: generator}
}

// Get handles GET /api/analytics?period=&metric=.
func (h *AnalyticsHandler) Get(c *fiber.Ctx) error {
	period := c.Query("period", "30d")
	return c.JSON(h.generator.Report(period, c.Query("metric")))
}
