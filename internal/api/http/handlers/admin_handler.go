package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/api/dto"
	"github.com/devfolio/portfolio-api/internal/observability"
	"github.com/devfolio/portfolio-api/internal/service"
)

// AdminHandler serves admin-only views. Routes sit behind RequireRole(ADMIN).
type AdminHandler struct {
	contact *service.ContactService
	metrics *observability.Metrics
}

func NewAdminHandler(contact *service.ContactService, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{contact: contact, metrics: metrics}
}

// Contacts handles GET /api/admin/contacts?limit=.
func (h *AdminHandler) Contacts(c *fiber.Ctx) error {
	messages, err := h.contact.List(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return err
	}
	return c.JSON(dto.ContactListResponse{Messages: messages})
}

// Metrics handles GET /api/admin/metrics.
func (h *AdminHandler) Metrics(c *fiber.Ctx) error {
	return c.JSON(h.metrics.Snapshot())
}
