package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/api/dto"
	"github.com/devfolio/portfolio-api/internal/service"
)

// ContactHandler accepts contact form submissions.
type ContactHandler struct {
	contact *service.ContactService
}

func NewContactHandler(contact *service.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Submit handles POST /api/contact.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	if _, err := h.contact.Submit(c.UserContext(), service.ContactInput{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}); err != nil {
		return err
	}
	return c.JSON(dto.SuccessResponse{Success: true, Message: service.ContactThankYouMsg})
}
