package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/auth"
	"github.com/devfolio/portfolio-api/internal/domain"
)

func parseBody(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid payload")
	}
	return nil
}

// mustSession returns the session put in place by the auth middleware.
// Routes using it sit behind RequireAuth or check for nil themselves.
func mustSession(c *fiber.Ctx) *domain.Session {
	session, _ := auth.SessionFromContext(c)
	return session
}
