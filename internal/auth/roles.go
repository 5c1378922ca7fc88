package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/domain"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

// RequireAuth rejects requests without a session.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFromContext(c); !ok {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		return c.Next()
	}
}

// RequireRole ensures the session carries one of the allowed roles.
func RequireRole(allowed ...domain.Role) fiber.Handler {
	allowedSet := make(map[domain.Role]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("Unauthorized")
		}
		if _, exists := allowedSet[session.Role]; !exists {
			return apperrors.NewForbidden("Forbidden: insufficient role")
		}
		return c.Next()
	}
}
