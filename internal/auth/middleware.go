package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/domain"
	"github.com/devfolio/portfolio-api/internal/repository"
)

const (
	sessionKey = "auth_session"
	tokenKey   = "auth_token"
)

// SessionMiddleware resolves the caller's session from a bearer header or the session cookie.
// It never rejects a request; RequireAuth does that for protected routes.
type SessionMiddleware struct {
	tokens     *TokenManager
	revoked    repository.RevocationStore
	cookieName string
	logger     *zap.Logger
}

// NewSessionMiddleware constructs middleware.
func NewSessionMiddleware(tokens *TokenManager, revoked repository.RevocationStore, cookieName string, logger *zap.Logger) *SessionMiddleware {
	if cookieName == "" {
		cookieName = "auth-token"
	}
	return &SessionMiddleware{tokens: tokens, revoked: revoked, cookieName: cookieName, logger: logger}
}

// Handle loads the session, if any, into the request locals.
func (m *SessionMiddleware) Handle(c *fiber.Ctx) error {
	raw := m.extractToken(c)
	if raw == "" {
		return c.Next()
	}

	session, err := m.tokens.ParseToken(raw)
	if err != nil {
		return c.Next()
	}

	if m.revoked != nil {
		revoked, err := m.revoked.IsRevoked(c.UserContext(), session.TokenID)
		if err != nil {
			m.logger.Warn("revocation lookup failed, treating request as anonymous", zap.Error(err))
			return c.Next()
		}
		if revoked {
			return c.Next()
		}
	}

	c.Locals(sessionKey, session)
	c.Locals(tokenKey, raw)
	return c.Next()
}

// CookieName returns the name of the session cookie.
func (m *SessionMiddleware) CookieName() string {
	return m.cookieName
}

func (m *SessionMiddleware) extractToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	return c.Cookies(m.cookieName)
}

// SessionFromContext retrieves the authenticated session.
func SessionFromContext(c *fiber.Ctx) (*domain.Session, bool) {
	val := c.Locals(sessionKey)
	if val == nil {
		return nil, false
	}
	session, ok := val.(*domain.Session)
	return session, ok
}

// TokenFromContext returns the raw token that produced the current session.
func TokenFromContext(c *fiber.Ctx) string {
	if val, ok := c.Locals(tokenKey).(string); ok {
		return val
	}
	return ""
}
