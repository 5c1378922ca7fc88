package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/devfolio/portfolio-api/internal/api/dto"
	"github.com/devfolio/portfolio-api/internal/auth"
	"github.com/devfolio/portfolio-api/internal/service"
)

// CookieSettings controls the session cookie.
type CookieSettings struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

// AuthHandler exposes POST/GET /api/auth.
type AuthHandler struct {
	auth   *service.AuthService
	cookie CookieSettings
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService, cookie CookieSettings) *AuthHandler {
	if cookie.Name == "" {
		cookie.Name = "auth-token"
	}
	return &AuthHandler{auth: authService, cookie: cookie}
}

// Dispatch handles POST /api/auth for the signup, signin and signout actions.
func (h *AuthHandler) Dispatch(c *fiber.Ctx) error {
	var req dto.AuthRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}

	switch req.Action {
	case "signup":
		result, err := h.auth.SignUp(c.UserContext(), req.Name, req.Email, req.Password)
		if err != nil {
			return err
		}
		h.setSessionCookie(c, result.Token)
		return c.JSON(dto.AuthResponse{Success: true, Token: result.Token})

	case "signin":
		result, err := h.auth.SignIn(c.UserContext(), req.Email, req.Password)
		if err != nil {
			return err
		}
		h.setSessionCookie(c, result.Token)
		return c.JSON(dto.AuthResponse{Success: true, Token: result.Token})

	case "signout":
		session, _ := auth.SessionFromContext(c)
		if err := h.auth.SignOut(c.UserContext(), session); err != nil {
			return err
		}
		h.clearSessionCookie(c)
		return c.JSON(dto.AuthResponse{Success: true})

	default:
		return fiber.NewError(fiber.StatusBadRequest, "Invalid action")
	}
}

// Session handles GET /api/auth. It never fails; anonymous callers get a null user.
func (h *AuthHandler) Session(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	return c.JSON(fiber.Map{"user": dto.NewSessionView(session)})
}

func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cookie.TTL.Seconds()),
		Expires:  time.Now().Add(h.cookie.TTL),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     h.cookie.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   h.cookie.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
