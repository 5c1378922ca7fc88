package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/devfolio/portfolio-api/internal/domain"
	"github.com/devfolio/portfolio-api/internal/repository"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

type failingRevocations struct{}

func (failingRevocations) Revoke(context.Context, string, time.Time) error { return nil }

func (failingRevocations) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func newAuthTestApp(tm *TokenManager, revoked repository.RevocationStore) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			de := apperrors.ToDomainError(err)
			return c.Status(de.HTTPStatus).SendString(de.Message)
		},
	})
	sessions := NewSessionMiddleware(tm, revoked, "", zap.NewNop())
	app.Use(sessions.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return c.SendString("anonymous")
		}
		return c.SendString(session.UserID + "|" + TokenFromContext(c))
	})
	app.Get("/private", RequireAuth(), func(c *fiber.Ctx) error { return c.SendString("ok") })
	app.Get("/admin", RequireRole(domain.RoleAdmin), func(c *fiber.Ctx) error { return c.SendString("ok") })
	return app
}

func get(t *testing.T, app *fiber.App, path string, mutate func(*http.Request)) (int, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if mutate != nil {
		mutate(req)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set(fiber.HeaderAuthorization, "Bearer "+token) }
}

func TestSessionMiddleware_Sources(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := newAuthTestApp(tm, repository.NewMemoryRevocationStore())
	token, _, err := tm.GenerateToken(&domain.User{ID: "u1", Email: "a@b.co", Role: domain.RoleUser})
	require.NoError(t, err)

	_, body := get(t, app, "/whoami", nil)
	assert.Equal(t, "anonymous", body)

	_, body = get(t, app, "/whoami", bearer(token))
	assert.Equal(t, "u1|"+token, body)

	_, body = get(t, app, "/whoami", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "auth-token", Value: token})
	})
	assert.Equal(t, "u1|"+token, body)

	_, body = get(t, app, "/whoami", bearer("garbage"))
	assert.Equal(t, "anonymous", body)
}

func TestSessionMiddleware_Revoked(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	revoked := repository.NewMemoryRevocationStore()
	app := newAuthTestApp(tm, revoked)
	token, session, err := tm.GenerateToken(&domain.User{ID: "u1", Role: domain.RoleUser})
	require.NoError(t, err)

	require.NoError(t, revoked.Revoke(context.Background(), session.TokenID, session.ExpiresAt))
	_, body := get(t, app, "/whoami", bearer(token))
	assert.Equal(t, "anonymous", body)
}

func TestSessionMiddleware_RevocationLookupFailureDropsSession(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := newAuthTestApp(tm, failingRevocations{})
	token, _, err := tm.GenerateToken(&domain.User{ID: "a1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	_, body := get(t, app, "/whoami", bearer(token))
	assert.Equal(t, "anonymous", body)

	status, _ := get(t, app, "/admin", bearer(token))
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRequireAuthAndRole(t *testing.T) {
	tm := NewTokenManager("secret", time.Hour)
	app := newAuthTestApp(tm, nil)
	userToken, _, err := tm.GenerateToken(&domain.User{ID: "u1", Role: domain.RoleUser})
	require.NoError(t, err)
	adminToken, _, err := tm.GenerateToken(&domain.User{ID: "a1", Role: domain.RoleAdmin})
	require.NoError(t, err)

	status, _ := get(t, app, "/private", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = get(t, app, "/private", bearer(userToken))
	assert.Equal(t, http.StatusOK, status)

	status, _ = get(t, app, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, body := get(t, app, "/admin", bearer(userToken))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Forbidden: insufficient role", body)
	status, _ = get(t, app, "/admin", bearer(adminToken))
	assert.Equal(t, http.StatusOK, status)
}

func TestPasswordHashing(t *testing.T) {
	hashed, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hashed)
	assert.NoError(t, ComparePassword(hashed, "s3cret"))
	assert.Error(t, ComparePassword(hashed, "wrong"))

	cost, err := bcrypt.Cost([]byte(mustHash(t, "x", 99)))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
}

func mustHash(t *testing.T, pw string, cost int) string {
	t.Helper()
	h, err := HashPassword(pw, cost)
	require.NoError(t, err)
	return h
}
