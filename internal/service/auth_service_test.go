package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/devfolio/portfolio-api/internal/auth"
	"github.com/devfolio/portfolio-api/internal/domain"
	"github.com/devfolio/portfolio-api/internal/events"
	"github.com/devfolio/portfolio-api/internal/repository"
)

func newTestAuthService() (*AuthService, repository.RevocationStore, *recordingDispatcher) {
	revoked := repository.NewMemoryRevocationStore()
	dispatcher := &recordingDispatcher{}
	svc := NewAuthService(AuthDependencies{
		UserRepo:        repository.NewMemoryUserRepository(),
		RevocationStore: revoked,
		Tokens:          auth.NewTokenManager("test-secret", time.Hour),
		Dispatcher:      dispatcher,
		BcryptCost:      bcrypt.MinCost,
	}, zap.NewNop())
	return svc, revoked, dispatcher
}

func TestAuthService_SignUp(t *testing.T) {
	svc, _, dispatcher := newTestAuthService()
	ctx := context.Background()

	res, err := svc.SignUp(ctx, "Ada", "ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleUser, res.User.Role)
	assert.Equal(t, res.User.ID, res.Session.UserID)
	assert.NotEqual(t, "s3cret", res.User.PasswordHash)
	assert.Equal(t, []events.EventType{events.EventUserRegistered}, dispatcher.types())

	_, err = svc.SignUp(ctx, "Ada", "ada@example.com", "other")
	assertDomainError(t, err, http.StatusBadRequest, "Email already registered")
}

func TestAuthService_SignUpMissingFields(t *testing.T) {
	svc, _, _ := newTestAuthService()

	for _, tc := range []struct{ name, email, password string }{
		{"", "a@b.co", "pw"},
		{"A", "", "pw"},
		{"A", "a@b.co", ""},
	} {
		_, err := svc.SignUp(context.Background(), tc.name, tc.email, tc.password)
		assertDomainError(t, err, http.StatusBadRequest, "Missing required fields")
	}
}

func TestAuthService_SignIn(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()
	_, err := svc.SignUp(ctx, "Ada", "ada@example.com", "s3cret")
	require.NoError(t, err)

	res, err := svc.SignIn(ctx, "ada@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.Session.Email)

	_, err = svc.SignIn(ctx, "ada@example.com", "wrong")
	assertDomainError(t, err, http.StatusUnauthorized, "Invalid credentials")

	_, err = svc.SignIn(ctx, "nobody@example.com", "s3cret")
	assertDomainError(t, err, http.StatusUnauthorized, "Invalid credentials")

	_, err = svc.SignIn(ctx, "", "s3cret")
	assertDomainError(t, err, http.StatusBadRequest, "Missing required fields")
}

func TestAuthService_EmailIsCaseInsensitive(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	res, err := svc.SignUp(ctx, "Ada", " Ada@Example.com ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", res.User.Email)

	_, err = svc.SignUp(ctx, "Ada", "ada@example.com", "other")
	assertDomainError(t, err, http.StatusBadRequest, "Email already registered")
	_, err = svc.SignUp(ctx, "Ada", "ADA@EXAMPLE.COM", "other")
	assertDomainError(t, err, http.StatusBadRequest, "Email already registered")

	signedIn, err := svc.SignIn(ctx, "ada@EXAMPLE.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, signedIn.User.ID)
	assert.Equal(t, "ada@example.com", signedIn.Session.Email)
}

func TestAuthService_SignOutRevokesToken(t *testing.T) {
	svc, revoked, _ := newTestAuthService()
	ctx := context.Background()
	res, err := svc.SignUp(ctx, "Ada", "ada@example.com", "s3cret")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, res.Session))

	isRevoked, err := revoked.IsRevoked(ctx, res.Session.TokenID)
	require.NoError(t, err)
	assert.True(t, isRevoked)

	assert.NoError(t, svc.SignOut(ctx, nil))
}

func TestAuthService_CurrentUser(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()
	res, err := svc.SignUp(ctx, "Ada", "ada@example.com", "s3cret")
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, res.Session)
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)

	_, err = svc.CurrentUser(ctx, nil)
	assertDomainError(t, err, http.StatusUnauthorized, "Unauthorized")
}
