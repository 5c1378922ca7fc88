package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/auth"
	"github.com/devfolio/portfolio-api/internal/domain"
	"github.com/devfolio/portfolio-api/internal/events"
	"github.com/devfolio/portfolio-api/internal/repository"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

const (
	msgMissingFields      = "Missing required fields"
	msgEmailRegistered    = "Email already registered"
	msgInvalidCredentials = "Invalid credentials"
)

// AuthService coordinates registration, login and logout.
type AuthService struct {
	users      repository.UserRepository
	revoked    repository.RevocationStore
	tokens     *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
	logger     *zap.Logger
}

// AuthDependencies bundles what the auth service talks to.
type AuthDependencies struct {
	UserRepo        repository.UserRepository
	RevocationStore repository.RevocationStore
	Tokens          *auth.TokenManager
	Dispatcher      events.Dispatcher
	BcryptCost      int
}

// AuthResult is returned by successful sign up and sign in.
type AuthResult struct {
	User    *domain.User
	Token   string
	Session *domain.Session
}

// NewAuthService builds the service.
func NewAuthService(deps AuthDependencies, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		revoked:    deps.RevocationStore,
		tokens:     deps.Tokens,
		dispatcher: deps.Dispatcher,
		bcryptCost: deps.BcryptCost,
		logger:     logger,
	}
}

// SignUp creates a USER account and issues a session token.
func (s *AuthService) SignUp(ctx context.Context, name, email, password string) (*AuthResult, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || password == "" {
		return nil, apperrors.NewValidationError(msgMissingFields, nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError(msgEmailRegistered, nil)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewInternalError("Failed to create account", err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to create account", err)
	}

	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.NewValidationError(msgEmailRegistered, nil)
		}
		return nil, apperrors.NewInternalError("Failed to create account", err)
	}

	result, err := s.issue(user)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:    events.EventUserRegistered,
		UserID:  user.ID,
		Payload: events.UserRegisteredPayload{Name: user.Name, Email: user.Email},
	})
	return result, nil
}

// SignIn authenticates by email and password.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError(msgMissingFields, nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to sign in", err)
	}
	if user.PasswordHash == "" || auth.ComparePassword(user.PasswordHash, password) != nil {
		return nil, apperrors.NewUnauthorized(msgInvalidCredentials)
	}

	return s.issue(user)
}

// SignOut revokes the session's token until it would have expired anyway.
// A nil session is a no-op so clients can always clear their cookie.
func (s *AuthService) SignOut(ctx context.Context, session *domain.Session) error {
	if session == nil || s.revoked == nil {
		return nil
	}
	if !session.ExpiresAt.After(time.Now()) {
		return nil
	}
	if err := s.revoked.Revoke(ctx, session.TokenID, session.ExpiresAt); err != nil {
		return apperrors.NewInternalError("Failed to sign out", err)
	}
	return nil
}

// CurrentUser loads the account behind a session.
func (s *AuthService) CurrentUser(ctx context.Context, session *domain.Session) (*domain.User, error) {
	if session == nil {
		return nil, apperrors.NewUnauthorized("Unauthorized")
	}
	user, err := s.users.GetByID(ctx, session.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NewNotFound("User not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("", err)
	}
	return user, nil
}

// Addresses are stored and looked up lower-cased so one mailbox maps to one account.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, session, err := s.tokens.GenerateToken(user)
	if err != nil {
		return nil, apperrors.NewInternalError("Authentication failed", err)
	}
	return &AuthResult{User: user, Token: token, Session: session}, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	publishEvent(ctx, s.dispatcher, s.logger, event)
}

// publishEvent stamps and publishes an event. Handler errors are logged, never returned.
func publishEvent(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
