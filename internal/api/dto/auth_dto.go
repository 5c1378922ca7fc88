package dto

import (
	"github.com/devfolio/portfolio-api/internal/domain"
)

// AuthRequest is the body of POST /api/auth. Action selects signup, signin or signout.
type AuthRequest struct {
	Action   string `json:"action"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned on successful signup and signin.
type AuthResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
}

// SessionView is the client-facing shape of a session.
type SessionView struct {
	UserID string      `json:"userId"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
	Iat    int64       `json:"iat"`
	Exp    int64       `json:"exp"`
}

// NewSessionView converts a session; nil stays nil.
func NewSessionView(s *domain.Session) *SessionView {
	if s == nil {
		return nil
	}
	return &SessionView{
		UserID: s.UserID,
		Email:  s.Email,
		Role:   s.Role,
		Iat:    s.IssuedAt.Unix(),
		Exp:    s.ExpiresAt.Unix(),
	}
}
