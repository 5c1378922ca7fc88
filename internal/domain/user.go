package domain

import "time"

// Role gates access to admin-only endpoints.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User is an account created through signup.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Image        *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
