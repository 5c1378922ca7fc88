package dto

import "github.com/devfolio/portfolio-api/internal/domain"

// ContactRequest is the body of POST /api/contact.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// ContactListResponse lists stored submissions for admins.
type ContactListResponse struct {
	Messages []domain.ContactMessage `json:"messages"`
}
