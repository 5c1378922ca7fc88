package service

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/domain"
	"github.com/devfolio/portfolio-api/internal/events"
	"github.com/devfolio/portfolio-api/internal/repository"
	apperrors "github.com/devfolio/portfolio-api/pkg/util/errorutil"
)

const (
	defaultSubject     = "No subject"
	contactPreviewLen  = 120
	ContactThankYouMsg = "Thank you for your message! I'll get back to you soon."

	defaultContactListLimit = 50
	maxContactListLimit     = 200
)

// Unicode spaces and the BOM count as whitespace.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}\x{FEFF}@]+@[^\s\p{Z}\x{FEFF}@]+\.[^\s\p{Z}\x{FEFF}@]+$`)

// ContactInput is a contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ContactService accepts contact form submissions.
type ContactService struct {
	messages   repository.ContactRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func NewContactService(messages repository.ContactRepository, dispatcher events.Dispatcher, logger *zap.Logger) *ContactService {
	return &ContactService{messages: messages, dispatcher: dispatcher, logger: logger}
}

// Submit validates, stores and announces a submission.
func (s *ContactService) Submit(ctx context.Context, in ContactInput) (*domain.ContactMessage, error) {
	if in.Name == "" || in.Email == "" || in.Message == "" {
		return nil, apperrors.NewValidationError("Name, email, and message are required", nil)
	}
	if !emailPattern.MatchString(in.Email) {
		return nil, apperrors.NewValidationError("Invalid email format", nil)
	}

	msg := &domain.ContactMessage{
		Name:    in.Name,
		Email:   in.Email,
		Subject: in.Subject,
		Message: in.Message,
	}
	if strings.TrimSpace(msg.Subject) == "" {
		msg.Subject = defaultSubject
	}

	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, apperrors.NewInternalError("Failed to send message. Please try again.", err)
	}

	s.logger.Info("contact form submission",
		zap.String("message_id", msg.ID),
		zap.String("name", msg.Name),
		zap.String("email", msg.Email),
		zap.String("subject", msg.Subject),
		zap.Time("timestamp", msg.CreatedAt))

	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type: events.EventContactSubmitted,
		Payload: events.ContactSubmittedPayload{
			MessageID: msg.ID,
			Name:      msg.Name,
			Email:     msg.Email,
			Subject:   msg.Subject,
			Preview:   preview(msg.Message, contactPreviewLen),
		},
	})
	return msg, nil
}

// List returns the most recent submissions, newest first.
func (s *ContactService) List(ctx context.Context, limit int) ([]domain.ContactMessage, error) {
	switch {
	case limit <= 0:
		limit = defaultContactListLimit
	case limit > maxContactListLimit:
		limit = maxContactListLimit
	}
	msgs, err := s.messages.List(ctx, limit)
	if err != nil {
		return nil, apperrors.NewInternalError("Failed to fetch messages", err)
	}
	return msgs, nil
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
