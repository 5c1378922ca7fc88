package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/devfolio/portfolio-api/internal/config"
	"github.com/devfolio/portfolio-api/internal/events"
)

// NotificationService turns domain events into outbound notifications.
// Email and webhook delivery are stubs that only log.
type NotificationService struct {
	logger *zap.Logger
	cfg    config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		logger: logger,
		cfg:    cfg,
	}
}

// EventTypes lists the events the service reacts to.
func (n *NotificationService) EventTypes() []events.EventType {
	return []events.EventType{
		events.EventUserRegistered,
		events.EventContactSubmitted,
		events.EventTaskCreated,
		events.EventCartItemAdded,
	}
}

// Handle dispatches a single event to its notification flow.
func (n *NotificationService) Handle(ctx context.Context, event events.Event) error {
	switch event.Type {
	case events.EventUserRegistered:
		return n.handleUserRegistered(ctx, event)
	case events.EventContactSubmitted:
		return n.handleContactSubmitted(ctx, event)
	case events.EventTaskCreated:
		return n.handleTaskCreated(ctx, event)
	case events.EventCartItemAdded:
		n.logger.Debug("CartItemAdded", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
		return nil
	default:
		n.logger.Warn("unhandled event", zap.String("event_type", string(event.Type)))
		return nil
	}
}

func (n *NotificationService) handleUserRegistered(ctx context.Context, event events.Event) error {
	n.logger.Info("UserRegistered", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	if payload, ok := event.Payload.(events.UserRegisteredPayload); ok {
		n.sendEmailNotificationStub(ctx, event, payload.Email)
	}
	return nil
}

func (n *NotificationService) handleContactSubmitted(ctx context.Context, event events.Event) error {
	n.logger.Info("ContactSubmitted", zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event, n.cfg.ContactInbox)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTaskCreated(ctx context.Context, event events.Event) error {
	n.logger.Info("TaskCreated", zap.String("user_id", event.UserID), zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(_ context.Context, event events.Event, to string) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" || strings.TrimSpace(to) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.String("to", to),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.String("event_id", event.ID),
		zap.String("event_type", string(event.Type)))
}
