package events

import "time"

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered   EventType = "user_registered"
	EventContactSubmitted EventType = "contact_submitted"
	EventTaskCreated      EventType = "task_created"
	EventCartItemAdded    EventType = "cart_item_added"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ContactSubmittedPayload payload.
type ContactSubmittedPayload struct {
	MessageID string `json:"message_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Preview   string `json:"preview"`
}

// TaskCreatedPayload payload.
type TaskCreatedPayload struct {
	TaskID    string  `json:"task_id"`
	Title     string  `json:"title"`
	ProjectID *string `json:"project_id,omitempty"`
}

// CartItemAddedPayload payload.
type CartItemAddedPayload struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
