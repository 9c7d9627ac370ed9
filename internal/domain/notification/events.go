package notification

import (
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const AggregateTypeNotification = "Notification"

const (
	EventTypeNotificationCreated = "NotificationCreated"
)

// NotificationCreatedEvent is published when a notification is delivered
type NotificationCreatedEvent struct {
	shared.BaseDomainEvent
	NotificationID uuid.UUID `json:"notification_id"`
	UserID         uuid.UUID `json:"user_id"`
	Type           Type      `json:"type"`
	Title          string    `json:"title"`
}

// NewNotificationCreatedEvent creates a new NotificationCreatedEvent
func NewNotificationCreatedEvent(n *Notification) *NotificationCreatedEvent {
	return &NotificationCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeNotificationCreated, AggregateTypeNotification, n.ID, n.CompanyID),
		NotificationID:  n.ID,
		UserID:          n.UserID,
		Type:            n.Type,
		Title:           n.Title,
	}
}
