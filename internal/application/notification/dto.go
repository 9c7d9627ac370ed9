package notification

import (
	"time"

	"github.com/google/uuid"

	"github.com/crmsuite/backend/internal/domain/notification"
)

// NotifyRequest carries data for creating a notification
type NotifyRequest struct {
	UserID     uuid.UUID  `json:"user_id" binding:"required"`
	Type       string     `json:"type" binding:"required,oneof=info warning document system"`
	Title      string     `json:"title" binding:"required,max=200"`
	Body       string     `json:"body"`
	EntityKind string     `json:"entity_kind"`
	EntityID   *uuid.UUID `json:"entity_id"`
}

// NotificationResponse is the API representation of a notification
type NotificationResponse struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Body       string     `json:"body,omitempty"`
	Read       bool       `json:"read"`
	ReadAt     *time.Time `json:"read_at,omitempty"`
	EntityKind string     `json:"entity_kind,omitempty"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ToNotificationResponse converts a domain notification to a response DTO
func ToNotificationResponse(n *notification.Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Title:     n.Title,
		Body:      n.Body,
		Read:      n.Read,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
	if n.Entity.Kind != "" {
		resp.EntityKind = n.Entity.Kind
		entityID := n.Entity.ID
		resp.EntityID = &entityID
	}
	return resp
}

// ToNotificationResponses converts a slice of notifications
func ToNotificationResponses(items []notification.Notification) []NotificationResponse {
	responses := make([]NotificationResponse, len(items))
	for i := range items {
		responses[i] = *ToNotificationResponse(&items[i])
	}
	return responses
}

// UnreadCountResponse carries the unread counter
type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

// ListFilter holds list query parameters for notifications
type ListFilter struct {
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
	UnreadOnly bool   `form:"unread_only"`
	Type       string `form:"type" binding:"omitempty,oneof=info warning document system"`
}
