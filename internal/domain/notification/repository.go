package notification

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for notification persistence
type Repository interface {
	// FindByID finds a notification by ID for a user
	FindByID(ctx context.Context, userID, id uuid.UUID) (*Notification, error)

	// FindByUser finds notifications for a user, newest first
	FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]Notification, error)

	// CountByUser counts notifications for a user
	CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error)

	// CountUnread counts unread notifications for a user
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)

	// Save creates or updates a notification
	Save(ctx context.Context, n *Notification) error

	// MarkAllRead marks every unread notification for a user as read
	// and returns the number updated
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)

	// Delete deletes a notification for a user
	Delete(ctx context.Context, userID, id uuid.UUID) error
}
