package notification

import (
	"strings"
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Type classifies a notification
type Type string

const (
	TypeInfo     Type = "info"
	TypeWarning  Type = "warning"
	TypeDocument Type = "document" // a document was generated or scraped
	TypeSystem   Type = "system"
)

// IsValid checks if the notification type is valid
func (t Type) IsValid() bool {
	switch t {
	case TypeInfo, TypeWarning, TypeDocument, TypeSystem:
		return true
	}
	return false
}

// EntityRef points a notification at the record it is about
type EntityRef struct {
	Kind string    `gorm:"column:entity_kind;type:varchar(50)" json:"kind,omitempty"`
	ID   uuid.UUID `gorm:"column:entity_id;type:uuid" json:"id,omitempty"`
}

// Notification is a message delivered to a single user, polled over REST
type Notification struct {
	shared.CompanyAggregateRoot
	UserID uuid.UUID `gorm:"type:uuid;not null;index:idx_notifications_user_read"`
	Type   Type      `gorm:"type:varchar(20);not null;default:'info'"`
	Title  string    `gorm:"type:varchar(200);not null"`
	Body   string    `gorm:"type:text"`
	Read   bool      `gorm:"not null;default:false;index:idx_notifications_user_read"`
	ReadAt *time.Time
	Entity EntityRef `gorm:"embedded"`
}

// TableName returns the table name for GORM
func (Notification) TableName() string {
	return "notifications"
}

// NewNotification creates a new unread notification for a user
func NewNotification(companyID, userID uuid.UUID, notificationType Type, title, body string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Recipient user ID is required")
	}
	if !notificationType.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Invalid notification type")
	}
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}
	if len(title) > 200 {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot exceed 200 characters")
	}

	n := &Notification{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		UserID:               userID,
		Type:                 notificationType,
		Title:                title,
		Body:                 body,
	}

	n.AddDomainEvent(NewNotificationCreatedEvent(n))

	return n, nil
}

// SetEntity attaches the referenced record
func (n *Notification) SetEntity(kind string, id uuid.UUID) {
	n.Entity = EntityRef{Kind: kind, ID: id}
	n.UpdatedAt = time.Now()
}

// MarkRead marks the notification as read; marking twice is a no-op
func (n *Notification) MarkRead() {
	if n.Read {
		return
	}
	now := time.Now()
	n.Read = true
	n.ReadAt = &now
	n.UpdatedAt = now
	n.IncrementVersion()
}

// IsRead returns true if the notification has been read
func (n *Notification) IsRead() bool {
	return n.Read
}
