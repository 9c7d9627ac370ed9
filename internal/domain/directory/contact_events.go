package directory

import (
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const AggregateTypeContact = "Contact"

const (
	EventTypeContactCreated = "ContactCreated"
)

// ContactCreatedEvent is published when a new contact is created
type ContactCreatedEvent struct {
	shared.BaseDomainEvent
	ContactID uuid.UUID `json:"contact_id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
}

// NewContactCreatedEvent creates a new ContactCreatedEvent
func NewContactCreatedEvent(contact *Contact) *ContactCreatedEvent {
	return &ContactCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeContactCreated, AggregateTypeContact, contact.ID, contact.CompanyID),
		ContactID:       contact.ID,
		FullName:        contact.FullName(),
		Email:           contact.Email,
	}
}
