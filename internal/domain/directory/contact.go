package directory

import (
	"strings"
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// Contact represents a person attached to a company: a customer contact,
// a lead contact, or a deal counterpart.
type Contact struct {
	shared.CompanyAggregateRoot
	FirstName string                `gorm:"type:varchar(100);not null"`
	LastName  string                `gorm:"type:varchar(100);not null"`
	Email     string                `gorm:"type:varchar(200);index"`
	Phone     string                `gorm:"type:varchar(50);index"`
	Position  string                `gorm:"type:varchar(100)"`
	Notes     valueobject.EditorDoc `gorm:"type:jsonb"`
	LeadID    *uuid.UUID            `gorm:"type:uuid;index"`
	DealID    *uuid.UUID            `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Contact) TableName() string {
	return "contacts"
}

// NewContact creates a new contact for a company
func NewContact(companyID uuid.UUID, firstName, lastName string) (*Contact, error) {
	if err := validatePersonName(firstName, "first name"); err != nil {
		return nil, err
	}
	if err := validatePersonName(lastName, "last name"); err != nil {
		return nil, err
	}

	contact := &Contact{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		FirstName:            strings.TrimSpace(firstName),
		LastName:             strings.TrimSpace(lastName),
		Notes:                valueobject.NewEditorDoc(),
	}

	contact.AddDomainEvent(NewContactCreatedEvent(contact))

	return contact, nil
}

// Update updates the contact's name and position
func (c *Contact) Update(firstName, lastName, position string) error {
	if err := validatePersonName(firstName, "first name"); err != nil {
		return err
	}
	if err := validatePersonName(lastName, "last name"); err != nil {
		return err
	}
	if position != "" && len(position) > 100 {
		return shared.NewDomainError("INVALID_POSITION", "Position cannot exceed 100 characters")
	}

	c.FirstName = strings.TrimSpace(firstName)
	c.LastName = strings.TrimSpace(lastName)
	c.Position = position
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContactInfo sets the contact's email and phone
func (c *Contact) SetContactInfo(email, phone string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
		email = strings.ToLower(strings.TrimSpace(email))
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	c.Email = email
	c.Phone = phone
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the contact's notes document
func (c *Contact) SetNotes(notes valueobject.EditorDoc) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// LinkLead links the contact to a lead
func (c *Contact) LinkLead(leadID uuid.UUID) {
	c.LeadID = &leadID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// LinkDeal links the contact to a deal
func (c *Contact) LinkDeal(dealID uuid.UUID) {
	c.DealID = &dealID
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// FullName returns the contact's display name
func (c *Contact) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

func validatePersonName(name, field string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Contact "+field+" cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Contact "+field+" cannot exceed 100 characters")
	}
	return nil
}
