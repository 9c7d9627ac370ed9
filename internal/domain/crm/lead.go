package crm

import (
	"regexp"
	"strings"
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LeadSource represents where a lead came from
type LeadSource string

const (
	LeadSourceWeb      LeadSource = "web"
	LeadSourceReferral LeadSource = "referral"
	LeadSourceOutbound LeadSource = "outbound"
	LeadSourceImport   LeadSource = "import"
	LeadSourceScrape   LeadSource = "scrape"
)

// IsValid checks if the lead source is valid
func (s LeadSource) IsValid() bool {
	switch s {
	case LeadSourceWeb, LeadSourceReferral, LeadSourceOutbound, LeadSourceImport, LeadSourceScrape:
		return true
	}
	return false
}

// LeadStatus represents the qualification status of a lead
type LeadStatus string

const (
	LeadStatusNew          LeadStatus = "new"
	LeadStatusContacted    LeadStatus = "contacted"
	LeadStatusQualified    LeadStatus = "qualified"
	LeadStatusDisqualified LeadStatus = "disqualified"
	LeadStatusConverted    LeadStatus = "converted"
)

// IsValid checks if the lead status is valid
func (s LeadStatus) IsValid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified, LeadStatusDisqualified, LeadStatusConverted:
		return true
	}
	return false
}

// CanTransitionTo checks if a status transition is allowed
func (s LeadStatus) CanTransitionTo(target LeadStatus) bool {
	switch s {
	case LeadStatusNew:
		return target == LeadStatusContacted || target == LeadStatusQualified || target == LeadStatusDisqualified
	case LeadStatusContacted:
		return target == LeadStatusQualified || target == LeadStatusDisqualified
	case LeadStatusQualified:
		return target == LeadStatusConverted || target == LeadStatusDisqualified
	case LeadStatusDisqualified:
		return target == LeadStatusContacted // re-engaging a dead lead
	case LeadStatusConverted:
		return false // terminal
	}
	return false
}

// Lead is an unqualified sales opportunity. Qualifying and converting a
// lead produces a Deal.
type Lead struct {
	shared.CompanyAggregateRoot
	Title          string                `gorm:"type:varchar(200);not null"`
	Source         LeadSource            `gorm:"type:varchar(20);not null;default:'web'"`
	Status         LeadStatus            `gorm:"type:varchar(20);not null;default:'new';index"`
	EstimatedValue decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	ContactName    string                `gorm:"type:varchar(200)"`
	ContactEmail   string                `gorm:"type:varchar(200);index"`
	ContactPhone   string                `gorm:"type:varchar(50)"`
	Notes          valueobject.EditorDoc `gorm:"type:jsonb"`
	ConvertedDeal  *uuid.UUID            `gorm:"type:uuid;index"` // set when converted
}

// TableName returns the table name for GORM
func (Lead) TableName() string {
	return "leads"
}

// NewLead creates a new lead in the "new" status
func NewLead(companyID uuid.UUID, title string, source LeadSource) (*Lead, error) {
	if err := validateLeadTitle(title); err != nil {
		return nil, err
	}
	if !source.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Invalid lead source")
	}

	lead := &Lead{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Title:                strings.TrimSpace(title),
		Source:               source,
		Status:               LeadStatusNew,
		EstimatedValue:       decimal.Zero,
		Notes:                valueobject.NewEditorDoc(),
	}

	lead.AddDomainEvent(NewLeadCreatedEvent(lead))

	return lead, nil
}

// Update updates the lead's title and estimated value
func (l *Lead) Update(title string, estimatedValue decimal.Decimal) error {
	if err := validateLeadTitle(title); err != nil {
		return err
	}
	if estimatedValue.IsNegative() {
		return shared.NewDomainError("INVALID_VALUE", "Estimated value cannot be negative")
	}

	l.Title = strings.TrimSpace(title)
	l.EstimatedValue = estimatedValue
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetContactInfo sets the lead's raw contact details
func (l *Lead) SetContactInfo(name, email, phone string) error {
	if name != "" && len(name) > 200 {
		return shared.NewDomainError("INVALID_CONTACT_NAME", "Contact name cannot exceed 200 characters")
	}
	if email != "" {
		if err := validateLeadEmail(email); err != nil {
			return err
		}
		email = strings.ToLower(strings.TrimSpace(email))
	}
	if phone != "" && len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}

	l.ContactName = name
	l.ContactEmail = email
	l.ContactPhone = phone
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// SetNotes sets the lead's notes document
func (l *Lead) SetNotes(notes valueobject.EditorDoc) {
	l.Notes = notes
	l.UpdatedAt = time.Now()
	l.IncrementVersion()
}

// ChangeStatus moves the lead through its qualification pipeline
func (l *Lead) ChangeStatus(target LeadStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "Invalid lead status")
	}
	if target == LeadStatusConverted {
		return shared.NewDomainError("INVALID_TRANSITION", "Use Convert to convert a lead")
	}
	if !l.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION", "Cannot transition lead from "+string(l.Status)+" to "+string(target))
	}

	oldStatus := l.Status
	l.Status = target
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeadStatusChangedEvent(l, oldStatus, target))

	return nil
}

// Convert converts a qualified lead into a deal. The created deal inherits
// the lead's title and estimated value.
func (l *Lead) Convert() (*Deal, error) {
	if l.Status == LeadStatusConverted {
		return nil, shared.NewDomainError("ALREADY_CONVERTED", "Lead has already been converted")
	}
	if !l.Status.CanTransitionTo(LeadStatusConverted) {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Only qualified leads can be converted")
	}

	deal, err := NewDeal(l.CompanyID, l.Title, l.EstimatedValue)
	if err != nil {
		return nil, err
	}

	oldStatus := l.Status
	l.Status = LeadStatusConverted
	l.ConvertedDeal = &deal.ID
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewLeadConvertedEvent(l, deal))
	l.AddDomainEvent(NewLeadStatusChangedEvent(l, oldStatus, LeadStatusConverted))

	return deal, nil
}

// IsConverted returns true if the lead has been converted to a deal
func (l *Lead) IsConverted() bool {
	return l.Status == LeadStatusConverted
}

func validateLeadTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Lead title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Lead title cannot exceed 200 characters")
	}
	return nil
}

func validateLeadEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}
