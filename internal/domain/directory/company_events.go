package directory

import (
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Aggregate type constant
const AggregateTypeCompany = "Company"

// Event type constants
const (
	EventTypeCompanyCreated  = "CompanyCreated"
	EventTypeCompanyUpdated  = "CompanyUpdated"
	EventTypeCompanyArchived = "CompanyArchived"
)

// CompanyCreatedEvent is published when a new company is created
type CompanyCreatedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewCompanyCreatedEvent creates a new CompanyCreatedEvent
func NewCompanyCreatedEvent(company *Company) *CompanyCreatedEvent {
	return &CompanyCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyCreated, AggregateTypeCompany, company.ID, company.ID),
		Name:            company.Name,
	}
}

// CompanyUpdatedEvent is published when a company is updated
type CompanyUpdatedEvent struct {
	shared.BaseDomainEvent
	Name      string `json:"name"`
	LegalName string `json:"legal_name,omitempty"`
}

// NewCompanyUpdatedEvent creates a new CompanyUpdatedEvent
func NewCompanyUpdatedEvent(company *Company) *CompanyUpdatedEvent {
	return &CompanyUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyUpdated, AggregateTypeCompany, company.ID, company.ID),
		Name:            company.Name,
		LegalName:       company.LegalName,
	}
}

// CompanyArchivedEvent is published when a company is archived
type CompanyArchivedEvent struct {
	shared.BaseDomainEvent
	CompanyID uuid.UUID `json:"company_id"`
}

// NewCompanyArchivedEvent creates a new CompanyArchivedEvent
func NewCompanyArchivedEvent(company *Company) *CompanyArchivedEvent {
	return &CompanyArchivedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCompanyArchived, AggregateTypeCompany, company.ID, company.ID),
		CompanyID:       company.ID,
	}
}
