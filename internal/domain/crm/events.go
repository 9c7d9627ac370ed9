package crm

import (
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeLead = "Lead"
	AggregateTypeDeal = "Deal"
)

// Event type constants
const (
	EventTypeLeadCreated       = "LeadCreated"
	EventTypeLeadStatusChanged = "LeadStatusChanged"
	EventTypeLeadConverted     = "LeadConverted"
	EventTypeDealCreated       = "DealCreated"
	EventTypeDealStageChanged  = "DealStageChanged"
)

// LeadCreatedEvent is published when a new lead is created
type LeadCreatedEvent struct {
	shared.BaseDomainEvent
	LeadID uuid.UUID  `json:"lead_id"`
	Title  string     `json:"title"`
	Source LeadSource `json:"source"`
}

// NewLeadCreatedEvent creates a new LeadCreatedEvent
func NewLeadCreatedEvent(lead *Lead) *LeadCreatedEvent {
	return &LeadCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadCreated, AggregateTypeLead, lead.ID, lead.CompanyID),
		LeadID:          lead.ID,
		Title:           lead.Title,
		Source:          lead.Source,
	}
}

// LeadStatusChangedEvent is published when a lead's status changes
type LeadStatusChangedEvent struct {
	shared.BaseDomainEvent
	LeadID    uuid.UUID  `json:"lead_id"`
	OldStatus LeadStatus `json:"old_status"`
	NewStatus LeadStatus `json:"new_status"`
}

// NewLeadStatusChangedEvent creates a new LeadStatusChangedEvent
func NewLeadStatusChangedEvent(lead *Lead, oldStatus, newStatus LeadStatus) *LeadStatusChangedEvent {
	return &LeadStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadStatusChanged, AggregateTypeLead, lead.ID, lead.CompanyID),
		LeadID:          lead.ID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// LeadConvertedEvent is published when a lead is converted to a deal
type LeadConvertedEvent struct {
	shared.BaseDomainEvent
	LeadID uuid.UUID `json:"lead_id"`
	DealID uuid.UUID `json:"deal_id"`
	Title  string    `json:"title"`
}

// NewLeadConvertedEvent creates a new LeadConvertedEvent
func NewLeadConvertedEvent(lead *Lead, deal *Deal) *LeadConvertedEvent {
	return &LeadConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLeadConverted, AggregateTypeLead, lead.ID, lead.CompanyID),
		LeadID:          lead.ID,
		DealID:          deal.ID,
		Title:           lead.Title,
	}
}

// DealCreatedEvent is published when a new deal is created
type DealCreatedEvent struct {
	shared.BaseDomainEvent
	DealID uuid.UUID       `json:"deal_id"`
	Title  string          `json:"title"`
	Value  decimal.Decimal `json:"value"`
}

// NewDealCreatedEvent creates a new DealCreatedEvent
func NewDealCreatedEvent(deal *Deal) *DealCreatedEvent {
	return &DealCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDealCreated, AggregateTypeDeal, deal.ID, deal.CompanyID),
		DealID:          deal.ID,
		Title:           deal.Title,
		Value:           deal.Value,
	}
}

// DealStageChangedEvent is published when a deal moves through the pipeline
type DealStageChangedEvent struct {
	shared.BaseDomainEvent
	DealID   uuid.UUID `json:"deal_id"`
	OldStage DealStage `json:"old_stage"`
	NewStage DealStage `json:"new_stage"`
}

// NewDealStageChangedEvent creates a new DealStageChangedEvent
func NewDealStageChangedEvent(deal *Deal, oldStage, newStage DealStage) *DealStageChangedEvent {
	return &DealStageChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDealStageChanged, AggregateTypeDeal, deal.ID, deal.CompanyID),
		DealID:          deal.ID,
		OldStage:        oldStage,
		NewStage:        newStage,
	}
}
