package crm

import (
	"strings"
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealStage represents the pipeline stage of a deal
type DealStage string

const (
	DealStageProspecting DealStage = "prospecting"
	DealStageProposal    DealStage = "proposal"
	DealStageNegotiation DealStage = "negotiation"
	DealStageWon         DealStage = "won"
	DealStageLost        DealStage = "lost"
)

// IsValid checks if the deal stage is valid
func (s DealStage) IsValid() bool {
	switch s {
	case DealStageProspecting, DealStageProposal, DealStageNegotiation, DealStageWon, DealStageLost:
		return true
	}
	return false
}

// IsClosed returns true for terminal stages
func (s DealStage) IsClosed() bool {
	return s == DealStageWon || s == DealStageLost
}

// CanTransitionTo checks if a stage transition is allowed.
// Deals may move forward or backward through the open stages, but
// closed stages are terminal.
func (s DealStage) CanTransitionTo(target DealStage) bool {
	if s.IsClosed() {
		return false
	}
	switch target {
	case DealStageProspecting, DealStageProposal, DealStageNegotiation:
		return target != s
	case DealStageWon, DealStageLost:
		return true
	}
	return false
}

// Deal is a qualified sales opportunity moving through the pipeline
type Deal struct {
	shared.CompanyAggregateRoot
	Title             string          `gorm:"type:varchar(200);not null"`
	Stage             DealStage       `gorm:"type:varchar(20);not null;default:'prospecting';index"`
	Value             decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Currency          string          `gorm:"type:varchar(3);not null;default:'EUR'"`
	Probability       int             `gorm:"not null;default:0"` // 0-100
	ExpectedCloseDate *time.Time      `gorm:"index"`
	ContactID         *uuid.UUID      `gorm:"type:uuid;index"`
	ClosedAt          *time.Time
}

// TableName returns the table name for GORM
func (Deal) TableName() string {
	return "deals"
}

// NewDeal creates a new deal in the prospecting stage
func NewDeal(companyID uuid.UUID, title string, value decimal.Decimal) (*Deal, error) {
	if err := validateDealTitle(title); err != nil {
		return nil, err
	}
	if value.IsNegative() {
		return nil, shared.NewDomainError("INVALID_VALUE", "Deal value cannot be negative")
	}

	deal := &Deal{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Title:                strings.TrimSpace(title),
		Stage:                DealStageProspecting,
		Value:                value,
		Currency:             "EUR",
		Probability:          10,
	}

	deal.AddDomainEvent(NewDealCreatedEvent(deal))

	return deal, nil
}

// Update updates the deal's title, value, and probability
func (d *Deal) Update(title string, value decimal.Decimal, probability int) error {
	if err := validateDealTitle(title); err != nil {
		return err
	}
	if value.IsNegative() {
		return shared.NewDomainError("INVALID_VALUE", "Deal value cannot be negative")
	}
	if probability < 0 || probability > 100 {
		return shared.NewDomainError("INVALID_PROBABILITY", "Probability must be between 0 and 100")
	}
	if d.Stage.IsClosed() {
		return shared.NewDomainError("DEAL_CLOSED", "Closed deals cannot be modified")
	}

	d.Title = strings.TrimSpace(title)
	d.Value = value
	d.Probability = probability
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// SetExpectedCloseDate sets the expected close date
func (d *Deal) SetExpectedCloseDate(date *time.Time) error {
	if d.Stage.IsClosed() {
		return shared.NewDomainError("DEAL_CLOSED", "Closed deals cannot be modified")
	}

	d.ExpectedCloseDate = date
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// LinkContact links the deal to a contact
func (d *Deal) LinkContact(contactID uuid.UUID) error {
	if d.Stage.IsClosed() {
		return shared.NewDomainError("DEAL_CLOSED", "Closed deals cannot be modified")
	}

	d.ContactID = &contactID
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// ChangeStage moves the deal to another pipeline stage
func (d *Deal) ChangeStage(target DealStage) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_STAGE", "Invalid deal stage")
	}
	if !d.Stage.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION", "Cannot move deal from "+string(d.Stage)+" to "+string(target))
	}

	oldStage := d.Stage
	d.Stage = target
	if target.IsClosed() {
		now := time.Now()
		d.ClosedAt = &now
		if target == DealStageWon {
			d.Probability = 100
		} else {
			d.Probability = 0
		}
	}
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	d.AddDomainEvent(NewDealStageChangedEvent(d, oldStage, target))

	return nil
}

// WeightedValue returns value × probability, used by pipeline reporting
func (d *Deal) WeightedValue() decimal.Decimal {
	return d.Value.Mul(decimal.NewFromInt(int64(d.Probability))).Div(decimal.NewFromInt(100)).Round(2)
}

// IsOpen returns true if the deal is still in play
func (d *Deal) IsOpen() bool {
	return !d.Stage.IsClosed()
}

func validateDealTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Deal title cannot be empty")
	}
	if len(title) > 200 {
		return shared.NewDomainError("INVALID_TITLE", "Deal title cannot exceed 200 characters")
	}
	return nil
}
