package sales

import (
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryNoteStatus represents the lifecycle status of a delivery note
type DeliveryNoteStatus string

const (
	DeliveryNoteStatusDraft     DeliveryNoteStatus = "draft"
	DeliveryNoteStatusIssued    DeliveryNoteStatus = "issued"
	DeliveryNoteStatusDelivered DeliveryNoteStatus = "delivered"
)

// IsValid checks if the delivery note status is valid
func (s DeliveryNoteStatus) IsValid() bool {
	switch s {
	case DeliveryNoteStatusDraft, DeliveryNoteStatusIssued, DeliveryNoteStatusDelivered:
		return true
	}
	return false
}

// CanTransitionTo checks if a status transition is allowed
func (s DeliveryNoteStatus) CanTransitionTo(target DeliveryNoteStatus) bool {
	switch s {
	case DeliveryNoteStatusDraft:
		return target == DeliveryNoteStatusIssued
	case DeliveryNoteStatusIssued:
		return target == DeliveryNoteStatusDelivered
	case DeliveryNoteStatusDelivered:
		return false // terminal
	}
	return false
}

// DeliveryNote accompanies a shipment; only quantities matter, prices on
// its lines are informational.
type DeliveryNote struct {
	Document
	Status          DeliveryNoteStatus    `gorm:"type:varchar(20);not null;default:'draft';index"`
	OrderID         uuid.UUID             `gorm:"type:uuid;not null;index"`
	ShippingAddress valueobject.EditorDoc `gorm:"type:jsonb"`
	IssuedAt        *time.Time
	DeliveredAt     *time.Time
}

// TableName returns the table name for GORM
func (DeliveryNote) TableName() string {
	return "delivery_notes"
}

// NewDeliveryNote creates a new draft delivery note for an order
func NewDeliveryNote(companyID uuid.UUID, number string, orderID uuid.UUID) (*DeliveryNote, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Delivery note number cannot be empty")
	}
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Delivery note requires a source order")
	}

	note := &DeliveryNote{
		Document:        newDocument(companyID, number),
		Status:          DeliveryNoteStatusDraft,
		OrderID:         orderID,
		ShippingAddress: valueobject.NewEditorDoc(),
	}

	note.AddDomainEvent(NewDeliveryNoteCreatedEvent(note))

	return note, nil
}

// AddItem adds a line to a draft delivery note. Delivery lines carry no
// prices; amounts stay zero.
func (n *DeliveryNote) AddItem(productID uuid.UUID, productName, productCode, unit string, quantity decimal.Decimal) (*LineItem, error) {
	if err := n.ensureDraft(); err != nil {
		return nil, err
	}
	return n.addItem(DocumentKindDeliveryNote, productID, productName, productCode, unit, quantity, decimal.Zero, decimal.Zero, decimal.Zero)
}

// UpdateItemQuantity changes a line's quantity on a draft delivery note
func (n *DeliveryNote) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if err := n.ensureDraft(); err != nil {
		return err
	}
	return n.updateItemQuantity(itemID, quantity)
}

// RemoveItem removes a line from a draft delivery note
func (n *DeliveryNote) RemoveItem(itemID uuid.UUID) error {
	if err := n.ensureDraft(); err != nil {
		return err
	}
	return n.removeItem(itemID)
}

// SetShippingAddress sets the shipping address document
func (n *DeliveryNote) SetShippingAddress(address valueobject.EditorDoc) error {
	if err := n.ensureDraft(); err != nil {
		return err
	}

	n.ShippingAddress = address
	n.UpdatedAt = time.Now()
	n.IncrementVersion()

	return nil
}

// Issue marks the delivery note as issued for shipping
func (n *DeliveryNote) Issue() error {
	if !n.Status.CanTransitionTo(DeliveryNoteStatusIssued) {
		return shared.NewDomainError("INVALID_TRANSITION", "Only draft delivery notes can be issued")
	}
	if len(n.Items) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "Cannot issue a delivery note without lines")
	}

	now := time.Now()
	n.Status = DeliveryNoteStatusIssued
	n.IssuedAt = &now
	n.UpdatedAt = now
	n.IncrementVersion()

	n.AddDomainEvent(NewDeliveryNoteStatusChangedEvent(n, DeliveryNoteStatusDraft, DeliveryNoteStatusIssued))

	return nil
}

// MarkDelivered marks the shipment as received
func (n *DeliveryNote) MarkDelivered() error {
	if !n.Status.CanTransitionTo(DeliveryNoteStatusDelivered) {
		return shared.NewDomainError("INVALID_TRANSITION", "Only issued delivery notes can be marked delivered")
	}

	oldStatus := n.Status
	now := time.Now()
	n.Status = DeliveryNoteStatusDelivered
	n.DeliveredAt = &now
	n.UpdatedAt = now
	n.IncrementVersion()

	n.AddDomainEvent(NewDeliveryNoteStatusChangedEvent(n, oldStatus, DeliveryNoteStatusDelivered))

	return nil
}

// IsDraft returns true if the delivery note is still editable
func (n *DeliveryNote) IsDraft() bool {
	return n.Status == DeliveryNoteStatusDraft
}

func (n *DeliveryNote) ensureDraft() error {
	if n.Status != DeliveryNoteStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft delivery notes can be modified")
	}
	return nil
}
