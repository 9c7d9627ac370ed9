package sales

import (
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteStatus represents the lifecycle status of a quote
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// IsValid checks if the quote status is valid
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	}
	return false
}

// CanTransitionTo checks if a status transition is allowed
func (s QuoteStatus) CanTransitionTo(target QuoteStatus) bool {
	switch s {
	case QuoteStatusDraft:
		return target == QuoteStatusSent
	case QuoteStatusSent:
		return target == QuoteStatusAccepted || target == QuoteStatusRejected || target == QuoteStatusExpired
	case QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return false // terminal
	}
	return false
}

// Quote is a priced offer sent to a contact. Accepting a quote converts
// it into an order carrying the same line items.
type Quote struct {
	Document
	Status         QuoteStatus           `gorm:"type:varchar(20);not null;default:'draft';index"`
	ValidUntil     *time.Time            `gorm:"index"`
	HeaderNotes    valueobject.EditorDoc `gorm:"type:jsonb"`
	FooterNotes    valueobject.EditorDoc `gorm:"type:jsonb"`
	ConvertedOrder *uuid.UUID            `gorm:"type:uuid;index"` // set on conversion
	SentAt         *time.Time
	DecidedAt      *time.Time // accepted or rejected
}

// TableName returns the table name for GORM
func (Quote) TableName() string {
	return "quotes"
}

// NewQuote creates a new draft quote
func NewQuote(companyID uuid.UUID, number string) (*Quote, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Quote number cannot be empty")
	}

	quote := &Quote{
		Document:    newDocument(companyID, number),
		Status:      QuoteStatusDraft,
		HeaderNotes: valueobject.NewEditorDoc(),
		FooterNotes: valueobject.NewEditorDoc(),
	}

	quote.AddDomainEvent(NewQuoteCreatedEvent(quote))

	return quote, nil
}

// AddItem adds a line item to a draft quote
func (q *Quote) AddItem(productID uuid.UUID, productName, productCode, unit string, quantity, unitPrice, discountPercent, vatRate decimal.Decimal) (*LineItem, error) {
	if err := q.ensureDraft(); err != nil {
		return nil, err
	}
	return q.addItem(DocumentKindQuote, productID, productName, productCode, unit, quantity, unitPrice, discountPercent, vatRate)
}

// UpdateItemQuantity changes a line item's quantity on a draft quote
func (q *Quote) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if err := q.ensureDraft(); err != nil {
		return err
	}
	return q.updateItemQuantity(itemID, quantity)
}

// RemoveItem removes a line item from a draft quote
func (q *Quote) RemoveItem(itemID uuid.UUID) error {
	if err := q.ensureDraft(); err != nil {
		return err
	}
	return q.removeItem(itemID)
}

// SetDiscountPercent sets the quote-level discount
func (q *Quote) SetDiscountPercent(percent decimal.Decimal) error {
	if err := q.ensureDraft(); err != nil {
		return err
	}
	return q.setDiscountPercent(percent)
}

// SetValidUntil sets the quote's validity deadline
func (q *Quote) SetValidUntil(validUntil *time.Time) error {
	if err := q.ensureDraft(); err != nil {
		return err
	}

	q.ValidUntil = validUntil
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// SetNotes sets the header and footer documents printed on the quote
func (q *Quote) SetNotes(header, footer valueobject.EditorDoc) error {
	if err := q.ensureDraft(); err != nil {
		return err
	}

	q.HeaderNotes = header
	q.FooterNotes = footer
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	return nil
}

// Send marks the quote as sent to the recipient
func (q *Quote) Send() error {
	if !q.Status.CanTransitionTo(QuoteStatusSent) {
		return shared.NewDomainError("INVALID_TRANSITION", "Only draft quotes can be sent")
	}
	if len(q.Items) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "Cannot send a quote without line items")
	}

	now := time.Now()
	q.Status = QuoteStatusSent
	q.SentAt = &now
	q.UpdatedAt = now
	q.IncrementVersion()

	q.AddDomainEvent(NewQuoteStatusChangedEvent(q, QuoteStatusDraft, QuoteStatusSent))

	return nil
}

// Accept marks a sent quote as accepted
func (q *Quote) Accept() error {
	return q.decide(QuoteStatusAccepted)
}

// Reject marks a sent quote as rejected
func (q *Quote) Reject() error {
	return q.decide(QuoteStatusRejected)
}

// Expire marks a sent quote as expired
func (q *Quote) Expire() error {
	return q.decide(QuoteStatusExpired)
}

func (q *Quote) decide(target QuoteStatus) error {
	if !q.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION", "Cannot move quote from "+string(q.Status)+" to "+string(target))
	}

	oldStatus := q.Status
	now := time.Now()
	q.Status = target
	q.DecidedAt = &now
	q.UpdatedAt = now
	q.IncrementVersion()

	q.AddDomainEvent(NewQuoteStatusChangedEvent(q, oldStatus, target))

	return nil
}

// ConvertToOrder builds a draft order from an accepted quote. The order
// copies the quote's line items, discount, and contact.
func (q *Quote) ConvertToOrder(orderNumber string) (*Order, error) {
	if q.Status != QuoteStatusAccepted {
		return nil, shared.NewDomainError("INVALID_STATE", "Only accepted quotes can be converted to orders")
	}
	if q.ConvertedOrder != nil {
		return nil, shared.NewDomainError("ALREADY_CONVERTED", "Quote has already been converted")
	}

	order, err := NewOrder(q.CompanyID, orderNumber)
	if err != nil {
		return nil, err
	}
	order.SourceQuoteID = &q.ID
	order.ContactID = q.ContactID
	if err := order.setDiscountPercent(q.DiscountPercent); err != nil {
		return nil, err
	}
	for _, item := range q.Items {
		if _, err := order.AddItem(item.ProductID, item.ProductName, item.ProductCode, item.Unit, item.Quantity, item.UnitPrice, item.DiscountPercent, item.VATRate); err != nil {
			return nil, err
		}
	}

	q.ConvertedOrder = &order.ID
	q.UpdatedAt = time.Now()
	q.IncrementVersion()

	q.AddDomainEvent(NewQuoteConvertedEvent(q, order))

	return order, nil
}

// IsExpired reports whether the validity deadline has passed
func (q *Quote) IsExpired(now time.Time) bool {
	return q.ValidUntil != nil && q.ValidUntil.Before(now)
}

// IsDraft returns true if the quote is still editable
func (q *Quote) IsDraft() bool {
	return q.Status == QuoteStatusDraft
}

func (q *Quote) ensureDraft() error {
	if q.Status != QuoteStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft quotes can be modified")
	}
	return nil
}
