package sales

import (
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents the lifecycle status of an order
type OrderStatus string

const (
	OrderStatusDraft     OrderStatus = "draft"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusFulfilled OrderStatus = "fulfilled"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusConfirmed, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if a status transition is allowed
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusConfirmed || target == OrderStatusCancelled
	case OrderStatusConfirmed:
		return target == OrderStatusFulfilled || target == OrderStatusCancelled
	case OrderStatusFulfilled, OrderStatusCancelled:
		return false // terminal
	}
	return false
}

// Order is a confirmed commitment to deliver goods or services.
// Fulfilling an order produces a delivery note.
type Order struct {
	Document
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	SourceQuoteID *uuid.UUID  `gorm:"type:uuid;index"`
	ConfirmedAt   *time.Time
	FulfilledAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new draft order
func NewOrder(companyID uuid.UUID, number string) (*Order, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Order number cannot be empty")
	}

	order := &Order{
		Document: newDocument(companyID, number),
		Status:   OrderStatusDraft,
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem adds a line item to a draft order
func (o *Order) AddItem(productID uuid.UUID, productName, productCode, unit string, quantity, unitPrice, discountPercent, vatRate decimal.Decimal) (*LineItem, error) {
	if err := o.ensureDraft(); err != nil {
		return nil, err
	}
	return o.addItem(DocumentKindOrder, productID, productName, productCode, unit, quantity, unitPrice, discountPercent, vatRate)
}

// UpdateItemQuantity changes a line item's quantity on a draft order
func (o *Order) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if err := o.ensureDraft(); err != nil {
		return err
	}
	return o.updateItemQuantity(itemID, quantity)
}

// RemoveItem removes a line item from a draft order
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if err := o.ensureDraft(); err != nil {
		return err
	}
	return o.removeItem(itemID)
}

// SetDiscountPercent sets the order-level discount
func (o *Order) SetDiscountPercent(percent decimal.Decimal) error {
	if err := o.ensureDraft(); err != nil {
		return err
	}
	return o.setDiscountPercent(percent)
}

// Confirm confirms a draft order
func (o *Order) Confirm() error {
	if !o.Status.CanTransitionTo(OrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_TRANSITION", "Only draft orders can be confirmed")
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "Cannot confirm an order without line items")
	}

	now := time.Now()
	o.Status = OrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, OrderStatusDraft, OrderStatusConfirmed))

	return nil
}

// Fulfill marks a confirmed order as fulfilled and produces a delivery
// note carrying the order's line items and shipping address.
func (o *Order) Fulfill(deliveryNoteNumber string, shippingAddress valueobject.EditorDoc) (*DeliveryNote, error) {
	if !o.Status.CanTransitionTo(OrderStatusFulfilled) {
		return nil, shared.NewDomainError("INVALID_TRANSITION", "Only confirmed orders can be fulfilled")
	}

	note, err := NewDeliveryNote(o.CompanyID, deliveryNoteNumber, o.ID)
	if err != nil {
		return nil, err
	}
	note.ContactID = o.ContactID
	note.ShippingAddress = shippingAddress
	for _, item := range o.Items {
		if _, err := note.AddItem(item.ProductID, item.ProductName, item.ProductCode, item.Unit, item.Quantity); err != nil {
			return nil, err
		}
	}

	oldStatus := o.Status
	now := time.Now()
	o.Status = OrderStatusFulfilled
	o.FulfilledAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, OrderStatusFulfilled))
	o.AddDomainEvent(NewOrderFulfilledEvent(o, note))

	return note, nil
}

// Cancel cancels a draft or confirmed order
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(OrderStatusCancelled) {
		return shared.NewDomainError("INVALID_TRANSITION", "Cannot cancel a "+string(o.Status)+" order")
	}
	if len(reason) > 500 {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason cannot exceed 500 characters")
	}

	oldStatus := o.Status
	now := time.Now()
	o.Status = OrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, oldStatus, OrderStatusCancelled))

	return nil
}

// IsDraft returns true if the order is still editable
func (o *Order) IsDraft() bool {
	return o.Status == OrderStatusDraft
}

func (o *Order) ensureDraft() error {
	if o.Status != OrderStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft orders can be modified")
	}
	return nil
}
