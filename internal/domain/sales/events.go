package sales

import (
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Aggregate type constants
const (
	AggregateTypeQuote        = "Quote"
	AggregateTypeOrder        = "Order"
	AggregateTypeInvoice      = "Invoice"
	AggregateTypeDeliveryNote = "DeliveryNote"
)

// Event type constants
const (
	EventTypeQuoteCreated               = "QuoteCreated"
	EventTypeQuoteStatusChanged         = "QuoteStatusChanged"
	EventTypeQuoteConverted             = "QuoteConverted"
	EventTypeOrderCreated               = "OrderCreated"
	EventTypeOrderStatusChanged         = "OrderStatusChanged"
	EventTypeOrderFulfilled             = "OrderFulfilled"
	EventTypeInvoiceCreated             = "InvoiceCreated"
	EventTypeInvoiceStatusChanged       = "InvoiceStatusChanged"
	EventTypeInvoicePaymentRecorded     = "InvoicePaymentRecorded"
	EventTypeDeliveryNoteCreated        = "DeliveryNoteCreated"
	EventTypeDeliveryNoteStatusChanged  = "DeliveryNoteStatusChanged"
)

// QuoteCreatedEvent is published when a new quote is created
type QuoteCreatedEvent struct {
	shared.BaseDomainEvent
	QuoteID uuid.UUID `json:"quote_id"`
	Number  string    `json:"number"`
}

// NewQuoteCreatedEvent creates a new QuoteCreatedEvent
func NewQuoteCreatedEvent(quote *Quote) *QuoteCreatedEvent {
	return &QuoteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteCreated, AggregateTypeQuote, quote.ID, quote.CompanyID),
		QuoteID:         quote.ID,
		Number:          quote.Number,
	}
}

// QuoteStatusChangedEvent is published when a quote's status changes
type QuoteStatusChangedEvent struct {
	shared.BaseDomainEvent
	QuoteID   uuid.UUID   `json:"quote_id"`
	Number    string      `json:"number"`
	OldStatus QuoteStatus `json:"old_status"`
	NewStatus QuoteStatus `json:"new_status"`
}

// NewQuoteStatusChangedEvent creates a new QuoteStatusChangedEvent
func NewQuoteStatusChangedEvent(quote *Quote, oldStatus, newStatus QuoteStatus) *QuoteStatusChangedEvent {
	return &QuoteStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteStatusChanged, AggregateTypeQuote, quote.ID, quote.CompanyID),
		QuoteID:         quote.ID,
		Number:          quote.Number,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// QuoteConvertedEvent is published when a quote becomes an order
type QuoteConvertedEvent struct {
	shared.BaseDomainEvent
	QuoteID     uuid.UUID `json:"quote_id"`
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
}

// NewQuoteConvertedEvent creates a new QuoteConvertedEvent
func NewQuoteConvertedEvent(quote *Quote, order *Order) *QuoteConvertedEvent {
	return &QuoteConvertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeQuoteConverted, AggregateTypeQuote, quote.ID, quote.CompanyID),
		QuoteID:         quote.ID,
		OrderID:         order.ID,
		OrderNumber:     order.Number,
	}
}

// OrderCreatedEvent is published when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"order_id"`
	Number  string    `json:"number"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		Number:          order.Number,
	}
}

// OrderStatusChangedEvent is published when an order's status changes
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID   uuid.UUID   `json:"order_id"`
	Number    string      `json:"number"`
	OldStatus OrderStatus `json:"old_status"`
	NewStatus OrderStatus `json:"new_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(order *Order, oldStatus, newStatus OrderStatus) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, order.ID, order.CompanyID),
		OrderID:         order.ID,
		Number:          order.Number,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// OrderFulfilledEvent is published when an order produces a delivery note
type OrderFulfilledEvent struct {
	shared.BaseDomainEvent
	OrderID            uuid.UUID `json:"order_id"`
	DeliveryNoteID     uuid.UUID `json:"delivery_note_id"`
	DeliveryNoteNumber string    `json:"delivery_note_number"`
}

// NewOrderFulfilledEvent creates a new OrderFulfilledEvent
func NewOrderFulfilledEvent(order *Order, note *DeliveryNote) *OrderFulfilledEvent {
	return &OrderFulfilledEvent{
		BaseDomainEvent:    shared.NewBaseDomainEvent(EventTypeOrderFulfilled, AggregateTypeOrder, order.ID, order.CompanyID),
		OrderID:            order.ID,
		DeliveryNoteID:     note.ID,
		DeliveryNoteNumber: note.Number,
	}
}

// InvoiceCreatedEvent is published when a new invoice is created
type InvoiceCreatedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID `json:"invoice_id"`
	Number    string    `json:"number"`
}

// NewInvoiceCreatedEvent creates a new InvoiceCreatedEvent
func NewInvoiceCreatedEvent(invoice *Invoice) *InvoiceCreatedEvent {
	return &InvoiceCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceCreated, AggregateTypeInvoice, invoice.ID, invoice.CompanyID),
		InvoiceID:       invoice.ID,
		Number:          invoice.Number,
	}
}

// InvoiceStatusChangedEvent is published when an invoice's status changes
type InvoiceStatusChangedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID     `json:"invoice_id"`
	Number    string        `json:"number"`
	OldStatus InvoiceStatus `json:"old_status"`
	NewStatus InvoiceStatus `json:"new_status"`
}

// NewInvoiceStatusChangedEvent creates a new InvoiceStatusChangedEvent
func NewInvoiceStatusChangedEvent(invoice *Invoice, oldStatus, newStatus InvoiceStatus) *InvoiceStatusChangedEvent {
	return &InvoiceStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoiceStatusChanged, AggregateTypeInvoice, invoice.ID, invoice.CompanyID),
		InvoiceID:       invoice.ID,
		Number:          invoice.Number,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}

// InvoicePaymentRecordedEvent is published when a payment is recorded
type InvoicePaymentRecordedEvent struct {
	shared.BaseDomainEvent
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Number    string          `json:"number"`
	PaymentID uuid.UUID       `json:"payment_id"`
	Amount    decimal.Decimal `json:"amount"`
	Balance   decimal.Decimal `json:"balance"`
}

// NewInvoicePaymentRecordedEvent creates a new InvoicePaymentRecordedEvent
func NewInvoicePaymentRecordedEvent(invoice *Invoice, payment *Payment) *InvoicePaymentRecordedEvent {
	return &InvoicePaymentRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeInvoicePaymentRecorded, AggregateTypeInvoice, invoice.ID, invoice.CompanyID),
		InvoiceID:       invoice.ID,
		Number:          invoice.Number,
		PaymentID:       payment.ID,
		Amount:          payment.Amount,
		Balance:         invoice.Balance(),
	}
}

// DeliveryNoteCreatedEvent is published when a new delivery note is created
type DeliveryNoteCreatedEvent struct {
	shared.BaseDomainEvent
	DeliveryNoteID uuid.UUID `json:"delivery_note_id"`
	Number         string    `json:"number"`
	OrderID        uuid.UUID `json:"order_id"`
}

// NewDeliveryNoteCreatedEvent creates a new DeliveryNoteCreatedEvent
func NewDeliveryNoteCreatedEvent(note *DeliveryNote) *DeliveryNoteCreatedEvent {
	return &DeliveryNoteCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryNoteCreated, AggregateTypeDeliveryNote, note.ID, note.CompanyID),
		DeliveryNoteID:  note.ID,
		Number:          note.Number,
		OrderID:         note.OrderID,
	}
}

// DeliveryNoteStatusChangedEvent is published when a delivery note's status changes
type DeliveryNoteStatusChangedEvent struct {
	shared.BaseDomainEvent
	DeliveryNoteID uuid.UUID          `json:"delivery_note_id"`
	Number         string             `json:"number"`
	OldStatus      DeliveryNoteStatus `json:"old_status"`
	NewStatus      DeliveryNoteStatus `json:"new_status"`
}

// NewDeliveryNoteStatusChangedEvent creates a new DeliveryNoteStatusChangedEvent
func NewDeliveryNoteStatusChangedEvent(note *DeliveryNote, oldStatus, newStatus DeliveryNoteStatus) *DeliveryNoteStatusChangedEvent {
	return &DeliveryNoteStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeDeliveryNoteStatusChanged, AggregateTypeDeliveryNote, note.ID, note.CompanyID),
		DeliveryNoteID:  note.ID,
		Number:          note.Number,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
	}
}
