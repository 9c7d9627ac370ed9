package sales

import (
	"time"

	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemRequest represents one document line in a create request
type LineItemRequest struct {
	ProductID       uuid.UUID       `json:"product_id" binding:"required"`
	Quantity        decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice       *decimal.Decimal `json:"unit_price"` // defaults to the product's price
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	VATRate         *decimal.Decimal `json:"vat_rate"` // defaults to the product's rate
}

// AddItemRequest represents a request to append a line to a draft document
type AddItemRequest struct {
	ProductID       uuid.UUID        `json:"product_id" binding:"required"`
	Quantity        decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal  `json:"discount_percent"`
	VATRate         *decimal.Decimal `json:"vat_rate"`
}

// UpdateItemQuantityRequest changes a line's quantity
type UpdateItemQuantityRequest struct {
	Quantity decimal.Decimal `json:"quantity" binding:"required"`
}

// LineItemResponse represents a document line in API responses
type LineItemResponse struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductCode     string          `json:"product_code"`
	Unit            string          `json:"unit"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	VATRate         decimal.Decimal `json:"vat_rate"`
	NetAmount       decimal.Decimal `json:"net_amount"`
	VATAmount       decimal.Decimal `json:"vat_amount"`
	GrossAmount     decimal.Decimal `json:"gross_amount"`
	Position        int             `json:"position"`
}

// ToLineItemResponses converts document lines to response DTOs
func ToLineItemResponses(items []sales.LineItem) []LineItemResponse {
	responses := make([]LineItemResponse, len(items))
	for i, item := range items {
		responses[i] = LineItemResponse{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			ProductCode:     item.ProductCode,
			Unit:            item.Unit,
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
			VATRate:         item.VATRate,
			NetAmount:       item.NetAmount,
			VATAmount:       item.VATAmount,
			GrossAmount:     item.GrossAmount,
			Position:        item.Position,
		}
	}
	return responses
}

// documentResponse carries the fields shared by all document responses
type documentResponse struct {
	ID              uuid.UUID          `json:"id"`
	CompanyID       uuid.UUID          `json:"company_id"`
	Number          string             `json:"number"`
	ContactID       *uuid.UUID         `json:"contact_id,omitempty"`
	Items           []LineItemResponse `json:"items"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	Subtotal        decimal.Decimal    `json:"subtotal"`
	DiscountAmount  decimal.Decimal    `json:"discount_amount"`
	VATTotal        decimal.Decimal    `json:"vat_total"`
	Total           decimal.Decimal    `json:"total"`
	Currency        string             `json:"currency"`
	Version         int                `json:"version"`
	CreatedAt       time.Time          `json:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func toDocumentResponse(doc *sales.Document) documentResponse {
	return documentResponse{
		ID:              doc.ID,
		CompanyID:       doc.CompanyID,
		Number:          doc.Number,
		ContactID:       doc.ContactID,
		Items:           ToLineItemResponses(doc.Items),
		DiscountPercent: doc.DiscountPercent,
		Subtotal:        doc.Subtotal,
		DiscountAmount:  doc.DiscountAmount,
		VATTotal:        doc.VATTotal,
		Total:           doc.Total,
		Currency:        doc.Currency,
		Version:         doc.Version,
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
}

// CreateQuoteRequest represents a request to create a quote
type CreateQuoteRequest struct {
	ContactID       *uuid.UUID             `json:"contact_id"`
	Items           []LineItemRequest      `json:"items"`
	DiscountPercent decimal.Decimal        `json:"discount_percent"`
	ValidUntil      *time.Time             `json:"valid_until"`
	HeaderNotes     *valueobject.EditorDoc `json:"header_notes"`
	FooterNotes     *valueobject.EditorDoc `json:"footer_notes"`
}

// UpdateQuoteRequest represents a request to update a draft quote
type UpdateQuoteRequest struct {
	ContactID       *uuid.UUID             `json:"contact_id"`
	DiscountPercent *decimal.Decimal       `json:"discount_percent"`
	ValidUntil      *time.Time             `json:"valid_until"`
	HeaderNotes     *valueobject.EditorDoc `json:"header_notes"`
	FooterNotes     *valueobject.EditorDoc `json:"footer_notes"`
}

// QuoteResponse represents a quote in API responses
type QuoteResponse struct {
	documentResponse
	Status         string                `json:"status"`
	ValidUntil     *time.Time            `json:"valid_until,omitempty"`
	HeaderNotes    valueobject.EditorDoc `json:"header_notes"`
	FooterNotes    valueobject.EditorDoc `json:"footer_notes"`
	ConvertedOrder *uuid.UUID            `json:"converted_order,omitempty"`
	SentAt         *time.Time            `json:"sent_at,omitempty"`
	DecidedAt      *time.Time            `json:"decided_at,omitempty"`
}

// ToQuoteResponse converts a quote aggregate to a response DTO
func ToQuoteResponse(quote *sales.Quote) QuoteResponse {
	return QuoteResponse{
		documentResponse: toDocumentResponse(&quote.Document),
		Status:           string(quote.Status),
		ValidUntil:       quote.ValidUntil,
		HeaderNotes:      quote.HeaderNotes,
		FooterNotes:      quote.FooterNotes,
		ConvertedOrder:   quote.ConvertedOrder,
		SentAt:           quote.SentAt,
		DecidedAt:        quote.DecidedAt,
	}
}

// ToQuoteResponses converts a slice of quotes to response DTOs
func ToQuoteResponses(quotes []sales.Quote) []QuoteResponse {
	responses := make([]QuoteResponse, len(quotes))
	for i := range quotes {
		responses[i] = ToQuoteResponse(&quotes[i])
	}
	return responses
}

// CreateOrderRequest represents a request to create an order directly
type CreateOrderRequest struct {
	ContactID       *uuid.UUID        `json:"contact_id"`
	Items           []LineItemRequest `json:"items"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
}

// UpdateOrderRequest represents a request to update a draft order
type UpdateOrderRequest struct {
	ContactID       *uuid.UUID       `json:"contact_id"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
}

// CancelOrderRequest carries the cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// FulfillOrderRequest carries the delivery details for fulfillment
type FulfillOrderRequest struct {
	ShippingAddress *valueobject.EditorDoc `json:"shipping_address"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	documentResponse
	Status        string     `json:"status"`
	SourceQuoteID *uuid.UUID `json:"source_quote_id,omitempty"`
	ConfirmedAt   *time.Time `json:"confirmed_at,omitempty"`
	FulfilledAt   *time.Time `json:"fulfilled_at,omitempty"`
	CancelledAt   *time.Time `json:"cancelled_at,omitempty"`
	CancelReason  string     `json:"cancel_reason,omitempty"`
}

// ToOrderResponse converts an order aggregate to a response DTO
func ToOrderResponse(order *sales.Order) OrderResponse {
	return OrderResponse{
		documentResponse: toDocumentResponse(&order.Document),
		Status:           string(order.Status),
		SourceQuoteID:    order.SourceQuoteID,
		ConfirmedAt:      order.ConfirmedAt,
		FulfilledAt:      order.FulfilledAt,
		CancelledAt:      order.CancelledAt,
		CancelReason:     order.CancelReason,
	}
}

// ToOrderResponses converts a slice of orders to response DTOs
func ToOrderResponses(orders []sales.Order) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i := range orders {
		responses[i] = ToOrderResponse(&orders[i])
	}
	return responses
}

// CreateInvoiceRequest represents a request to create an invoice
type CreateInvoiceRequest struct {
	ContactID       *uuid.UUID        `json:"contact_id"`
	Items           []LineItemRequest `json:"items"`
	DiscountPercent decimal.Decimal   `json:"discount_percent"`
	IssueDate       *time.Time        `json:"issue_date"`
	DueDate         *time.Time        `json:"due_date"`
}

// UpdateInvoiceRequest represents a request to update a draft invoice
type UpdateInvoiceRequest struct {
	ContactID       *uuid.UUID       `json:"contact_id"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	IssueDate       *time.Time       `json:"issue_date"`
	DueDate         *time.Time       `json:"due_date"`
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	Amount    decimal.Decimal `json:"amount" binding:"required"`
	PaidAt    *time.Time      `json:"paid_at"`
	Method    string          `json:"method" binding:"required,oneof=bank_transfer card cash other"`
	Reference string          `json:"reference" binding:"max=100"`
}

// PaymentResponse represents a recorded payment in API responses
type PaymentResponse struct {
	ID        uuid.UUID       `json:"id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paid_at"`
	Method    string          `json:"method"`
	Reference string          `json:"reference,omitempty"`
}

// ToPaymentResponse converts a payment to a response DTO
func ToPaymentResponse(payment *sales.Payment) PaymentResponse {
	return PaymentResponse{
		ID:        payment.ID,
		InvoiceID: payment.InvoiceID,
		Amount:    payment.Amount,
		PaidAt:    payment.PaidAt,
		Method:    string(payment.Method),
		Reference: payment.Reference,
	}
}

// ToPaymentResponses converts payments to response DTOs
func ToPaymentResponses(payments []sales.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses
}

// InvoiceResponse represents an invoice in API responses. Status carries
// the effective status, with overdue computed from the due date.
type InvoiceResponse struct {
	documentResponse
	Status     string            `json:"status"`
	IssueDate  *time.Time        `json:"issue_date,omitempty"`
	DueDate    *time.Time        `json:"due_date,omitempty"`
	Payments   []PaymentResponse `json:"payments"`
	AmountPaid decimal.Decimal   `json:"amount_paid"`
	Balance    decimal.Decimal   `json:"balance"`
	SentAt     *time.Time        `json:"sent_at,omitempty"`
	PaidAt     *time.Time        `json:"paid_at,omitempty"`
}

// ToInvoiceResponse converts an invoice aggregate to a response DTO
func ToInvoiceResponse(invoice *sales.Invoice) InvoiceResponse {
	return InvoiceResponse{
		documentResponse: toDocumentResponse(&invoice.Document),
		Status:           string(invoice.EffectiveStatus(time.Now())),
		IssueDate:        invoice.IssueDate,
		DueDate:          invoice.DueDate,
		Payments:         ToPaymentResponses(invoice.Payments),
		AmountPaid:       invoice.AmountPaid,
		Balance:          invoice.Balance(),
		SentAt:           invoice.SentAt,
		PaidAt:           invoice.PaidAt,
	}
}

// ToInvoiceResponses converts a slice of invoices to response DTOs
func ToInvoiceResponses(invoices []sales.Invoice) []InvoiceResponse {
	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		responses[i] = ToInvoiceResponse(&invoices[i])
	}
	return responses
}

// UpdateDeliveryNoteRequest represents a request to update a draft delivery note
type UpdateDeliveryNoteRequest struct {
	ContactID       *uuid.UUID             `json:"contact_id"`
	ShippingAddress *valueobject.EditorDoc `json:"shipping_address"`
}

// DeliveryNoteResponse represents a delivery note in API responses
type DeliveryNoteResponse struct {
	documentResponse
	Status          string                `json:"status"`
	OrderID         uuid.UUID             `json:"order_id"`
	ShippingAddress valueobject.EditorDoc `json:"shipping_address"`
	IssuedAt        *time.Time            `json:"issued_at,omitempty"`
	DeliveredAt     *time.Time            `json:"delivered_at,omitempty"`
}

// ToDeliveryNoteResponse converts a delivery note aggregate to a response DTO
func ToDeliveryNoteResponse(note *sales.DeliveryNote) DeliveryNoteResponse {
	return DeliveryNoteResponse{
		documentResponse: toDocumentResponse(&note.Document),
		Status:           string(note.Status),
		OrderID:          note.OrderID,
		ShippingAddress:  note.ShippingAddress,
		IssuedAt:         note.IssuedAt,
		DeliveredAt:      note.DeliveredAt,
	}
}

// ToDeliveryNoteResponses converts a slice of delivery notes to response DTOs
func ToDeliveryNoteResponses(notes []sales.DeliveryNote) []DeliveryNoteResponse {
	responses := make([]DeliveryNoteResponse, len(notes))
	for i := range notes {
		responses[i] = ToDeliveryNoteResponse(&notes[i])
	}
	return responses
}

// ListFilter carries common list parameters from the HTTP layer
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}
