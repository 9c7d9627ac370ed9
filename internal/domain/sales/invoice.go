package sales

import (
	"strings"
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle status of an invoice.
// Overdue is never stored; it is computed from the due date on top of
// the sent and partially_paid statuses.
type InvoiceStatus string

const (
	InvoiceStatusDraft         InvoiceStatus = "draft"
	InvoiceStatusSent          InvoiceStatus = "sent"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue" // computed only
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

// IsValid checks if the invoice status is valid as a stored status
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusSent, InvoiceStatusPartiallyPaid, InvoiceStatusPaid, InvoiceStatusCancelled:
		return true
	}
	return false
}

// PaymentMethod identifies how a payment was made
type PaymentMethod string

const (
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodOther        PaymentMethod = "other"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodBankTransfer, PaymentMethodCard, PaymentMethodCash, PaymentMethodOther:
		return true
	}
	return false
}

// Payment is a recorded payment against an invoice
type Payment struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	InvoiceID uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	PaidAt    time.Time       `gorm:"not null"`
	Method    PaymentMethod   `gorm:"type:varchar(20);not null"`
	Reference string          `gorm:"type:varchar(100)"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "invoice_payments"
}

// Invoice is a billing document with an issue date, a due date, and a
// payment history driving its paid/partially-paid state.
type Invoice struct {
	Document
	Status     InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	IssueDate  *time.Time    `gorm:"index"`
	DueDate    *time.Time    `gorm:"index"`
	Payments   []Payment     `gorm:"foreignKey:InvoiceID"`
	AmountPaid decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	SentAt     *time.Time
	PaidAt     *time.Time
}

// TableName returns the table name for GORM
func (Invoice) TableName() string {
	return "invoices"
}

// NewInvoice creates a new draft invoice
func NewInvoice(companyID uuid.UUID, number string) (*Invoice, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Invoice number cannot be empty")
	}

	invoice := &Invoice{
		Document:   newDocument(companyID, number),
		Status:     InvoiceStatusDraft,
		Payments:   make([]Payment, 0),
		AmountPaid: decimal.Zero,
	}

	invoice.AddDomainEvent(NewInvoiceCreatedEvent(invoice))

	return invoice, nil
}

// AddItem adds a line item to a draft invoice
func (i *Invoice) AddItem(productID uuid.UUID, productName, productCode, unit string, quantity, unitPrice, discountPercent, vatRate decimal.Decimal) (*LineItem, error) {
	if err := i.ensureDraft(); err != nil {
		return nil, err
	}
	return i.addItem(DocumentKindInvoice, productID, productName, productCode, unit, quantity, unitPrice, discountPercent, vatRate)
}

// UpdateItemQuantity changes a line item's quantity on a draft invoice
func (i *Invoice) UpdateItemQuantity(itemID uuid.UUID, quantity decimal.Decimal) error {
	if err := i.ensureDraft(); err != nil {
		return err
	}
	return i.updateItemQuantity(itemID, quantity)
}

// RemoveItem removes a line item from a draft invoice
func (i *Invoice) RemoveItem(itemID uuid.UUID) error {
	if err := i.ensureDraft(); err != nil {
		return err
	}
	return i.removeItem(itemID)
}

// SetDiscountPercent sets the invoice-level discount
func (i *Invoice) SetDiscountPercent(percent decimal.Decimal) error {
	if err := i.ensureDraft(); err != nil {
		return err
	}
	return i.setDiscountPercent(percent)
}

// SetDates sets the invoice's issue and due dates
func (i *Invoice) SetDates(issueDate, dueDate *time.Time) error {
	if err := i.ensureDraft(); err != nil {
		return err
	}
	if issueDate != nil && dueDate != nil && dueDate.Before(*issueDate) {
		return shared.NewDomainError("INVALID_DUE_DATE", "Due date cannot be before the issue date")
	}

	i.IssueDate = issueDate
	i.DueDate = dueDate
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	return nil
}

// Send issues the invoice to the recipient
func (i *Invoice) Send() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("INVALID_TRANSITION", "Only draft invoices can be sent")
	}
	if len(i.Items) == 0 {
		return shared.NewDomainError("EMPTY_DOCUMENT", "Cannot send an invoice without line items")
	}

	now := time.Now()
	if i.IssueDate == nil {
		i.IssueDate = &now
	}
	i.Status = InvoiceStatusSent
	i.SentAt = &now
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceStatusChangedEvent(i, InvoiceStatusDraft, InvoiceStatusSent))

	return nil
}

// RecordPayment records a payment against a sent invoice. A payment
// covering the remaining balance transitions the invoice to paid,
// a smaller one to partially_paid.
func (i *Invoice) RecordPayment(amount decimal.Decimal, paidAt time.Time, method PaymentMethod, reference string) (*Payment, error) {
	if i.Status != InvoiceStatusSent && i.Status != InvoiceStatusPartiallyPaid {
		return nil, shared.NewDomainError("INVALID_STATE", "Payments can only be recorded on sent invoices")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_METHOD", "Invalid payment method")
	}
	if len(reference) > 100 {
		return nil, shared.NewDomainError("INVALID_REFERENCE", "Payment reference cannot exceed 100 characters")
	}

	payment := Payment{
		ID:        uuid.New(),
		InvoiceID: i.ID,
		Amount:    amount,
		PaidAt:    paidAt,
		Method:    method,
		Reference: strings.TrimSpace(reference),
		CreatedAt: time.Now(),
	}
	i.Payments = append(i.Payments, payment)
	i.AmountPaid = i.AmountPaid.Add(amount)

	oldStatus := i.Status
	now := time.Now()
	if i.AmountPaid.GreaterThanOrEqual(i.Total) {
		i.Status = InvoiceStatusPaid
		i.PaidAt = &now
	} else {
		i.Status = InvoiceStatusPartiallyPaid
	}
	i.UpdatedAt = now
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoicePaymentRecordedEvent(i, &payment))
	if i.Status != oldStatus {
		i.AddDomainEvent(NewInvoiceStatusChangedEvent(i, oldStatus, i.Status))
	}

	return &payment, nil
}

// Cancel cancels an unpaid invoice
func (i *Invoice) Cancel() error {
	switch i.Status {
	case InvoiceStatusDraft, InvoiceStatusSent:
	default:
		return shared.NewDomainError("INVALID_TRANSITION", "Cannot cancel a "+string(i.Status)+" invoice")
	}

	oldStatus := i.Status
	i.Status = InvoiceStatusCancelled
	i.UpdatedAt = time.Now()
	i.IncrementVersion()

	i.AddDomainEvent(NewInvoiceStatusChangedEvent(i, oldStatus, InvoiceStatusCancelled))

	return nil
}

// Balance returns the amount still owed, floored at zero
func (i *Invoice) Balance() decimal.Decimal {
	balance := i.Total.Sub(i.AmountPaid)
	if balance.IsNegative() {
		return decimal.Zero
	}
	return balance
}

// IsOverdue reports whether a sent or partially paid invoice has passed
// its due date
func (i *Invoice) IsOverdue(now time.Time) bool {
	if i.Status != InvoiceStatusSent && i.Status != InvoiceStatusPartiallyPaid {
		return false
	}
	return i.DueDate != nil && i.DueDate.Before(now)
}

// EffectiveStatus returns the stored status, or overdue when applicable
func (i *Invoice) EffectiveStatus(now time.Time) InvoiceStatus {
	if i.IsOverdue(now) {
		return InvoiceStatusOverdue
	}
	return i.Status
}

// IsDraft returns true if the invoice is still editable
func (i *Invoice) IsDraft() bool {
	return i.Status == InvoiceStatusDraft
}

func (i *Invoice) ensureDraft() error {
	if i.Status != InvoiceStatusDraft {
		return shared.NewDomainError("NOT_DRAFT", "Only draft invoices can be modified")
	}
	return nil
}
