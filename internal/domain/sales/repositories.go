package sales

import (
	"context"
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// QuoteRepository defines the interface for quote persistence
type QuoteRepository interface {
	// FindByID finds a quote (with items) by ID within the given scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Quote, error)

	// FindAll finds all quotes in the scope matching the filter
	FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Quote, error)

	// FindByStatus finds quotes by status
	FindByStatus(ctx context.Context, scope shared.Scope, status QuoteStatus, filter shared.Filter) ([]Quote, error)

	// FindExpiring finds sent quotes whose validity ends before the deadline
	FindExpiring(ctx context.Context, scope shared.Scope, deadline time.Time) ([]Quote, error)

	// Count counts quotes in the scope matching the filter
	Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error)

	// Save creates or updates a quote and its items
	Save(ctx context.Context, quote *Quote) error

	// SaveWithLock saves a quote with optimistic locking (version check)
	SaveWithLock(ctx context.Context, quote *Quote) error

	// Delete deletes a quote by ID within the given scope
	Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error
}

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// FindByID finds an order (with items) by ID within the given scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Order, error)

	// FindAll finds all orders in the scope matching the filter
	FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Order, error)

	// FindByStatus finds orders by status
	FindByStatus(ctx context.Context, scope shared.Scope, status OrderStatus, filter shared.Filter) ([]Order, error)

	// Count counts orders in the scope matching the filter
	Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error)

	// Save creates or updates an order and its items
	Save(ctx context.Context, order *Order) error

	// SaveWithLock saves an order with optimistic locking (version check)
	SaveWithLock(ctx context.Context, order *Order) error

	// Delete deletes an order by ID within the given scope
	Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error
}

// ReceivableBucket summarizes outstanding invoice balances for reporting
type ReceivableBucket struct {
	Label   string          `json:"label"` // e.g. "current", "1-30", "31-60", "60+"
	Count   int64           `json:"count"`
	Balance decimal.Decimal `json:"balance"`
}

// SalesSummaryRow aggregates invoiced revenue per period for reporting
type SalesSummaryRow struct {
	Period   string          `json:"period"` // YYYY-MM
	Invoiced decimal.Decimal `json:"invoiced"`
	Paid     decimal.Decimal `json:"paid"`
	Count    int64           `json:"count"`
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice (with items and payments) by ID within the given scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Invoice, error)

	// FindAll finds all invoices in the scope matching the filter
	FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Invoice, error)

	// FindByStatus finds invoices by stored status
	FindByStatus(ctx context.Context, scope shared.Scope, status InvoiceStatus, filter shared.Filter) ([]Invoice, error)

	// FindOverdue finds sent or partially paid invoices past their due date
	FindOverdue(ctx context.Context, scope shared.Scope, now time.Time) ([]Invoice, error)

	// Count counts invoices in the scope matching the filter
	Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error)

	// SalesSummary aggregates invoiced and paid amounts per month
	SalesSummary(ctx context.Context, scope shared.Scope, from, to time.Time) ([]SalesSummaryRow, error)

	// ReceivablesAging buckets outstanding balances by days overdue
	ReceivablesAging(ctx context.Context, scope shared.Scope, now time.Time) ([]ReceivableBucket, error)

	// Save creates or updates an invoice, its items, and its payments
	Save(ctx context.Context, invoice *Invoice) error

	// SaveWithLock saves an invoice with optimistic locking (version check)
	SaveWithLock(ctx context.Context, invoice *Invoice) error

	// Delete deletes an invoice by ID within the given scope
	Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error
}

// DeliveryNoteRepository defines the interface for delivery note persistence
type DeliveryNoteRepository interface {
	// FindByID finds a delivery note (with items) by ID within the given scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*DeliveryNote, error)

	// FindAll finds all delivery notes in the scope matching the filter
	FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]DeliveryNote, error)

	// FindByOrder finds delivery notes belonging to an order
	FindByOrder(ctx context.Context, scope shared.Scope, orderID uuid.UUID) ([]DeliveryNote, error)

	// Count counts delivery notes in the scope matching the filter
	Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error)

	// Save creates or updates a delivery note and its items
	Save(ctx context.Context, note *DeliveryNote) error

	// SaveWithLock saves a delivery note with optimistic locking (version check)
	SaveWithLock(ctx context.Context, note *DeliveryNote) error

	// Delete deletes a delivery note by ID within the given scope
	Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error
}
