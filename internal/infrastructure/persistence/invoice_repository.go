package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// GormInvoiceRepository implements sales.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice (with items and payments) by ID within the given scope
func (r *GormInvoiceRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*sales.Invoice, error) {
	var invoice sales.Invoice
	err := r.preload(scoped(r.db.WithContext(ctx), scope)).First(&invoice, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &invoice, nil
}

// FindAll finds all invoices in the scope matching the filter
func (r *GormInvoiceRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]sales.Invoice, error) {
	var invoices []sales.Invoice
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&sales.Invoice{}), scope), filter)
	query = orderBy(paginate(r.preload(query), filter), filter, InvoiceSortFields, "created_at")

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindByStatus finds invoices by stored status
func (r *GormInvoiceRepository) FindByStatus(ctx context.Context, scope shared.Scope, status sales.InvoiceStatus, filter shared.Filter) ([]sales.Invoice, error) {
	var invoices []sales.Invoice
	query := r.applyFilter(
		scoped(r.db.WithContext(ctx).Model(&sales.Invoice{}), scope).Where("status = ?", status),
		filter,
	)
	query = orderBy(paginate(r.preload(query), filter), filter, InvoiceSortFields, "created_at")

	if err := query.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

// FindOverdue finds sent or partially paid invoices past their due date
func (r *GormInvoiceRepository) FindOverdue(ctx context.Context, scope shared.Scope, now time.Time) ([]sales.Invoice, error) {
	var invoices []sales.Invoice
	err := r.preload(scoped(r.db.WithContext(ctx), scope)).
		Where("status IN ? AND due_date IS NOT NULL AND due_date < ?",
			[]sales.InvoiceStatus{sales.InvoiceStatusSent, sales.InvoiceStatusPartiallyPaid}, now).
		Order("due_date ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// Count counts invoices in the scope matching the filter
func (r *GormInvoiceRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&sales.Invoice{}), scope), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SalesSummary aggregates invoiced and paid amounts per month. Draft and
// cancelled invoices are excluded; the window is half-open [from, to).
func (r *GormInvoiceRepository) SalesSummary(ctx context.Context, scope shared.Scope, from, to time.Time) ([]sales.SalesSummaryRow, error) {
	var rows []sales.SalesSummaryRow
	err := scoped(r.db.WithContext(ctx).Model(&sales.Invoice{}), scope).
		Select("to_char(issue_date, 'YYYY-MM') AS period, COALESCE(SUM(total), 0) AS invoiced, COALESCE(SUM(amount_paid), 0) AS paid, COUNT(*) AS count").
		Where("issue_date IS NOT NULL AND issue_date >= ? AND issue_date < ?", from, to).
		Where("status NOT IN ?", []sales.InvoiceStatus{sales.InvoiceStatusDraft, sales.InvoiceStatusCancelled}).
		Group("to_char(issue_date, 'YYYY-MM')").
		Order("period ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ReceivablesAging buckets outstanding balances by days overdue. Invoices
// not yet due land in "current"; the rest in 1-30, 31-60, and 60+.
func (r *GormInvoiceRepository) ReceivablesAging(ctx context.Context, scope shared.Scope, now time.Time) ([]sales.ReceivableBucket, error) {
	var outstanding []struct {
		DueDate    *time.Time
		Total      decimal.Decimal
		AmountPaid decimal.Decimal
	}
	err := scoped(r.db.WithContext(ctx).Model(&sales.Invoice{}), scope).
		Select("due_date, total, amount_paid").
		Where("status IN ?", []sales.InvoiceStatus{sales.InvoiceStatusSent, sales.InvoiceStatusPartiallyPaid}).
		Scan(&outstanding).Error
	if err != nil {
		return nil, err
	}

	buckets := []sales.ReceivableBucket{
		{Label: "current", Balance: decimal.Zero},
		{Label: "1-30", Balance: decimal.Zero},
		{Label: "31-60", Balance: decimal.Zero},
		{Label: "60+", Balance: decimal.Zero},
	}

	for _, row := range outstanding {
		balance := row.Total.Sub(row.AmountPaid)
		if !balance.IsPositive() {
			continue
		}

		idx := 0
		if row.DueDate != nil && row.DueDate.Before(now) {
			switch days := int(now.Sub(*row.DueDate).Hours() / 24); {
			case days <= 30:
				idx = 1
			case days <= 60:
				idx = 2
			default:
				idx = 3
			}
		}
		buckets[idx].Count++
		buckets[idx].Balance = buckets[idx].Balance.Add(balance)
	}

	return buckets, nil
}

// Save creates or updates an invoice, its items, and its payments
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *sales.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveDocument(tx, invoice, invoice.ID, sales.DocumentKindInvoice, invoice.Items); err != nil {
			return err
		}
		return r.replacePayments(tx, invoice)
	})
}

// SaveWithLock saves an invoice with optimistic locking (version check)
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *sales.Invoice) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := saveDocumentWithLock(tx, invoice, invoice.ID, invoice.Version, sales.DocumentKindInvoice, invoice.Items); err != nil {
			return err
		}
		return r.replacePayments(tx, invoice)
	})
}

// Delete deletes an invoice by ID within the given scope
func (r *GormInvoiceRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := scoped(tx, scope).Delete(&sales.Invoice{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&sales.Payment{}).Error; err != nil {
			return err
		}
		return replaceLineItems(tx, id, sales.DocumentKindInvoice, nil)
	})
}

func (r *GormInvoiceRepository) preload(query *gorm.DB) *gorm.DB {
	return preloadItems(query).Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("paid_at ASC")
	})
}

func (r *GormInvoiceRepository) replacePayments(tx *gorm.DB, invoice *sales.Invoice) error {
	if err := tx.Where("invoice_id = ?", invoice.ID).Delete(&sales.Payment{}).Error; err != nil {
		return err
	}
	if len(invoice.Payments) == 0 {
		return nil
	}
	return tx.Create(&invoice.Payments).Error
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "number")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "contact_id":
			query = query.Where("contact_id = ?", value)
		case "overdue":
			if value == true {
				query = query.Where("status IN ? AND due_date IS NOT NULL AND due_date < ?",
					[]sales.InvoiceStatus{sales.InvoiceStatusSent, sales.InvoiceStatusPartiallyPaid}, time.Now())
			}
		}
	}
	return query
}
