package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// GormQuoteRepository implements sales.QuoteRepository using GORM
type GormQuoteRepository struct {
	db *gorm.DB
}

// NewGormQuoteRepository creates a new GormQuoteRepository
func NewGormQuoteRepository(db *gorm.DB) *GormQuoteRepository {
	return &GormQuoteRepository{db: db}
}

// FindByID finds a quote (with items) by ID within the given scope
func (r *GormQuoteRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*sales.Quote, error) {
	var quote sales.Quote
	err := preloadItems(scoped(r.db.WithContext(ctx), scope)).First(&quote, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &quote, nil
}

// FindAll finds all quotes in the scope matching the filter
func (r *GormQuoteRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]sales.Quote, error) {
	var quotes []sales.Quote
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&sales.Quote{}), scope), filter)
	query = orderBy(paginate(preloadItems(query), filter), filter, QuoteSortFields, "created_at")

	if err := query.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// FindByStatus finds quotes by status
func (r *GormQuoteRepository) FindByStatus(ctx context.Context, scope shared.Scope, status sales.QuoteStatus, filter shared.Filter) ([]sales.Quote, error) {
	var quotes []sales.Quote
	query := r.applyFilter(
		scoped(r.db.WithContext(ctx).Model(&sales.Quote{}), scope).Where("status = ?", status),
		filter,
	)
	query = orderBy(paginate(preloadItems(query), filter), filter, QuoteSortFields, "created_at")

	if err := query.Find(&quotes).Error; err != nil {
		return nil, err
	}
	return quotes, nil
}

// FindExpiring finds sent quotes whose validity ends before the deadline
func (r *GormQuoteRepository) FindExpiring(ctx context.Context, scope shared.Scope, deadline time.Time) ([]sales.Quote, error) {
	var quotes []sales.Quote
	err := scoped(r.db.WithContext(ctx), scope).
		Where("status = ? AND valid_until IS NOT NULL AND valid_until < ?", sales.QuoteStatusSent, deadline).
		Order("valid_until ASC").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

// Count counts quotes in the scope matching the filter
func (r *GormQuoteRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&sales.Quote{}), scope), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a quote and its items
func (r *GormQuoteRepository) Save(ctx context.Context, quote *sales.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocument(tx, quote, quote.ID, sales.DocumentKindQuote, quote.Items)
	})
}

// SaveWithLock saves a quote with optimistic locking (version check)
func (r *GormQuoteRepository) SaveWithLock(ctx context.Context, quote *sales.Quote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocumentWithLock(tx, quote, quote.ID, quote.Version, sales.DocumentKindQuote, quote.Items)
	})
}

// Delete deletes a quote by ID within the given scope
func (r *GormQuoteRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := scoped(tx, scope).Delete(&sales.Quote{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return replaceLineItems(tx, id, sales.DocumentKindQuote, nil)
	})
}

func (r *GormQuoteRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "number")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "contact_id":
			query = query.Where("contact_id = ?", value)
		}
	}
	return query
}
