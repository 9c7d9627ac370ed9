package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// GormOrderRepository implements sales.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID finds an order (with items) by ID within the given scope
func (r *GormOrderRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*sales.Order, error) {
	var order sales.Order
	err := preloadItems(scoped(r.db.WithContext(ctx), scope)).First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// FindAll finds all orders in the scope matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]sales.Order, error) {
	var orders []sales.Order
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&sales.Order{}), scope), filter)
	query = orderBy(paginate(preloadItems(query), filter), filter, DocumentSortFields, "created_at")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// FindByStatus finds orders by status
func (r *GormOrderRepository) FindByStatus(ctx context.Context, scope shared.Scope, status sales.OrderStatus, filter shared.Filter) ([]sales.Order, error) {
	var orders []sales.Order
	query := r.applyFilter(
		scoped(r.db.WithContext(ctx).Model(&sales.Order{}), scope).Where("status = ?", status),
		filter,
	)
	query = orderBy(paginate(preloadItems(query), filter), filter, DocumentSortFields, "created_at")

	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders in the scope matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&sales.Order{}), scope), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an order and its items
func (r *GormOrderRepository) Save(ctx context.Context, order *sales.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocument(tx, order, order.ID, sales.DocumentKindOrder, order.Items)
	})
}

// SaveWithLock saves an order with optimistic locking (version check)
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, order *sales.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocumentWithLock(tx, order, order.ID, order.Version, sales.DocumentKindOrder, order.Items)
	})
}

// Delete deletes an order by ID within the given scope
func (r *GormOrderRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := scoped(tx, scope).Delete(&sales.Order{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return replaceLineItems(tx, id, sales.DocumentKindOrder, nil)
	})
}

func (r *GormOrderRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "number")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "contact_id":
			query = query.Where("contact_id = ?", value)
		case "source_quote_id":
			query = query.Where("source_quote_id = ?", value)
		}
	}
	return query
}
