package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// GormDeliveryNoteRepository implements sales.DeliveryNoteRepository using GORM
type GormDeliveryNoteRepository struct {
	db *gorm.DB
}

// NewGormDeliveryNoteRepository creates a new GormDeliveryNoteRepository
func NewGormDeliveryNoteRepository(db *gorm.DB) *GormDeliveryNoteRepository {
	return &GormDeliveryNoteRepository{db: db}
}

// FindByID finds a delivery note (with items) by ID within the given scope
func (r *GormDeliveryNoteRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*sales.DeliveryNote, error) {
	var note sales.DeliveryNote
	err := preloadItems(scoped(r.db.WithContext(ctx), scope)).First(&note, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &note, nil
}

// FindAll finds all delivery notes in the scope matching the filter
func (r *GormDeliveryNoteRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]sales.DeliveryNote, error) {
	var notes []sales.DeliveryNote
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&sales.DeliveryNote{}), scope), filter)
	query = orderBy(paginate(preloadItems(query), filter), filter, DocumentSortFields, "created_at")

	if err := query.Find(&notes).Error; err != nil {
		return nil, err
	}
	return notes, nil
}

// FindByOrder finds delivery notes belonging to an order
func (r *GormDeliveryNoteRepository) FindByOrder(ctx context.Context, scope shared.Scope, orderID uuid.UUID) ([]sales.DeliveryNote, error) {
	var notes []sales.DeliveryNote
	err := preloadItems(scoped(r.db.WithContext(ctx), scope)).
		Where("order_id = ?", orderID).
		Order("created_at ASC").
		Find(&notes).Error
	if err != nil {
		return nil, err
	}
	return notes, nil
}

// Count counts delivery notes in the scope matching the filter
func (r *GormDeliveryNoteRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&sales.DeliveryNote{}), scope), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a delivery note and its items
func (r *GormDeliveryNoteRepository) Save(ctx context.Context, note *sales.DeliveryNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocument(tx, note, note.ID, sales.DocumentKindDeliveryNote, note.Items)
	})
}

// SaveWithLock saves a delivery note with optimistic locking (version check)
func (r *GormDeliveryNoteRepository) SaveWithLock(ctx context.Context, note *sales.DeliveryNote) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveDocumentWithLock(tx, note, note.ID, note.Version, sales.DocumentKindDeliveryNote, note.Items)
	})
}

// Delete deletes a delivery note by ID within the given scope
func (r *GormDeliveryNoteRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := scoped(tx, scope).Delete(&sales.DeliveryNote{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return replaceLineItems(tx, id, sales.DocumentKindDeliveryNote, nil)
	})
}

func (r *GormDeliveryNoteRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "number")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		case "contact_id":
			query = query.Where("contact_id = ?", value)
		}
	}
	return query
}
