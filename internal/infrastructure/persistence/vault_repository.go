package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/domain/vault"
)

// GormVaultRepository implements vault.Repository using GORM
type GormVaultRepository struct {
	db *gorm.DB
}

// NewGormVaultRepository creates a new GormVaultRepository
func NewGormVaultRepository(db *gorm.DB) *GormVaultRepository {
	return &GormVaultRepository{db: db}
}

// FindByID finds a document by ID within the given scope
func (r *GormVaultRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*vault.Document, error) {
	var doc vault.Document
	err := scoped(r.db.WithContext(ctx), scope).First(&doc, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindAll finds all documents in the scope matching the filter
func (r *GormVaultRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]vault.Document, error) {
	var docs []vault.Document
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&vault.Document{}), scope), filter)
	query = orderBy(paginate(query, filter), filter, VaultDocumentSortFields, "created_at")

	if err := query.Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// FindByEntity finds documents attached to a business record
func (r *GormVaultRepository) FindByEntity(ctx context.Context, scope shared.Scope, kind string, entityID uuid.UUID) ([]vault.Document, error) {
	var docs []vault.Document
	err := scoped(r.db.WithContext(ctx), scope).
		Where("entity_kind = ? AND entity_id = ?", kind, entityID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Count counts documents in the scope matching the filter
func (r *GormVaultRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&vault.Document{}), scope), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a document
func (r *GormVaultRepository) Save(ctx context.Context, doc *vault.Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

// Delete deletes a document by ID within the given scope
func (r *GormVaultRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	result := scoped(r.db.WithContext(ctx), scope).Delete(&vault.Document{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormVaultRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "file_name")

	for key, value := range filter.Filters {
		switch key {
		case "entity_kind":
			query = query.Where("entity_kind = ?", value)
		case "content_type":
			query = query.Where("content_type = ?", value)
		case "uploaded":
			query = query.Where("uploaded = ?", value)
		case "uploaded_by":
			query = query.Where("uploaded_by = ?", value)
		}
	}
	return query
}
