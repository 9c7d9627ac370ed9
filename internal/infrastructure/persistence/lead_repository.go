package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/crm"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// GormLeadRepository implements crm.LeadRepository using GORM
type GormLeadRepository struct {
	db *gorm.DB
}

// NewGormLeadRepository creates a new GormLeadRepository
func NewGormLeadRepository(db *gorm.DB) *GormLeadRepository {
	return &GormLeadRepository{db: db}
}

// FindByID finds a lead by ID within the given scope
func (r *GormLeadRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*crm.Lead, error) {
	var lead crm.Lead
	err := scoped(r.db.WithContext(ctx), scope).First(&lead, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &lead, nil
}

// FindAll finds all leads in the scope matching the filter
func (r *GormLeadRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]crm.Lead, error) {
	var leads []crm.Lead
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&crm.Lead{}), scope), filter)
	query = orderBy(paginate(query, filter), filter, LeadSortFields, "created_at")

	if err := query.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// FindByStatus finds leads by status
func (r *GormLeadRepository) FindByStatus(ctx context.Context, scope shared.Scope, status crm.LeadStatus, filter shared.Filter) ([]crm.Lead, error) {
	var leads []crm.Lead
	query := r.applyFilter(
		scoped(r.db.WithContext(ctx).Model(&crm.Lead{}), scope).Where("status = ?", status),
		filter,
	)
	query = orderBy(paginate(query, filter), filter, LeadSortFields, "created_at")

	if err := query.Find(&leads).Error; err != nil {
		return nil, err
	}
	return leads, nil
}

// Count counts leads in the scope matching the filter
func (r *GormLeadRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&crm.Lead{}), scope), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus returns the number of leads per status, for reporting
func (r *GormLeadRepository) CountByStatus(ctx context.Context, scope shared.Scope) (map[crm.LeadStatus]int64, error) {
	var rows []struct {
		Status crm.LeadStatus
		Count  int64
	}
	err := scoped(r.db.WithContext(ctx).Model(&crm.Lead{}), scope).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[crm.LeadStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// Save creates or updates a lead
func (r *GormLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	return r.db.WithContext(ctx).Save(lead).Error
}

// SaveWithLock saves a lead with optimistic locking (version check)
func (r *GormLeadRepository) SaveWithLock(ctx context.Context, lead *crm.Lead) error {
	result := r.db.WithContext(ctx).
		Model(lead).
		Where("id = ? AND version = ?", lead.ID, lead.Version-1).
		Select("*").
		Updates(lead)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a lead by ID within the given scope
func (r *GormLeadRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	result := scoped(r.db.WithContext(ctx), scope).Delete(&crm.Lead{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormLeadRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "title", "contact_name", "contact_email")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "source":
			query = query.Where("source = ?", value)
		}
	}
	return query
}
