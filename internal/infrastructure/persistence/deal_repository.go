package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/crm"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// GormDealRepository implements crm.DealRepository using GORM
type GormDealRepository struct {
	db *gorm.DB
}

// NewGormDealRepository creates a new GormDealRepository
func NewGormDealRepository(db *gorm.DB) *GormDealRepository {
	return &GormDealRepository{db: db}
}

// FindByID finds a deal by ID within the given scope
func (r *GormDealRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*crm.Deal, error) {
	var deal crm.Deal
	err := scoped(r.db.WithContext(ctx), scope).First(&deal, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &deal, nil
}

// FindAll finds all deals in the scope matching the filter
func (r *GormDealRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]crm.Deal, error) {
	var deals []crm.Deal
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&crm.Deal{}), scope), filter)
	query = orderBy(paginate(query, filter), filter, DealSortFields, "created_at")

	if err := query.Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// FindByStage finds deals in a given pipeline stage
func (r *GormDealRepository) FindByStage(ctx context.Context, scope shared.Scope, stage crm.DealStage, filter shared.Filter) ([]crm.Deal, error) {
	var deals []crm.Deal
	query := r.applyFilter(
		scoped(r.db.WithContext(ctx).Model(&crm.Deal{}), scope).Where("stage = ?", stage),
		filter,
	)
	query = orderBy(paginate(query, filter), filter, DealSortFields, "created_at")

	if err := query.Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// FindOpen finds all deals not yet won or lost
func (r *GormDealRepository) FindOpen(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]crm.Deal, error) {
	var deals []crm.Deal
	query := r.applyFilter(
		scoped(r.db.WithContext(ctx).Model(&crm.Deal{}), scope).
			Where("stage NOT IN ?", []crm.DealStage{crm.DealStageWon, crm.DealStageLost}),
		filter,
	)
	query = orderBy(paginate(query, filter), filter, DealSortFields, "created_at")

	if err := query.Find(&deals).Error; err != nil {
		return nil, err
	}
	return deals, nil
}

// Count counts deals in the scope matching the filter
func (r *GormDealRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&crm.Deal{}), scope), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// PipelineSummary aggregates deal counts and values per stage
func (r *GormDealRepository) PipelineSummary(ctx context.Context, scope shared.Scope) ([]crm.PipelineStageSummary, error) {
	var summaries []crm.PipelineStageSummary
	err := scoped(r.db.WithContext(ctx).Model(&crm.Deal{}), scope).
		Select("stage, COUNT(*) AS count, COALESCE(SUM(value), 0) AS total_value, COALESCE(SUM(value * probability / 100.0), 0) AS weighted_value").
		Group("stage").
		Order("stage ASC").
		Scan(&summaries).Error
	if err != nil {
		return nil, err
	}
	return summaries, nil
}

// Save creates or updates a deal
func (r *GormDealRepository) Save(ctx context.Context, deal *crm.Deal) error {
	return r.db.WithContext(ctx).Save(deal).Error
}

// SaveWithLock saves a deal with optimistic locking (version check)
func (r *GormDealRepository) SaveWithLock(ctx context.Context, deal *crm.Deal) error {
	result := r.db.WithContext(ctx).
		Model(deal).
		Where("id = ? AND version = ?", deal.ID, deal.Version-1).
		Select("*").
		Updates(deal)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a deal by ID within the given scope
func (r *GormDealRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	result := scoped(r.db.WithContext(ctx), scope).Delete(&crm.Deal{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormDealRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "title")

	for key, value := range filter.Filters {
		switch key {
		case "stage":
			query = query.Where("stage = ?", value)
		case "contact_id":
			query = query.Where("contact_id = ?", value)
		case "currency":
			query = query.Where("currency = ?", value)
		}
	}
	return query
}
