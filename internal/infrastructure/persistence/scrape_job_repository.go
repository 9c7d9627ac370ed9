package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/scrape"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// GormScrapeJobRepository implements scrape.JobRepository using GORM
type GormScrapeJobRepository struct {
	db *gorm.DB
}

// NewGormScrapeJobRepository creates a new GormScrapeJobRepository
func NewGormScrapeJobRepository(db *gorm.DB) *GormScrapeJobRepository {
	return &GormScrapeJobRepository{db: db}
}

// FindByID finds a job by ID within the given scope
func (r *GormScrapeJobRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*scrape.Job, error) {
	var job scrape.Job
	err := scoped(r.db.WithContext(ctx), scope).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// FindAll finds all jobs in the scope matching the filter
func (r *GormScrapeJobRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]scrape.Job, error) {
	var jobs []scrape.Job
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&scrape.Job{}), scope), filter)
	query = orderBy(paginate(query, filter), filter, ScrapeJobSortFields, "created_at")

	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// FindByStatus finds jobs by status
func (r *GormScrapeJobRepository) FindByStatus(ctx context.Context, scope shared.Scope, status scrape.Status, filter shared.Filter) ([]scrape.Job, error) {
	var jobs []scrape.Job
	query := r.applyFilter(
		scoped(r.db.WithContext(ctx).Model(&scrape.Job{}), scope).Where("status = ?", status),
		filter,
	)
	query = orderBy(paginate(query, filter), filter, ScrapeJobSortFields, "created_at")

	if err := query.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// Count counts jobs in the scope matching the filter
func (r *GormScrapeJobRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&scrape.Job{}), scope), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a job
func (r *GormScrapeJobRepository) Save(ctx context.Context, job *scrape.Job) error {
	return r.db.WithContext(ctx).Save(job).Error
}

// SaveWithLock saves a job with optimistic locking (version check)
func (r *GormScrapeJobRepository) SaveWithLock(ctx context.Context, job *scrape.Job) error {
	result := r.db.WithContext(ctx).
		Model(job).
		Where("id = ? AND version = ?", job.ID, job.Version-1).
		Select("*").
		Updates(job)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormScrapeJobRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "url")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "mode":
			query = query.Where("mode = ?", value)
		case "submitted_by":
			query = query.Where("submitted_by = ?", value)
		}
	}
	return query
}
