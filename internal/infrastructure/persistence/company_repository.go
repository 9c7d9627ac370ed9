package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/crmsuite/backend/internal/domain/directory"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// GormCompanyRepository implements directory.CompanyRepository using GORM
type GormCompanyRepository struct {
	db *gorm.DB
}

// NewGormCompanyRepository creates a new GormCompanyRepository
func NewGormCompanyRepository(db *gorm.DB) *GormCompanyRepository {
	return &GormCompanyRepository{db: db}
}

// FindByID finds a company by its ID
func (r *GormCompanyRepository) FindByID(ctx context.Context, id uuid.UUID) (*directory.Company, error) {
	var company directory.Company
	if err := r.db.WithContext(ctx).First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindByVATNumber finds a company by its VAT number
func (r *GormCompanyRepository) FindByVATNumber(ctx context.Context, vatNumber string) (*directory.Company, error) {
	var company directory.Company
	err := r.db.WithContext(ctx).
		Where("vat_number = ?", strings.ToUpper(strings.TrimSpace(vatNumber))).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &company, nil
}

// FindAll finds all companies matching the filter
func (r *GormCompanyRepository) FindAll(ctx context.Context, filter shared.Filter) ([]directory.Company, error) {
	var companies []directory.Company
	query := r.applyFilter(r.db.WithContext(ctx).Model(&directory.Company{}), filter)
	query = orderBy(paginate(query, filter), filter, CompanySortFields, "created_at")

	if err := query.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// FindByStatus finds companies by status
func (r *GormCompanyRepository) FindByStatus(ctx context.Context, status directory.CompanyStatus, filter shared.Filter) ([]directory.Company, error) {
	var companies []directory.Company
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&directory.Company{}).Where("status = ?", status),
		filter,
	)
	query = orderBy(paginate(query, filter), filter, CompanySortFields, "created_at")

	if err := query.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

// Count counts companies matching the filter
func (r *GormCompanyRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&directory.Company{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a company
func (r *GormCompanyRepository) Save(ctx context.Context, company *directory.Company) error {
	return r.db.WithContext(ctx).Save(company).Error
}

// SaveWithLock saves a company with optimistic locking (version check)
func (r *GormCompanyRepository) SaveWithLock(ctx context.Context, company *directory.Company) error {
	result := r.db.WithContext(ctx).
		Model(company).
		Where("id = ? AND version = ?", company.ID, company.Version-1).
		Select("*").
		Updates(company)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a company by ID
func (r *GormCompanyRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&directory.Company{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Exists checks whether a company with the given ID exists
func (r *GormCompanyRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&directory.Company{}).
		Where("id = ?", id).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormCompanyRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "name", "legal_name", "vat_number", "email")

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "currency":
			query = query.Where("default_currency = ?", value)
		}
	}
	return query
}
