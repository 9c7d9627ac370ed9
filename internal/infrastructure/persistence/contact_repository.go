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

// GormContactRepository implements directory.ContactRepository using GORM
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByID finds a contact by ID within the given scope
func (r *GormContactRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*directory.Contact, error) {
	var contact directory.Contact
	err := scoped(r.db.WithContext(ctx), scope).First(&contact, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindByEmail finds a contact by email within a company
func (r *GormContactRepository) FindByEmail(ctx context.Context, companyID uuid.UUID, email string) (*directory.Contact, error) {
	var contact directory.Contact
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND email = ?", companyID, strings.ToLower(strings.TrimSpace(email))).
		First(&contact).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &contact, nil
}

// FindAll finds all contacts in the scope matching the filter
func (r *GormContactRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]directory.Contact, error) {
	var contacts []directory.Contact
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&directory.Contact{}), scope), filter)
	query = orderBy(paginate(query, filter), filter, ContactSortFields, "created_at")

	if err := query.Find(&contacts).Error; err != nil {
		return nil, err
	}
	return contacts, nil
}

// FindByLead finds contacts linked to a lead
func (r *GormContactRepository) FindByLead(ctx context.Context, scope shared.Scope, leadID uuid.UUID) ([]directory.Contact, error) {
	var contacts []directory.Contact
	err := scoped(r.db.WithContext(ctx), scope).
		Where("lead_id = ?", leadID).
		Order("last_name ASC, first_name ASC").
		Find(&contacts).Error
	if err != nil {
		return nil, err
	}
	return contacts, nil
}

// Count counts contacts in the scope matching the filter
func (r *GormContactRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(scoped(r.db.WithContext(ctx).Model(&directory.Contact{}), scope), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a contact
func (r *GormContactRepository) Save(ctx context.Context, contact *directory.Contact) error {
	return r.db.WithContext(ctx).Save(contact).Error
}

// SaveWithLock saves a contact with optimistic locking (version check)
func (r *GormContactRepository) SaveWithLock(ctx context.Context, contact *directory.Contact) error {
	result := r.db.WithContext(ctx).
		Model(contact).
		Where("id = ? AND version = ?", contact.ID, contact.Version-1).
		Select("*").
		Updates(contact)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a contact by ID within the given scope
func (r *GormContactRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	result := scoped(r.db.WithContext(ctx), scope).Delete(&directory.Contact{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormContactRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = search(query, filter.Search, "first_name", "last_name", "email", "phone")

	for key, value := range filter.Filters {
		switch key {
		case "lead_id":
			query = query.Where("lead_id = ?", value)
		case "deal_id":
			query = query.Where("deal_id = ?", value)
		case "position":
			query = query.Where("position = ?", value)
		}
	}
	return query
}
