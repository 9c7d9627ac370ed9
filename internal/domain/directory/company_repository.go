package directory

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CompanyRepository defines the interface for company persistence
type CompanyRepository interface {
	// FindByID finds a company by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)

	// FindByVATNumber finds a company by its VAT number
	FindByVATNumber(ctx context.Context, vatNumber string) (*Company, error)

	// FindAll finds all companies matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Company, error)

	// FindByStatus finds companies by status
	FindByStatus(ctx context.Context, status CompanyStatus, filter shared.Filter) ([]Company, error)

	// Count counts companies matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// Save creates or updates a company
	Save(ctx context.Context, company *Company) error

	// SaveWithLock saves a company with optimistic locking (version check)
	SaveWithLock(ctx context.Context, company *Company) error

	// Delete deletes a company by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// Exists checks whether a company with the given ID exists
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}
