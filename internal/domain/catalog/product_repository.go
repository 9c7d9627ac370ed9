package catalog

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID within the given scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Product, error)

	// FindByCode finds a product by code within a company
	FindByCode(ctx context.Context, companyID uuid.UUID, code string) (*Product, error)

	// FindAll finds all products in the scope matching the filter
	FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Product, error)

	// FindActive finds all active products in the scope
	FindActive(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Product, error)

	// FindByIDs finds multiple products by their IDs within a company
	FindByIDs(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]Product, error)

	// Count counts products in the scope matching the filter
	Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves a product with optimistic locking (version check)
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete deletes a product by ID within the given scope
	Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error
}
