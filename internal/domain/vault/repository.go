package vault

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Repository defines the interface for vault document persistence
type Repository interface {
	// FindByID finds a document by ID within the given scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Document, error)

	// FindAll finds all documents in the scope matching the filter
	FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Document, error)

	// FindByEntity finds documents attached to a business record
	FindByEntity(ctx context.Context, scope shared.Scope, kind string, entityID uuid.UUID) ([]Document, error)

	// Count counts documents in the scope matching the filter
	Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error)

	// Save creates or updates a document
	Save(ctx context.Context, doc *Document) error

	// Delete deletes a document by ID within the given scope
	Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error
}
