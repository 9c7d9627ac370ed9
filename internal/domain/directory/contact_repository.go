package directory

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactRepository defines the interface for contact persistence
type ContactRepository interface {
	// FindByID finds a contact by ID within the given scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Contact, error)

	// FindByEmail finds a contact by email within a company
	FindByEmail(ctx context.Context, companyID uuid.UUID, email string) (*Contact, error)

	// FindAll finds all contacts in the scope matching the filter
	FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Contact, error)

	// FindByLead finds contacts linked to a lead
	FindByLead(ctx context.Context, scope shared.Scope, leadID uuid.UUID) ([]Contact, error)

	// Count counts contacts in the scope matching the filter
	Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error)

	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error

	// SaveWithLock saves a contact with optimistic locking (version check)
	SaveWithLock(ctx context.Context, contact *Contact) error

	// Delete deletes a contact by ID within the given scope
	Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error
}
