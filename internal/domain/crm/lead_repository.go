package crm

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeadRepository defines the interface for lead persistence
type LeadRepository interface {
	// FindByID finds a lead by ID within the given scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Lead, error)

	// FindAll finds all leads in the scope matching the filter
	FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Lead, error)

	// FindByStatus finds leads by status
	FindByStatus(ctx context.Context, scope shared.Scope, status LeadStatus, filter shared.Filter) ([]Lead, error)

	// Count counts leads in the scope matching the filter
	Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error)

	// CountByStatus returns the number of leads per status, for reporting
	CountByStatus(ctx context.Context, scope shared.Scope) (map[LeadStatus]int64, error)

	// Save creates or updates a lead
	Save(ctx context.Context, lead *Lead) error

	// SaveWithLock saves a lead with optimistic locking (version check)
	SaveWithLock(ctx context.Context, lead *Lead) error

	// Delete deletes a lead by ID within the given scope
	Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error
}
