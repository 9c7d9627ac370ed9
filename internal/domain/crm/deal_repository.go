package crm

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PipelineStageSummary aggregates deals per stage for reporting
type PipelineStageSummary struct {
	Stage         DealStage       `json:"stage"`
	Count         int64           `json:"count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	WeightedValue decimal.Decimal `json:"weighted_value"`
}

// DealRepository defines the interface for deal persistence
type DealRepository interface {
	// FindByID finds a deal by ID within the given scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Deal, error)

	// FindAll finds all deals in the scope matching the filter
	FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Deal, error)

	// FindByStage finds deals in a given pipeline stage
	FindByStage(ctx context.Context, scope shared.Scope, stage DealStage, filter shared.Filter) ([]Deal, error)

	// FindOpen finds all deals not yet won or lost
	FindOpen(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Deal, error)

	// Count counts deals in the scope matching the filter
	Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error)

	// PipelineSummary aggregates deal counts and values per stage
	PipelineSummary(ctx context.Context, scope shared.Scope) ([]PipelineStageSummary, error)

	// Save creates or updates a deal
	Save(ctx context.Context, deal *Deal) error

	// SaveWithLock saves a deal with optimistic locking (version check)
	SaveWithLock(ctx context.Context, deal *Deal) error

	// Delete deletes a deal by ID within the given scope
	Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error
}
