package scrape

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// JobRepository defines the interface for scrape job persistence
type JobRepository interface {
	// FindByID finds a job by ID within the given scope
	FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*Job, error)

	// FindAll finds all jobs in the scope matching the filter
	FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]Job, error)

	// FindByStatus finds jobs by status
	FindByStatus(ctx context.Context, scope shared.Scope, status Status, filter shared.Filter) ([]Job, error)

	// Count counts jobs in the scope matching the filter
	Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error)

	// Save creates or updates a job
	Save(ctx context.Context, job *Job) error

	// SaveWithLock saves a job with optimistic locking (version check)
	SaveWithLock(ctx context.Context, job *Job) error
}

// Queue is the transport carrying queued job IDs to the worker pool
type Queue interface {
	// Enqueue pushes a job ID onto the queue
	Enqueue(ctx context.Context, jobID uuid.UUID) error

	// Dequeue pops the next job ID, blocking up to the implementation's
	// poll interval; returns uuid.Nil and no error when nothing arrived
	Dequeue(ctx context.Context) (uuid.UUID, error)

	// Depth returns the number of queued job IDs
	Depth(ctx context.Context) (int64, error)
}
