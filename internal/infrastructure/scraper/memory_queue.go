package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/crmsuite/backend/internal/domain/scrape"
)

const defaultMemoryQueueCapacity = 1024

// MemoryQueue is a channel-backed queue for single-instance deployments
// and tests. Queued IDs are lost on restart.
type MemoryQueue struct {
	jobs         chan uuid.UUID
	pollInterval time.Duration
}

// NewMemoryQueue creates an in-process scrape job queue
func NewMemoryQueue(capacity int, pollInterval time.Duration) *MemoryQueue {
	if capacity <= 0 {
		capacity = defaultMemoryQueueCapacity
	}
	if pollInterval <= 0 {
		pollInterval = defaultPollInterval
	}
	return &MemoryQueue{
		jobs:         make(chan uuid.UUID, capacity),
		pollInterval: pollInterval,
	}
}

// Enqueue pushes a job ID onto the queue
func (q *MemoryQueue) Enqueue(ctx context.Context, jobID uuid.UUID) error {
	select {
	case q.jobs <- jobID:
		return nil
	default:
		return fmt.Errorf("scrape queue is full")
	}
}

// Dequeue blocks up to the poll interval for the next job ID and returns
// uuid.Nil when nothing arrived in time
func (q *MemoryQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	timer := time.NewTimer(q.pollInterval)
	defer timer.Stop()

	select {
	case jobID := <-q.jobs:
		return jobID, nil
	case <-timer.C:
		return uuid.Nil, nil
	case <-ctx.Done():
		return uuid.Nil, ctx.Err()
	}
}

// Depth returns the number of queued job IDs
func (q *MemoryQueue) Depth(ctx context.Context) (int64, error) {
	return int64(len(q.jobs)), nil
}

var _ scrape.Queue = (*MemoryQueue)(nil)
