package scrape

import (
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const AggregateTypeScrapeJob = "ScrapeJob"

const (
	EventTypeJobQueued  = "ScrapeJobQueued"
	EventTypeJobSettled = "ScrapeJobSettled"
)

// JobQueuedEvent is published when a job enters the queue
type JobQueuedEvent struct {
	shared.BaseDomainEvent
	JobID       uuid.UUID `json:"job_id"`
	Mode        Mode      `json:"mode"`
	URL         string    `json:"url"`
	SubmittedBy uuid.UUID `json:"submitted_by"`
}

// NewJobQueuedEvent creates a new JobQueuedEvent
func NewJobQueuedEvent(job *Job) *JobQueuedEvent {
	return &JobQueuedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobQueued, AggregateTypeScrapeJob, job.ID, job.CompanyID),
		JobID:           job.ID,
		Mode:            job.Mode,
		URL:             job.URL,
		SubmittedBy:     job.SubmittedBy,
	}
}

// JobSettledEvent is published when a job completes or fails for good
type JobSettledEvent struct {
	shared.BaseDomainEvent
	JobID       uuid.UUID `json:"job_id"`
	Status      Status    `json:"status"`
	Attempts    int       `json:"attempts"`
	Error       string    `json:"error,omitempty"`
	SubmittedBy uuid.UUID `json:"submitted_by"`
}

// NewJobSettledEvent creates a new JobSettledEvent
func NewJobSettledEvent(job *Job) *JobSettledEvent {
	return &JobSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeJobSettled, AggregateTypeScrapeJob, job.ID, job.CompanyID),
		JobID:           job.ID,
		Status:          job.Status,
		Attempts:        job.Attempts,
		Error:           job.Error,
		SubmittedBy:     job.SubmittedBy,
	}
}
