package scrape

import (
	"net/url"
	"strings"
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Mode distinguishes single-URL jobs from batch jobs
type Mode string

const (
	ModeSingle Mode = "single"
	ModeBatch  Mode = "batch"
)

// IsValid checks if the mode is valid
func (m Mode) IsValid() bool {
	return m == ModeSingle || m == ModeBatch
}

// Status represents the lifecycle status of a scrape job
type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// MaxAttempts is the retry ceiling for a job
const MaxAttempts = 3

// Job is a request to fetch one or more documents through the scraping
// upstream. Jobs queue on redis and are worked by a bounded pool; the
// submitting user gets a notification when the job settles.
type Job struct {
	shared.CompanyAggregateRoot
	Mode        Mode       `gorm:"type:varchar(10);not null;default:'single'"`
	URL         string     `gorm:"type:varchar(2000);not null"`
	URLs        []string   `gorm:"type:jsonb;serializer:json"` // batch mode only
	Status      Status     `gorm:"type:varchar(20);not null;default:'queued';index"`
	Attempts    int        `gorm:"not null;default:0"`
	Result      string     `gorm:"type:jsonb"` // scraped document payload
	Error       string     `gorm:"type:text"`
	SubmittedBy uuid.UUID  `gorm:"type:uuid;not null;index"`
	StartedAt   *time.Time
	FinishedAt  *time.Time
}

// TableName returns the table name for GORM
func (Job) TableName() string {
	return "scrape_jobs"
}

// NewSingleJob creates a queued single-URL job
func NewSingleJob(companyID, submittedBy uuid.UUID, rawURL string) (*Job, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	if submittedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Submitting user ID is required")
	}

	job := &Job{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Mode:                 ModeSingle,
		URL:                  strings.TrimSpace(rawURL),
		Status:               StatusQueued,
		SubmittedBy:          submittedBy,
	}

	job.AddDomainEvent(NewJobQueuedEvent(job))

	return job, nil
}

// NewBatchJob creates a queued batch job. The first URL doubles as the
// job's display URL.
func NewBatchJob(companyID, submittedBy uuid.UUID, urls []string) (*Job, error) {
	if len(urls) == 0 {
		return nil, shared.NewDomainError("INVALID_URL", "Batch job requires at least one URL")
	}
	if len(urls) > 100 {
		return nil, shared.NewDomainError("BATCH_TOO_LARGE", "Batch jobs are limited to 100 URLs")
	}
	for _, raw := range urls {
		if err := validateURL(raw); err != nil {
			return nil, err
		}
	}
	if submittedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Submitting user ID is required")
	}

	job := &Job{
		CompanyAggregateRoot: shared.NewCompanyAggregateRoot(companyID),
		Mode:                 ModeBatch,
		URL:                  strings.TrimSpace(urls[0]),
		URLs:                 urls,
		Status:               StatusQueued,
		SubmittedBy:          submittedBy,
	}

	job.AddDomainEvent(NewJobQueuedEvent(job))

	return job, nil
}

// Start marks the job as running and counts the attempt
func (j *Job) Start() error {
	if j.Status != StatusQueued {
		return shared.NewDomainError("INVALID_STATE", "Only queued jobs can start")
	}
	if j.Attempts >= MaxAttempts {
		return shared.NewDomainError("ATTEMPTS_EXHAUSTED", "Job has no attempts left")
	}

	now := time.Now()
	j.Status = StatusRunning
	j.Attempts++
	j.StartedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()

	return nil
}

// Complete stores the scraped payload and settles the job
func (j *Job) Complete(result string) error {
	if j.Status != StatusRunning {
		return shared.NewDomainError("INVALID_STATE", "Only running jobs can complete")
	}

	now := time.Now()
	j.Status = StatusCompleted
	j.Result = result
	j.Error = ""
	j.FinishedAt = &now
	j.UpdatedAt = now
	j.IncrementVersion()

	j.AddDomainEvent(NewJobSettledEvent(j))

	return nil
}

// Fail records an attempt failure. With attempts left and a retryable
// cause the job goes back to queued; otherwise it settles as failed.
func (j *Job) Fail(cause string, retryable bool) error {
	if j.Status != StatusRunning {
		return shared.NewDomainError("INVALID_STATE", "Only running jobs can fail")
	}

	now := time.Now()
	j.Error = cause
	j.UpdatedAt = now
	j.IncrementVersion()

	if retryable && j.Attempts < MaxAttempts {
		j.Status = StatusQueued
		return nil
	}

	j.Status = StatusFailed
	j.FinishedAt = &now

	j.AddDomainEvent(NewJobSettledEvent(j))

	return nil
}

// IsSettled returns true once the job reached a terminal status
func (j *Job) IsSettled() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

func validateURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return shared.NewDomainError("INVALID_URL", "URL cannot be empty")
	}
	if len(raw) > 2000 {
		return shared.NewDomainError("INVALID_URL", "URL cannot exceed 2000 characters")
	}
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return shared.NewDomainError("INVALID_URL", "URL must be absolute http(s)")
	}
	return nil
}
