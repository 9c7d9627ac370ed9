package scrape

import (
	"time"

	"github.com/google/uuid"

	"github.com/crmsuite/backend/internal/domain/scrape"
)

// EnqueueRequest carries one or more URLs to scrape. A single url field
// creates a single job; a urls array creates a batch job.
type EnqueueRequest struct {
	URL  string   `json:"url" binding:"required_without=URLs,omitempty,url"`
	URLs []string `json:"urls" binding:"required_without=URL,omitempty,max=100,dive,url"`
	// Sync runs a single-URL job inline instead of queueing it
	Sync bool `json:"sync"`
}

// JobResponse is the API representation of a scrape job
type JobResponse struct {
	ID          uuid.UUID  `json:"id"`
	Mode        string     `json:"mode"`
	URL         string     `json:"url"`
	URLs        []string   `json:"urls,omitempty"`
	Status      string     `json:"status"`
	Attempts    int        `json:"attempts"`
	Result      string     `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
	SubmittedBy uuid.UUID  `json:"submitted_by"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	FinishedAt  *time.Time `json:"finished_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ToJobResponse converts a domain job to a response DTO
func ToJobResponse(job *scrape.Job) *JobResponse {
	return &JobResponse{
		ID:          job.ID,
		Mode:        string(job.Mode),
		URL:         job.URL,
		URLs:        job.URLs,
		Status:      string(job.Status),
		Attempts:    job.Attempts,
		Result:      job.Result,
		Error:       job.Error,
		SubmittedBy: job.SubmittedBy,
		StartedAt:   job.StartedAt,
		FinishedAt:  job.FinishedAt,
		CreatedAt:   job.CreatedAt,
	}
}

// ToJobResponses converts a slice of jobs
func ToJobResponses(jobs []scrape.Job) []JobResponse {
	responses := make([]JobResponse, len(jobs))
	for i := range jobs {
		responses[i] = *ToJobResponse(&jobs[i])
	}
	return responses
}

// ListFilter holds list query parameters for scrape jobs
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status" binding:"omitempty,oneof=queued running completed failed"`
}
