package scrape

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"go.uber.org/zap"

	notificationapp "github.com/crmsuite/backend/internal/application/notification"
	"github.com/crmsuite/backend/internal/domain/scrape"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// Scraper fetches a single document through the scraping upstream
type Scraper interface {
	Scrape(ctx context.Context, url string) (document string, err error)
}

// Notifier delivers a notification to a user. Satisfied by the
// notification application service.
type Notifier interface {
	Notify(ctx context.Context, companyID uuid.UUID, req notificationapp.NotifyRequest) (*notificationapp.NotificationResponse, error)
}

// batchEntry is one URL's outcome inside a batch job result
type batchEntry struct {
	URL      string `json:"url"`
	Document string `json:"document,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Service handles scrape job submission and execution
type Service struct {
	jobRepo  scrape.JobRepository
	queue    scrape.Queue
	client   Scraper
	notifier Notifier
	eventBus shared.EventPublisher
	logger   *zap.Logger
}

// NewService creates a new scrape service
func NewService(
	jobRepo scrape.JobRepository,
	queue scrape.Queue,
	client Scraper,
	notifier Notifier,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		jobRepo:  jobRepo,
		queue:    queue,
		client:   client,
		notifier: notifier,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Enqueue creates a scrape job. Single-URL requests with sync=true run
// inline and return the settled job; everything else is queued for the
// worker pool.
func (s *Service) Enqueue(ctx context.Context, scope shared.Scope, submittedBy uuid.UUID, req EnqueueRequest) (*JobResponse, error) {
	if scope.All {
		return nil, shared.NewDomainError("INVALID_SCOPE", "A company must be selected to submit scrape jobs")
	}

	var job *scrape.Job
	var err error
	if len(req.URLs) > 0 {
		job, err = scrape.NewBatchJob(scope.CompanyID, submittedBy, req.URLs)
	} else {
		job, err = scrape.NewSingleJob(scope.CompanyID, submittedBy, req.URL)
	}
	if err != nil {
		return nil, err
	}

	if err := s.jobRepo.Save(ctx, job); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, job)

	if req.Sync && job.Mode == scrape.ModeSingle {
		if err := s.Process(ctx, job.ID); err != nil {
			return nil, err
		}
		settled, err := s.jobRepo.FindByID(ctx, scope, job.ID)
		if err != nil {
			return nil, err
		}
		return ToJobResponse(settled), nil
	}

	if err := s.queue.Enqueue(ctx, job.ID); err != nil {
		return nil, shared.NewDomainError("QUEUE_UNAVAILABLE", "Failed to queue scrape job")
	}

	return ToJobResponse(job), nil
}

// GetByID retrieves a scrape job
func (s *Service) GetByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*JobResponse, error) {
	job, err := s.jobRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return ToJobResponse(job), nil
}

// List retrieves scrape jobs with pagination
func (s *Service) List(ctx context.Context, scope shared.Scope, filter ListFilter) (*shared.Paginated[JobResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		f.PageSize = filter.PageSize
	}

	var jobs []scrape.Job
	var err error
	if filter.Status != "" {
		jobs, err = s.jobRepo.FindByStatus(ctx, scope, scrape.Status(filter.Status), f)
		f.Filters["status"] = filter.Status
	} else {
		jobs, err = s.jobRepo.FindAll(ctx, scope, f)
	}
	if err != nil {
		return nil, err
	}

	total, err := s.jobRepo.Count(ctx, scope, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToJobResponses(jobs), total, f.Page, f.PageSize)
	return &result, nil
}

// Process runs one attempt of a queued job. The worker pool calls this
// for every ID popped off the queue; a transient failure with attempts
// left puts the job back on the queue.
func (s *Service) Process(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.jobRepo.FindByID(ctx, shared.ScopeAll(), jobID)
	if err != nil {
		return err
	}
	if job.Status != scrape.StatusQueued {
		// settled or already picked up elsewhere
		return nil
	}

	if err := job.Start(); err != nil {
		return err
	}
	if err := s.jobRepo.SaveWithLock(ctx, job); err != nil {
		return err
	}

	result, fetchErr := s.run(ctx, job)
	if fetchErr != nil {
		retryable := scrape.IsRetryableError(fetchErr)
		if err := job.Fail(fetchErr.Error(), retryable); err != nil {
			return err
		}
		if err := s.jobRepo.SaveWithLock(ctx, job); err != nil {
			return err
		}
		if job.Status == scrape.StatusQueued {
			if err := s.queue.Enqueue(ctx, job.ID); err != nil {
				s.logger.Warn("failed to requeue scrape job",
					zap.String("job_id", job.ID.String()), zap.Error(err))
			}
			return nil
		}
		s.publishEvents(ctx, job)
		s.notifySettled(ctx, job)
		return nil
	}

	if err := job.Complete(result); err != nil {
		return err
	}
	if err := s.jobRepo.SaveWithLock(ctx, job); err != nil {
		return err
	}
	s.publishEvents(ctx, job)
	s.notifySettled(ctx, job)
	return nil
}

// run fetches the job's document(s). Batch jobs succeed as long as at
// least one URL does; per-URL errors are kept in the result entries.
func (s *Service) run(ctx context.Context, job *scrape.Job) (string, error) {
	if job.Mode == scrape.ModeSingle {
		return s.client.Scrape(ctx, job.URL)
	}

	entries := make([]batchEntry, 0, len(job.URLs))
	var firstErr error
	succeeded := 0
	for _, url := range job.URLs {
		doc, err := s.client.Scrape(ctx, url)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			entries = append(entries, batchEntry{URL: url, Error: err.Error()})
			continue
		}
		succeeded++
		entries = append(entries, batchEntry{URL: url, Document: doc})
	}

	if succeeded == 0 {
		return "", firstErr
	}

	payload, err := json.Marshal(entries)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

func (s *Service) notifySettled(ctx context.Context, job *scrape.Job) {
	if s.notifier == nil {
		return
	}

	req := notificationapp.NotifyRequest{
		UserID:     job.SubmittedBy,
		EntityKind: "scrape_job",
	}
	entityID := job.ID
	req.EntityID = &entityID

	if job.Status == scrape.StatusCompleted {
		req.Type = "document"
		req.Title = "Scrape job completed"
		req.Body = job.URL
	} else {
		req.Type = "warning"
		req.Title = "Scrape job failed"
		req.Body = job.Error
	}

	if _, err := s.notifier.Notify(ctx, job.CompanyID, req); err != nil {
		s.logger.Warn("failed to notify scrape job submitter",
			zap.String("job_id", job.ID.String()), zap.Error(err))
	}
}

func (s *Service) publishEvents(ctx context.Context, job *scrape.Job) {
	if s.eventBus == nil {
		job.ClearDomainEvents()
		return
	}
	for _, event := range job.GetDomainEvents() {
		s.eventBus.Publish(ctx, event)
	}
	job.ClearDomainEvents()
}
