package scrape

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	notificationapp "github.com/crmsuite/backend/internal/application/notification"
	"github.com/crmsuite/backend/internal/domain/scrape"
	"github.com/crmsuite/backend/internal/domain/shared"
)

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*scrape.Job, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*scrape.Job), args.Error(1)
}

func (m *MockJobRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]scrape.Job, error) {
	args := m.Called(ctx, scope, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scrape.Job), args.Error(1)
}

func (m *MockJobRepository) FindByStatus(ctx context.Context, scope shared.Scope, status scrape.Status, filter shared.Filter) ([]scrape.Job, error) {
	args := m.Called(ctx, scope, status, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]scrape.Job), args.Error(1)
}

func (m *MockJobRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) Save(ctx context.Context, job *scrape.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockJobRepository) SaveWithLock(ctx context.Context, job *scrape.Job) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

type MockQueue struct {
	mock.Mock
}

func (m *MockQueue) Enqueue(ctx context.Context, jobID uuid.UUID) error {
	args := m.Called(ctx, jobID)
	return args.Error(0)
}

func (m *MockQueue) Dequeue(ctx context.Context) (uuid.UUID, error) {
	args := m.Called(ctx)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockQueue) Depth(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type MockScraper struct {
	mock.Mock
}

func (m *MockScraper) Scrape(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, companyID uuid.UUID, req notificationapp.NotifyRequest) (*notificationapp.NotificationResponse, error) {
	args := m.Called(ctx, companyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notificationapp.NotificationResponse), args.Error(1)
}

func queuedJob(t *testing.T, companyID uuid.UUID) *scrape.Job {
	t.Helper()
	job, err := scrape.NewSingleJob(companyID, uuid.New(), "https://example.com/page")
	require.NoError(t, err)
	job.ClearDomainEvents()
	return job
}

func TestScrapeService_Enqueue(t *testing.T) {
	repo := new(MockJobRepository)
	queue := new(MockQueue)
	svc := NewService(repo, queue, new(MockScraper), nil, nil, nil)

	companyID := uuid.New()
	userID := uuid.New()

	repo.On("Save", mock.Anything, mock.AnythingOfType("*scrape.Job")).Return(nil)
	queue.On("Enqueue", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)

	resp, err := svc.Enqueue(context.Background(), shared.ScopeCompany(companyID), userID, EnqueueRequest{
		URL: "https://example.com/page",
	})

	require.NoError(t, err)
	assert.Equal(t, "queued", resp.Status)
	assert.Equal(t, "single", resp.Mode)
	assert.Equal(t, 0, resp.Attempts)
	queue.AssertExpectations(t)
}

func TestScrapeService_Enqueue_Batch(t *testing.T) {
	repo := new(MockJobRepository)
	queue := new(MockQueue)
	svc := NewService(repo, queue, new(MockScraper), nil, nil, nil)

	repo.On("Save", mock.Anything, mock.AnythingOfType("*scrape.Job")).Return(nil)
	queue.On("Enqueue", mock.Anything, mock.AnythingOfType("uuid.UUID")).Return(nil)

	resp, err := svc.Enqueue(context.Background(), shared.ScopeCompany(uuid.New()), uuid.New(), EnqueueRequest{
		URLs: []string{"https://example.com/a", "https://example.com/b"},
	})

	require.NoError(t, err)
	assert.Equal(t, "batch", resp.Mode)
	assert.Len(t, resp.URLs, 2)
}

func TestScrapeService_Enqueue_ScopeAllRejected(t *testing.T) {
	repo := new(MockJobRepository)
	svc := NewService(repo, new(MockQueue), new(MockScraper), nil, nil, nil)

	_, err := svc.Enqueue(context.Background(), shared.ScopeAll(), uuid.New(), EnqueueRequest{
		URL: "https://example.com/page",
	})

	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_SCOPE", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestScrapeService_Process_Completes(t *testing.T) {
	repo := new(MockJobRepository)
	client := new(MockScraper)
	notifier := new(MockNotifier)
	svc := NewService(repo, new(MockQueue), client, notifier, nil, nil)

	companyID := uuid.New()
	job := queuedJob(t, companyID)

	repo.On("FindByID", mock.Anything, shared.ScopeAll(), job.ID).Return(job, nil)
	repo.On("SaveWithLock", mock.Anything, job).Return(nil)
	client.On("Scrape", mock.Anything, "https://example.com/page").Return(`{"title":"Example"}`, nil)
	notifier.On("Notify", mock.Anything, companyID, mock.MatchedBy(func(req notificationapp.NotifyRequest) bool {
		return req.Type == "document" && req.UserID == job.SubmittedBy
	})).Return(&notificationapp.NotificationResponse{}, nil)

	err := svc.Process(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, scrape.StatusCompleted, job.Status)
	assert.Equal(t, `{"title":"Example"}`, job.Result)
	assert.Equal(t, 1, job.Attempts)
	notifier.AssertExpectations(t)
}

func TestScrapeService_Process_RetryableFailureRequeues(t *testing.T) {
	repo := new(MockJobRepository)
	queue := new(MockQueue)
	client := new(MockScraper)
	notifier := new(MockNotifier)
	svc := NewService(repo, queue, client, notifier, nil, nil)

	job := queuedJob(t, uuid.New())

	repo.On("FindByID", mock.Anything, shared.ScopeAll(), job.ID).Return(job, nil)
	repo.On("SaveWithLock", mock.Anything, job).Return(nil)
	client.On("Scrape", mock.Anything, "https://example.com/page").Return("", errors.New("upstream returned 503"))
	queue.On("Enqueue", mock.Anything, job.ID).Return(nil)

	err := svc.Process(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, scrape.StatusQueued, job.Status)
	assert.Equal(t, 1, job.Attempts)
	queue.AssertExpectations(t)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything, mock.Anything)
}

func TestScrapeService_Process_PermanentFailureSettles(t *testing.T) {
	repo := new(MockJobRepository)
	queue := new(MockQueue)
	client := new(MockScraper)
	notifier := new(MockNotifier)
	svc := NewService(repo, queue, client, notifier, nil, nil)

	companyID := uuid.New()
	job := queuedJob(t, companyID)

	repo.On("FindByID", mock.Anything, shared.ScopeAll(), job.ID).Return(job, nil)
	repo.On("SaveWithLock", mock.Anything, job).Return(nil)
	client.On("Scrape", mock.Anything, "https://example.com/page").Return("", errors.New("404 not found"))
	notifier.On("Notify", mock.Anything, companyID, mock.MatchedBy(func(req notificationapp.NotifyRequest) bool {
		return req.Type == "warning"
	})).Return(&notificationapp.NotificationResponse{}, nil)

	err := svc.Process(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, scrape.StatusFailed, job.Status)
	queue.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestScrapeService_Process_ExhaustsAttempts(t *testing.T) {
	repo := new(MockJobRepository)
	queue := new(MockQueue)
	client := new(MockScraper)
	svc := NewService(repo, queue, client, nil, nil, nil)

	job := queuedJob(t, uuid.New())

	repo.On("FindByID", mock.Anything, shared.ScopeAll(), job.ID).Return(job, nil)
	repo.On("SaveWithLock", mock.Anything, job).Return(nil)
	client.On("Scrape", mock.Anything, "https://example.com/page").Return("", errors.New("timeout"))
	queue.On("Enqueue", mock.Anything, job.ID).Return(nil)

	for i := 0; i < scrape.MaxAttempts; i++ {
		require.NoError(t, svc.Process(context.Background(), job.ID))
	}

	assert.Equal(t, scrape.StatusFailed, job.Status)
	assert.Equal(t, scrape.MaxAttempts, job.Attempts)
}

func TestScrapeService_Process_BatchPartialSuccess(t *testing.T) {
	repo := new(MockJobRepository)
	client := new(MockScraper)
	svc := NewService(repo, new(MockQueue), client, nil, nil, nil)

	companyID := uuid.New()
	job, err := scrape.NewBatchJob(companyID, uuid.New(), []string{
		"https://example.com/a", "https://example.com/b",
	})
	require.NoError(t, err)
	job.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, shared.ScopeAll(), job.ID).Return(job, nil)
	repo.On("SaveWithLock", mock.Anything, job).Return(nil)
	client.On("Scrape", mock.Anything, "https://example.com/a").Return(`{"title":"A"}`, nil)
	client.On("Scrape", mock.Anything, "https://example.com/b").Return("", errors.New("404 not found"))

	require.NoError(t, svc.Process(context.Background(), job.ID))

	assert.Equal(t, scrape.StatusCompleted, job.Status)
	assert.Contains(t, job.Result, `"document":"{\"title\":\"A\"}"`)
	assert.Contains(t, job.Result, `"error":"404 not found"`)
}

func TestScrapeService_Process_AlreadySettledSkips(t *testing.T) {
	repo := new(MockJobRepository)
	client := new(MockScraper)
	svc := NewService(repo, new(MockQueue), client, nil, nil, nil)

	job := queuedJob(t, uuid.New())
	require.NoError(t, job.Start())
	require.NoError(t, job.Complete("{}"))
	job.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, shared.ScopeAll(), job.ID).Return(job, nil)

	require.NoError(t, svc.Process(context.Background(), job.ID))
	client.AssertNotCalled(t, "Scrape", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, scrape.IsRetryableError(errors.New("request timeout")))
	assert.True(t, scrape.IsRetryableError(errors.New("upstream rate limit exceeded")))
	assert.True(t, scrape.IsRetryableError(errors.New("HTTP 502 Bad Gateway")))
	assert.True(t, scrape.IsRetryableError(errors.New("connection reset by peer")))
	assert.False(t, scrape.IsRetryableError(errors.New("404 not found")))
	assert.False(t, scrape.IsRetryableError(nil))
}
