package notification

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crmsuite/backend/internal/domain/notification"
	"github.com/crmsuite/backend/internal/domain/shared"
)

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, userID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountByUser(ctx context.Context, userID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, userID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *notification.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}

type MockUnreadCounter struct {
	mock.Mock
}

func (m *MockUnreadCounter) Get(ctx context.Context, userID uuid.UUID) (int64, bool, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}

func (m *MockUnreadCounter) Set(ctx context.Context, userID uuid.UUID, count int64) error {
	args := m.Called(ctx, userID, count)
	return args.Error(0)
}

func (m *MockUnreadCounter) Invalidate(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func TestNotificationService_Notify(t *testing.T) {
	repo := new(MockNotificationRepository)
	counter := new(MockUnreadCounter)
	svc := NewService(repo, counter, nil)

	companyID := uuid.New()
	userID := uuid.New()
	invoiceID := uuid.New()

	repo.On("Save", mock.Anything, mock.AnythingOfType("*notification.Notification")).Return(nil)
	counter.On("Invalidate", mock.Anything, userID).Return(nil)

	resp, err := svc.Notify(context.Background(), companyID, NotifyRequest{
		UserID:     userID,
		Type:       "document",
		Title:      "Invoice INV-2026-00042 is ready",
		EntityKind: "invoice",
		EntityID:   &invoiceID,
	})

	require.NoError(t, err)
	assert.Equal(t, "document", resp.Type)
	assert.False(t, resp.Read)
	assert.Equal(t, "invoice", resp.EntityKind)
	require.NotNil(t, resp.EntityID)
	assert.Equal(t, invoiceID, *resp.EntityID)
	repo.AssertExpectations(t)
	counter.AssertExpectations(t)
}

func TestNotificationService_Notify_InvalidType(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewService(repo, nil, nil)

	_, err := svc.Notify(context.Background(), uuid.New(), NotifyRequest{
		UserID: uuid.New(),
		Type:   "carrier-pigeon",
		Title:  "hello",
	})

	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_TYPE", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestNotificationService_MarkRead(t *testing.T) {
	repo := new(MockNotificationRepository)
	counter := new(MockUnreadCounter)
	svc := NewService(repo, counter, nil)

	companyID := uuid.New()
	userID := uuid.New()
	n, err := notification.NewNotification(companyID, userID, notification.TypeInfo, "Welcome", "")
	require.NoError(t, err)
	n.ClearDomainEvents()

	repo.On("FindByID", mock.Anything, userID, n.ID).Return(n, nil)
	repo.On("Save", mock.Anything, n).Return(nil)
	counter.On("Invalidate", mock.Anything, userID).Return(nil)

	resp, err := svc.MarkRead(context.Background(), userID, n.ID)
	require.NoError(t, err)
	assert.True(t, resp.Read)
	assert.NotNil(t, resp.ReadAt)

	// second call is a no-op, no save or invalidation
	repo.Calls = nil
	counter.Calls = nil
	resp, err = svc.MarkRead(context.Background(), userID, n.ID)
	require.NoError(t, err)
	assert.True(t, resp.Read)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	counter.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything)
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	repo := new(MockNotificationRepository)
	counter := new(MockUnreadCounter)
	svc := NewService(repo, counter, nil)

	userID := uuid.New()
	repo.On("MarkAllRead", mock.Anything, userID).Return(int64(7), nil)
	counter.On("Invalidate", mock.Anything, userID).Return(nil)

	updated, err := svc.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), updated)
	counter.AssertExpectations(t)
}

func TestNotificationService_UnreadCount_CacheHit(t *testing.T) {
	repo := new(MockNotificationRepository)
	counter := new(MockUnreadCounter)
	svc := NewService(repo, counter, nil)

	userID := uuid.New()
	counter.On("Get", mock.Anything, userID).Return(int64(3), true, nil)

	resp, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Unread)
	repo.AssertNotCalled(t, "CountUnread", mock.Anything, mock.Anything)
}

func TestNotificationService_UnreadCount_CacheMiss(t *testing.T) {
	repo := new(MockNotificationRepository)
	counter := new(MockUnreadCounter)
	svc := NewService(repo, counter, nil)

	userID := uuid.New()
	counter.On("Get", mock.Anything, userID).Return(int64(0), false, nil)
	repo.On("CountUnread", mock.Anything, userID).Return(int64(5), nil)
	counter.On("Set", mock.Anything, userID, int64(5)).Return(nil)

	resp, err := svc.UnreadCount(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Unread)
	counter.AssertExpectations(t)
}
