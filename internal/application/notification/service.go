package notification

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crmsuite/backend/internal/domain/notification"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// UnreadCounter caches per-user unread counts so the badge poll does not
// hit the database on every request
type UnreadCounter interface {
	// Get returns the cached count; ok is false on a cache miss
	Get(ctx context.Context, userID uuid.UUID) (count int64, ok bool, err error)

	// Set stores the count
	Set(ctx context.Context, userID uuid.UUID, count int64) error

	// Invalidate drops the cached count
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

// Service handles notification delivery and the per-user inbox
type Service struct {
	repo    notification.Repository
	counter UnreadCounter
	logger  *zap.Logger
}

// NewService creates a new notification service. counter may be nil,
// in which case every unread count hits the database.
func NewService(repo notification.Repository, counter UnreadCounter, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, counter: counter, logger: logger}
}

// Notify creates a notification for a user
func (s *Service) Notify(ctx context.Context, companyID uuid.UUID, req NotifyRequest) (*NotificationResponse, error) {
	n, err := notification.NewNotification(companyID, req.UserID, notification.Type(req.Type), req.Title, req.Body)
	if err != nil {
		return nil, err
	}
	if req.EntityKind != "" && req.EntityID != nil {
		n.SetEntity(req.EntityKind, *req.EntityID)
	}

	if err := s.repo.Save(ctx, n); err != nil {
		return nil, err
	}
	n.ClearDomainEvents()

	s.invalidateCounter(ctx, req.UserID)

	return ToNotificationResponse(n), nil
}

// GetByID retrieves one of the user's notifications
func (s *Service) GetByID(ctx context.Context, userID, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return ToNotificationResponse(n), nil
}

// List retrieves the user's notifications, newest first
func (s *Service) List(ctx context.Context, userID uuid.UUID, filter ListFilter) (*shared.Paginated[NotificationResponse], error) {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		f.PageSize = filter.PageSize
	}
	if filter.UnreadOnly {
		f.Filters["read"] = false
	}
	if filter.Type != "" {
		f.Filters["type"] = filter.Type
	}

	items, err := s.repo.FindByUser(ctx, userID, f)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountByUser(ctx, userID, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToNotificationResponses(items), total, f.Page, f.PageSize)
	return &result, nil
}

// MarkRead marks a single notification as read
func (s *Service) MarkRead(ctx context.Context, userID, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if !n.Read {
		n.MarkRead()
		if err := s.repo.Save(ctx, n); err != nil {
			return nil, err
		}
		s.invalidateCounter(ctx, userID)
	}

	return ToNotificationResponse(n), nil
}

// MarkAllRead marks every unread notification for the user as read and
// returns the number updated
func (s *Service) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	updated, err := s.repo.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	if updated > 0 {
		s.invalidateCounter(ctx, userID)
	}
	return updated, nil
}

// UnreadCount returns the user's unread count, served from cache when warm
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (*UnreadCountResponse, error) {
	if s.counter != nil {
		count, ok, err := s.counter.Get(ctx, userID)
		if err != nil {
			s.logger.Warn("unread counter cache read failed",
				zap.String("user_id", userID.String()), zap.Error(err))
		} else if ok {
			return &UnreadCountResponse{Unread: count}, nil
		}
	}

	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.counter != nil {
		if err := s.counter.Set(ctx, userID, count); err != nil {
			s.logger.Warn("unread counter cache write failed",
				zap.String("user_id", userID.String()), zap.Error(err))
		}
	}

	return &UnreadCountResponse{Unread: count}, nil
}

// Delete deletes one of the user's notifications
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	n, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	if !n.Read {
		s.invalidateCounter(ctx, userID)
	}
	return nil
}

func (s *Service) invalidateCounter(ctx context.Context, userID uuid.UUID) {
	if s.counter == nil {
		return
	}
	if err := s.counter.Invalidate(ctx, userID); err != nil {
		s.logger.Warn("unread counter invalidation failed",
			zap.String("user_id", userID.String()), zap.Error(err))
	}
}
