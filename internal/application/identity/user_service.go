package identity

import (
	"context"

	"github.com/google/uuid"

	"github.com/crmsuite/backend/internal/domain/identity"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// UserService handles user administration. All operations are admin-only;
// the HTTP layer enforces the role before calling in.
type UserService struct {
	userRepo identity.UserRepository
	eventBus shared.EventPublisher
}

// NewUserService creates a new user service
func NewUserService(userRepo identity.UserRepository, eventBus shared.EventPublisher) *UserService {
	return &UserService{userRepo: userRepo, eventBus: eventBus}
}

// Create creates a new user account
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*UserResponse, error) {
	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil && !shared.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email already exists")
	}

	var user *identity.User
	if req.Role == string(identity.RoleAdmin) {
		user, err = identity.NewAdminUser(req.Email, req.DisplayName, req.Password)
	} else {
		user, err = identity.NewUser(req.Email, req.DisplayName, req.Password)
	}
	if err != nil {
		return nil, err
	}

	if req.ActiveCompanyID != nil {
		if err := user.SetActiveCompany(*req.ActiveCompanyID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.Save(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)

	return ToUserResponse(user), nil
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List retrieves users with pagination
func (s *UserService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[UserResponse], error) {
	f := buildFilter(filter)

	users, err := s.userRepo.FindAll(ctx, f)
	if err != nil {
		return nil, err
	}
	total, err := s.userRepo.Count(ctx, f)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToUserResponses(users), total, f.Page, f.PageSize)
	return &result, nil
}

// Update updates a user's profile, role, or active company
func (s *UserService) Update(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		if err := user.Update(*req.DisplayName); err != nil {
			return nil, err
		}
	}
	if req.Role != nil {
		if err := user.SetRole(identity.UserRole(*req.Role)); err != nil {
			return nil, err
		}
	}
	if req.ActiveCompanyID != nil {
		if err := user.SetActiveCompany(*req.ActiveCompanyID); err != nil {
			return nil, err
		}
	}

	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		return nil, err
	}

	return ToUserResponse(user), nil
}

// Disable disables a user account
func (s *UserService) Disable(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Disable(); err != nil {
		return nil, err
	}
	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, user)

	return ToUserResponse(user), nil
}

// Enable re-enables a disabled user account
func (s *UserService) Enable(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := user.Enable(); err != nil {
		return nil, err
	}
	if err := s.userRepo.SaveWithLock(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// ResetPassword sets a new password for a user without the current one
func (s *UserService) ResetPassword(ctx context.Context, id uuid.UUID, newPassword string) error {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := user.ResetPassword(newPassword); err != nil {
		return err
	}
	return s.userRepo.SaveWithLock(ctx, user)
}

// Delete deletes a user account
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

func (s *UserService) publishEvents(ctx context.Context, user *identity.User) {
	if s.eventBus == nil {
		user.ClearDomainEvents()
		return
	}
	for _, event := range user.GetDomainEvents() {
		s.eventBus.Publish(ctx, event)
	}
	user.ClearDomainEvents()
}

func findUserByStringID(ctx context.Context, repo identity.UserRepository, userID string) (*identity.User, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	return repo.FindByID(ctx, id)
}

func buildFilter(filter ListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 && filter.PageSize <= 100 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	return f
}
