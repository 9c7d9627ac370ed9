package identity

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crmsuite/backend/internal/domain/identity"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/infrastructure/auth"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByCompany(ctx context.Context, companyID uuid.UUID, filter shared.Filter) ([]identity.User, error) {
	args := m.Called(ctx, companyID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.User), args.Error(1)
}

func (m *MockUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) SaveWithLock(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestTokens() *auth.JWTService {
	return auth.NewJWTService("auth-service-test-secret-32chars!!!!", "", "crm-test", 15*time.Minute, 24*time.Hour, 10)
}

func testUser(t *testing.T) *identity.User {
	t.Helper()
	user, err := identity.NewUser("anna@example.com", "Anna Schmidt", "correct-horse")
	require.NoError(t, err)
	user.ClearDomainEvents()
	return user
}

func TestAuthService_Login(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestTokens(), nil, DefaultAuthServiceConfig(), nil)

	user := testUser(t)
	companyID := uuid.New()
	require.NoError(t, user.SetActiveCompany(companyID))

	repo.On("FindByEmail", mock.Anything, "anna@example.com").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "anna@example.com",
		Password: "correct-horse",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.Tokens.AccessToken)
	assert.Equal(t, "anna@example.com", resp.User.Email)
	assert.NotNil(t, user.LastLoginAt)

	claims, err := newTestTokens().ValidateAccessToken(resp.Tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.UserID)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, companyID.String(), claims.CompanyID)

	repo.AssertExpectations(t)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestTokens(), nil, DefaultAuthServiceConfig(), nil)

	user := testUser(t)
	repo.On("FindByEmail", mock.Anything, "anna@example.com").Return(user, nil)
	repo.On("Save", mock.Anything, user).Return(nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "anna@example.com",
		Password: "wrong",
	})

	require.Error(t, err)
	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
	assert.Equal(t, 1, user.FailedAttempts)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestTokens(), nil, DefaultAuthServiceConfig(), nil)

	repo.On("FindByEmail", mock.Anything, "ghost@example.com").Return(nil, shared.ErrNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever",
	})

	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_DisabledAccount(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestTokens(), nil, DefaultAuthServiceConfig(), nil)

	user := testUser(t)
	require.NoError(t, user.Disable())
	user.ClearDomainEvents()

	repo.On("FindByEmail", mock.Anything, "anna@example.com").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "anna@example.com",
		Password: "correct-horse",
	})

	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "ACCOUNT_DISABLED", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAuthService_Login_LockedAfterTooManyFailures(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestTokens(), nil, DefaultAuthServiceConfig(), nil)

	user := testUser(t)
	for i := 0; i < 5; i++ {
		user.RecordFailedLogin()
	}

	repo.On("FindByEmail", mock.Anything, "anna@example.com").Return(user, nil)

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "anna@example.com",
		Password: "correct-horse",
	})

	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "ACCOUNT_LOCKED", domainErr.Code)
}

func TestAuthService_Refresh(t *testing.T) {
	repo := new(MockUserRepository)
	tokens := newTestTokens()
	svc := NewAuthService(repo, tokens, nil, DefaultAuthServiceConfig(), nil)

	pair, err := tokens.GenerateTokenPair(auth.Identity{
		UserID: uuid.New(), Email: "anna@example.com", Role: "member",
	})
	require.NoError(t, err)

	newPair, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: pair.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, newPair.AccessToken)
	assert.NotEqual(t, pair.RefreshToken, newPair.RefreshToken)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestTokens(), nil, DefaultAuthServiceConfig(), nil)

	_, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: "garbage"})

	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestTokens(), nil, DefaultAuthServiceConfig(), nil)

	user := testUser(t)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("SaveWithLock", mock.Anything, user).Return(nil)

	err := svc.ChangePassword(context.Background(), user.ID.String(), ChangePasswordRequest{
		CurrentPassword: "correct-horse",
		NewPassword:     "battery-staple",
	})

	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("battery-staple"))
	repo.AssertExpectations(t)
}

func TestAuthService_ChangePassword_WrongCurrent(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewAuthService(repo, newTestTokens(), nil, DefaultAuthServiceConfig(), nil)

	user := testUser(t)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)

	err := svc.ChangePassword(context.Background(), user.ID.String(), ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "battery-staple",
	})

	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "INVALID_PASSWORD", domainErr.Code)
	repo.AssertNotCalled(t, "SaveWithLock", mock.Anything, mock.Anything)
}
