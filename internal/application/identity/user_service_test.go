package identity

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/crmsuite/backend/internal/domain/identity"
	"github.com/crmsuite/backend/internal/domain/shared"
)

func TestUserService_Create(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil)

	repo.On("FindByEmail", mock.Anything, "ben@example.com").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateUserRequest{
		Email:       "ben@example.com",
		DisplayName: "Ben Okafor",
		Password:    "long-enough-pw",
	})

	require.NoError(t, err)
	assert.Equal(t, "ben@example.com", resp.Email)
	assert.Equal(t, "member", resp.Role)
	assert.Equal(t, "active", resp.Status)
	repo.AssertExpectations(t)
}

func TestUserService_Create_Admin(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil)

	repo.On("FindByEmail", mock.Anything, "root@example.com").Return(nil, shared.ErrNotFound)
	repo.On("Save", mock.Anything, mock.AnythingOfType("*identity.User")).Return(nil)

	resp, err := svc.Create(context.Background(), CreateUserRequest{
		Email:       "root@example.com",
		DisplayName: "Root",
		Password:    "long-enough-pw",
		Role:        "admin",
	})

	require.NoError(t, err)
	assert.Equal(t, "admin", resp.Role)
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil)

	existing := testUser(t)
	repo.On("FindByEmail", mock.Anything, "anna@example.com").Return(existing, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Email:       "anna@example.com",
		DisplayName: "Another Anna",
		Password:    "long-enough-pw",
	})

	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestUserService_Update(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil)

	user := testUser(t)
	companyID := uuid.New()
	newName := "Anna Becker"
	newRole := "admin"

	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("SaveWithLock", mock.Anything, user).Return(nil)

	resp, err := svc.Update(context.Background(), user.ID, UpdateUserRequest{
		DisplayName:     &newName,
		Role:            &newRole,
		ActiveCompanyID: &companyID,
	})

	require.NoError(t, err)
	assert.Equal(t, "Anna Becker", resp.DisplayName)
	assert.Equal(t, "admin", resp.Role)
	require.NotNil(t, resp.ActiveCompanyID)
	assert.Equal(t, companyID, *resp.ActiveCompanyID)
}

func TestUserService_DisableEnable(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil)

	user := testUser(t)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("SaveWithLock", mock.Anything, user).Return(nil)

	resp, err := svc.Disable(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "disabled", resp.Status)

	// disabling twice is rejected
	_, err = svc.Disable(context.Background(), user.ID)
	domainErr, ok := shared.AsDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "ALREADY_DISABLED", domainErr.Code)

	resp, err = svc.Enable(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "active", resp.Status)
	assert.Equal(t, 0, user.FailedAttempts)
}

func TestUserService_ResetPassword(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil)

	user := testUser(t)
	repo.On("FindByID", mock.Anything, user.ID).Return(user, nil)
	repo.On("SaveWithLock", mock.Anything, user).Return(nil)

	err := svc.ResetPassword(context.Background(), user.ID, "fresh-password")
	require.NoError(t, err)
	assert.True(t, user.VerifyPassword("fresh-password"))
	assert.False(t, user.VerifyPassword("correct-horse"))
}

func TestUserService_List(t *testing.T) {
	repo := new(MockUserRepository)
	svc := NewUserService(repo, nil)

	users := []identity.User{*testUser(t), *testUser(t)}
	repo.On("FindAll", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(users, nil)
	repo.On("Count", mock.Anything, mock.AnythingOfType("shared.Filter")).Return(int64(2), nil)

	result, err := svc.List(context.Background(), ListFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.Total)
}
