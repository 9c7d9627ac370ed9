package directory

import (
	"context"
	"testing"

	"github.com/crmsuite/backend/internal/domain/directory"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockContactRepository is a mock implementation of ContactRepository
type MockContactRepository struct {
	mock.Mock
}

func (m *MockContactRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*directory.Contact, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByEmail(ctx context.Context, companyID uuid.UUID, email string) (*directory.Contact, error) {
	args := m.Called(ctx, companyID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Contact), args.Error(1)
}

func (m *MockContactRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]directory.Contact, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]directory.Contact), args.Error(1)
}

func (m *MockContactRepository) FindByLead(ctx context.Context, scope shared.Scope, leadID uuid.UUID) ([]directory.Contact, error) {
	args := m.Called(ctx, scope, leadID)
	return args.Get(0).([]directory.Contact), args.Error(1)
}

func (m *MockContactRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockContactRepository) Save(ctx context.Context, contact *directory.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) SaveWithLock(ctx context.Context, contact *directory.Contact) error {
	args := m.Called(ctx, contact)
	return args.Error(0)
}

func (m *MockContactRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

func TestContactService_Create(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)

	t.Run("creates contact", func(t *testing.T) {
		repo := new(MockContactRepository)
		service := NewContactService(repo)

		repo.On("FindByEmail", mock.Anything, companyID, "jane@example.com").Return(nil, shared.ErrNotFound)
		repo.On("Save", mock.Anything, mock.AnythingOfType("*directory.Contact")).Return(nil)

		resp, err := service.Create(context.Background(), scope, CreateContactRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
			Position:  "CTO",
		})
		require.NoError(t, err)

		assert.Equal(t, "Jane Doe", resp.FullName)
		assert.Equal(t, companyID, resp.CompanyID)
		assert.Equal(t, "CTO", resp.Position)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		repo := new(MockContactRepository)
		service := NewContactService(repo)

		existing, _ := directory.NewContact(companyID, "Prior", "Person")
		repo.On("FindByEmail", mock.Anything, companyID, "jane@example.com").Return(existing, nil)

		_, err := service.Create(context.Background(), scope, CreateContactRequest{
			FirstName: "Jane",
			LastName:  "Doe",
			Email:     "jane@example.com",
		})
		require.Error(t, err)
		domainErr, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
	})

	t.Run("rejects all-companies scope", func(t *testing.T) {
		repo := new(MockContactRepository)
		service := NewContactService(repo)

		_, err := service.Create(context.Background(), shared.ScopeAll(), CreateContactRequest{
			FirstName: "Jane",
			LastName:  "Doe",
		})
		assert.Error(t, err)
	})
}

func TestContactService_Update(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)
	repo := new(MockContactRepository)
	service := NewContactService(repo)

	contact, _ := directory.NewContact(companyID, "Jane", "Doe")
	repo.On("FindByID", mock.Anything, scope, contact.ID).Return(contact, nil)
	repo.On("SaveWithLock", mock.Anything, contact).Return(nil)

	newPosition := "CEO"
	resp, err := service.Update(context.Background(), scope, contact.ID, UpdateContactRequest{
		Position: &newPosition,
	})
	require.NoError(t, err)
	assert.Equal(t, "CEO", resp.Position)
	assert.Equal(t, "Jane", resp.FirstName) // untouched fields survive
	repo.AssertExpectations(t)
}

func TestContactService_GetByID_NotFound(t *testing.T) {
	scope := shared.ScopeCompany(uuid.New())
	repo := new(MockContactRepository)
	service := NewContactService(repo)

	id := uuid.New()
	repo.On("FindByID", mock.Anything, scope, id).Return(nil, shared.ErrNotFound)

	_, err := service.GetByID(context.Background(), scope, id)
	assert.True(t, shared.IsNotFound(err))
}

func TestContactService_List(t *testing.T) {
	scope := shared.ScopeAll()
	repo := new(MockContactRepository)
	service := NewContactService(repo)

	contact, _ := directory.NewContact(uuid.New(), "Jane", "Doe")
	repo.On("FindAll", mock.Anything, scope, mock.AnythingOfType("shared.Filter")).Return([]directory.Contact{*contact}, nil)
	repo.On("Count", mock.Anything, scope, mock.AnythingOfType("shared.Filter")).Return(int64(1), nil)

	responses, total, err := service.List(context.Background(), scope, ListFilter{Page: 1, PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, responses, 1)
}
