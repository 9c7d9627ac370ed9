package crm

import (
	"context"
	"testing"

	"github.com/crmsuite/backend/internal/domain/crm"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockLeadRepository is a mock implementation of LeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*crm.Lead, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]crm.Lead, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) FindByStatus(ctx context.Context, scope shared.Scope, status crm.LeadStatus, filter shared.Filter) ([]crm.Lead, error) {
	args := m.Called(ctx, scope, status, filter)
	return args.Get(0).([]crm.Lead), args.Error(1)
}

func (m *MockLeadRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLeadRepository) CountByStatus(ctx context.Context, scope shared.Scope) (map[crm.LeadStatus]int64, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).(map[crm.LeadStatus]int64), args.Error(1)
}

func (m *MockLeadRepository) Save(ctx context.Context, lead *crm.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) SaveWithLock(ctx context.Context, lead *crm.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

// MockDealRepository is a mock implementation of DealRepository
type MockDealRepository struct {
	mock.Mock
}

func (m *MockDealRepository) FindByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*crm.Deal, error) {
	args := m.Called(ctx, scope, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*crm.Deal), args.Error(1)
}

func (m *MockDealRepository) FindAll(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]crm.Deal, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]crm.Deal), args.Error(1)
}

func (m *MockDealRepository) FindByStage(ctx context.Context, scope shared.Scope, stage crm.DealStage, filter shared.Filter) ([]crm.Deal, error) {
	args := m.Called(ctx, scope, stage, filter)
	return args.Get(0).([]crm.Deal), args.Error(1)
}

func (m *MockDealRepository) FindOpen(ctx context.Context, scope shared.Scope, filter shared.Filter) ([]crm.Deal, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).([]crm.Deal), args.Error(1)
}

func (m *MockDealRepository) Count(ctx context.Context, scope shared.Scope, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, scope, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDealRepository) PipelineSummary(ctx context.Context, scope shared.Scope) ([]crm.PipelineStageSummary, error) {
	args := m.Called(ctx, scope)
	return args.Get(0).([]crm.PipelineStageSummary), args.Error(1)
}

func (m *MockDealRepository) Save(ctx context.Context, deal *crm.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) SaveWithLock(ctx context.Context, deal *crm.Deal) error {
	args := m.Called(ctx, deal)
	return args.Error(0)
}

func (m *MockDealRepository) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	args := m.Called(ctx, scope, id)
	return args.Error(0)
}

func TestLeadService_Create(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)

	t.Run("creates lead with defaults", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		service := NewLeadService(leadRepo, new(MockDealRepository), nil)

		leadRepo.On("Save", mock.Anything, mock.AnythingOfType("*crm.Lead")).Return(nil)

		resp, err := service.Create(context.Background(), scope, CreateLeadRequest{
			Title: "Enterprise rollout",
		})
		require.NoError(t, err)

		assert.Equal(t, "web", resp.Source)
		assert.Equal(t, "new", resp.Status)
		assert.Equal(t, companyID, resp.CompanyID)
		leadRepo.AssertExpectations(t)
	})

	t.Run("rejects all-companies scope", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		service := NewLeadService(leadRepo, new(MockDealRepository), nil)

		_, err := service.Create(context.Background(), shared.ScopeAll(), CreateLeadRequest{Title: "x"})
		assert.Error(t, err)
		leadRepo.AssertNotCalled(t, "Save")
	})
}

func TestLeadService_ChangeStatus(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)

	t.Run("moves lead forward", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		service := NewLeadService(leadRepo, new(MockDealRepository), nil)

		lead, _ := crm.NewLead(companyID, "Enterprise rollout", crm.LeadSourceReferral)
		leadRepo.On("FindByID", mock.Anything, scope, lead.ID).Return(lead, nil)
		leadRepo.On("SaveWithLock", mock.Anything, lead).Return(nil)

		resp, err := service.ChangeStatus(context.Background(), scope, lead.ID, ChangeLeadStatusRequest{Status: "contacted"})
		require.NoError(t, err)
		assert.Equal(t, "contacted", resp.Status)
	})

	t.Run("rejects illegal transition", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		service := NewLeadService(leadRepo, new(MockDealRepository), nil)

		lead, _ := crm.NewLead(companyID, "Enterprise rollout", crm.LeadSourceReferral)
		require.NoError(t, lead.ChangeStatus(crm.LeadStatusDisqualified))
		leadRepo.On("FindByID", mock.Anything, scope, lead.ID).Return(lead, nil)

		_, err := service.ChangeStatus(context.Background(), scope, lead.ID, ChangeLeadStatusRequest{Status: "qualified"})
		require.Error(t, err)
		domainErr, ok := shared.AsDomainError(err)
		require.True(t, ok)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		leadRepo.AssertNotCalled(t, "SaveWithLock")
	})
}

func TestLeadService_Convert(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)

	t.Run("converts qualified lead", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		dealRepo := new(MockDealRepository)
		service := NewLeadService(leadRepo, dealRepo, nil)

		lead, _ := crm.NewLead(companyID, "Enterprise rollout", crm.LeadSourceReferral)
		require.NoError(t, lead.Update("Enterprise rollout", decimal.NewFromInt(50000)))
		require.NoError(t, lead.ChangeStatus(crm.LeadStatusQualified))

		leadRepo.On("FindByID", mock.Anything, scope, lead.ID).Return(lead, nil)
		dealRepo.On("Save", mock.Anything, mock.AnythingOfType("*crm.Deal")).Return(nil)
		leadRepo.On("SaveWithLock", mock.Anything, lead).Return(nil)

		resp, err := service.Convert(context.Background(), scope, lead.ID)
		require.NoError(t, err)

		assert.Equal(t, "converted", resp.Lead.Status)
		assert.Equal(t, "prospecting", resp.Deal.Stage)
		assert.True(t, resp.Deal.Value.Equal(decimal.NewFromInt(50000)))
		require.NotNil(t, resp.Lead.ConvertedDeal)
		assert.Equal(t, resp.Deal.ID, *resp.Lead.ConvertedDeal)
		leadRepo.AssertExpectations(t)
		dealRepo.AssertExpectations(t)
	})

	t.Run("rejects unqualified lead", func(t *testing.T) {
		leadRepo := new(MockLeadRepository)
		dealRepo := new(MockDealRepository)
		service := NewLeadService(leadRepo, dealRepo, nil)

		lead, _ := crm.NewLead(companyID, "Cold call", crm.LeadSourceOutbound)
		leadRepo.On("FindByID", mock.Anything, scope, lead.ID).Return(lead, nil)

		_, err := service.Convert(context.Background(), scope, lead.ID)
		assert.Error(t, err)
		dealRepo.AssertNotCalled(t, "Save")
	})
}

func TestLeadService_Delete_ConvertedLead(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)
	leadRepo := new(MockLeadRepository)
	service := NewLeadService(leadRepo, new(MockDealRepository), nil)

	lead, _ := crm.NewLead(companyID, "Enterprise rollout", crm.LeadSourceReferral)
	require.NoError(t, lead.ChangeStatus(crm.LeadStatusQualified))
	_, err := lead.Convert()
	require.NoError(t, err)

	leadRepo.On("FindByID", mock.Anything, scope, lead.ID).Return(lead, nil)

	err = service.Delete(context.Background(), scope, lead.ID)
	require.Error(t, err)
	leadRepo.AssertNotCalled(t, "Delete")
}

func TestDealService_ChangeStage(t *testing.T) {
	companyID := uuid.New()
	scope := shared.ScopeCompany(companyID)

	t.Run("winning a deal pins probability", func(t *testing.T) {
		dealRepo := new(MockDealRepository)
		service := NewDealService(dealRepo, nil)

		deal, _ := crm.NewDeal(companyID, "Enterprise rollout", decimal.NewFromInt(50000))
		dealRepo.On("FindByID", mock.Anything, scope, deal.ID).Return(deal, nil)
		dealRepo.On("SaveWithLock", mock.Anything, deal).Return(nil)

		resp, err := service.ChangeStage(context.Background(), scope, deal.ID, ChangeDealStageRequest{Stage: "won"})
		require.NoError(t, err)

		assert.Equal(t, "won", resp.Stage)
		assert.Equal(t, 100, resp.Probability)
		assert.NotNil(t, resp.ClosedAt)
	})

	t.Run("closed deal is terminal", func(t *testing.T) {
		dealRepo := new(MockDealRepository)
		service := NewDealService(dealRepo, nil)

		deal, _ := crm.NewDeal(companyID, "Enterprise rollout", decimal.NewFromInt(50000))
		require.NoError(t, deal.ChangeStage(crm.DealStageLost))
		dealRepo.On("FindByID", mock.Anything, scope, deal.ID).Return(deal, nil)

		_, err := service.ChangeStage(context.Background(), scope, deal.ID, ChangeDealStageRequest{Stage: "proposal"})
		assert.Error(t, err)
		dealRepo.AssertNotCalled(t, "SaveWithLock")
	})
}

func TestDealService_Pipeline(t *testing.T) {
	scope := shared.ScopeCompany(uuid.New())
	dealRepo := new(MockDealRepository)
	service := NewDealService(dealRepo, nil)

	summaries := []crm.PipelineStageSummary{
		{Stage: crm.DealStageProspecting, Count: 2, TotalValue: decimal.NewFromInt(1000), WeightedValue: decimal.NewFromInt(100)},
		{Stage: crm.DealStageNegotiation, Count: 1, TotalValue: decimal.NewFromInt(5000), WeightedValue: decimal.NewFromInt(3000)},
		{Stage: crm.DealStageWon, Count: 1, TotalValue: decimal.NewFromInt(8000), WeightedValue: decimal.NewFromInt(8000)},
	}
	dealRepo.On("PipelineSummary", mock.Anything, scope).Return(summaries, nil)

	result, openWeighted, err := service.Pipeline(context.Background(), scope)
	require.NoError(t, err)
	assert.Len(t, result, 3)
	// won stage is excluded from the open weighted total
	assert.True(t, openWeighted.Equal(decimal.NewFromInt(3100)))
}
