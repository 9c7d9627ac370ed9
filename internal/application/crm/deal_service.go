package crm

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/crm"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DealService handles pipeline management for deals
type DealService struct {
	dealRepo crm.DealRepository
	eventBus shared.EventPublisher
}

// NewDealService creates a new DealService
func NewDealService(dealRepo crm.DealRepository, eventBus shared.EventPublisher) *DealService {
	return &DealService{
		dealRepo: dealRepo,
		eventBus: eventBus,
	}
}

// Create creates a new deal in the scope's company
func (s *DealService) Create(ctx context.Context, scope shared.Scope, req CreateDealRequest) (*DealResponse, error) {
	if scope.All {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Creating a deal requires a company scope")
	}

	deal, err := crm.NewDeal(scope.CompanyID, req.Title, req.Value)
	if err != nil {
		return nil, err
	}

	if req.Probability != nil {
		if err := deal.Update(req.Title, req.Value, *req.Probability); err != nil {
			return nil, err
		}
	}
	if req.ExpectedCloseDate != nil {
		if err := deal.SetExpectedCloseDate(req.ExpectedCloseDate); err != nil {
			return nil, err
		}
	}
	if req.ContactID != nil {
		if err := deal.LinkContact(*req.ContactID); err != nil {
			return nil, err
		}
	}

	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, err
	}
	s.publishDealEvents(ctx, deal)

	response := ToDealResponse(deal)
	return &response, nil
}

// GetByID retrieves a deal by ID within the scope
func (s *DealService) GetByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	response := ToDealResponse(deal)
	return &response, nil
}

// List retrieves deals with filtering and pagination
func (s *DealService) List(ctx context.Context, scope shared.Scope, filter ListFilter) ([]DealResponse, int64, error) {
	domainFilter := buildFilter(filter)

	var deals []crm.Deal
	var err error
	if filter.Stage != "" {
		deals, err = s.dealRepo.FindByStage(ctx, scope, crm.DealStage(filter.Stage), domainFilter)
	} else {
		deals, err = s.dealRepo.FindAll(ctx, scope, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.dealRepo.Count(ctx, scope, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToDealResponses(deals), total, nil
}

// Update updates an open deal
func (s *DealService) Update(ctx context.Context, scope shared.Scope, id uuid.UUID, req UpdateDealRequest) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil || req.Value != nil || req.Probability != nil {
		title := deal.Title
		value := deal.Value
		probability := deal.Probability
		if req.Title != nil {
			title = *req.Title
		}
		if req.Value != nil {
			value = *req.Value
		}
		if req.Probability != nil {
			probability = *req.Probability
		}
		if err := deal.Update(title, value, probability); err != nil {
			return nil, err
		}
	}

	if req.ExpectedCloseDate != nil {
		if err := deal.SetExpectedCloseDate(req.ExpectedCloseDate); err != nil {
			return nil, err
		}
	}
	if req.ContactID != nil {
		if err := deal.LinkContact(*req.ContactID); err != nil {
			return nil, err
		}
	}

	if err := s.dealRepo.SaveWithLock(ctx, deal); err != nil {
		return nil, err
	}

	response := ToDealResponse(deal)
	return &response, nil
}

// ChangeStage moves a deal to another pipeline stage
func (s *DealService) ChangeStage(ctx context.Context, scope shared.Scope, id uuid.UUID, req ChangeDealStageRequest) (*DealResponse, error) {
	deal, err := s.dealRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := deal.ChangeStage(crm.DealStage(req.Stage)); err != nil {
		return nil, err
	}

	if err := s.dealRepo.SaveWithLock(ctx, deal); err != nil {
		return nil, err
	}
	s.publishDealEvents(ctx, deal)

	response := ToDealResponse(deal)
	return &response, nil
}

// Pipeline aggregates deal counts and values per stage for reporting
func (s *DealService) Pipeline(ctx context.Context, scope shared.Scope) ([]crm.PipelineStageSummary, decimal.Decimal, error) {
	summaries, err := s.dealRepo.PipelineSummary(ctx, scope)
	if err != nil {
		return nil, decimal.Zero, err
	}

	openWeighted := decimal.Zero
	for _, summary := range summaries {
		if !summary.Stage.IsClosed() {
			openWeighted = openWeighted.Add(summary.WeightedValue)
		}
	}

	return summaries, openWeighted, nil
}

// Delete deletes a deal within the scope
func (s *DealService) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	return s.dealRepo.Delete(ctx, scope, id)
}

func (s *DealService) publishDealEvents(ctx context.Context, deal *crm.Deal) {
	if s.eventBus == nil {
		return
	}
	for _, event := range deal.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	deal.ClearDomainEvents()
}
