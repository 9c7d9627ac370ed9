package crm

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/crm"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// LeadService handles lead qualification and conversion
type LeadService struct {
	leadRepo crm.LeadRepository
	dealRepo crm.DealRepository
	eventBus shared.EventPublisher
}

// NewLeadService creates a new LeadService
func NewLeadService(leadRepo crm.LeadRepository, dealRepo crm.DealRepository, eventBus shared.EventPublisher) *LeadService {
	return &LeadService{
		leadRepo: leadRepo,
		dealRepo: dealRepo,
		eventBus: eventBus,
	}
}

// Create creates a new lead in the scope's company
func (s *LeadService) Create(ctx context.Context, scope shared.Scope, req CreateLeadRequest) (*LeadResponse, error) {
	if scope.All {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Creating a lead requires a company scope")
	}

	source := crm.LeadSource(req.Source)
	if req.Source == "" {
		source = crm.LeadSourceWeb
	}

	lead, err := crm.NewLead(scope.CompanyID, req.Title, source)
	if err != nil {
		return nil, err
	}

	if !req.EstimatedValue.IsZero() {
		if err := lead.Update(req.Title, req.EstimatedValue); err != nil {
			return nil, err
		}
	}
	if req.ContactName != "" || req.ContactEmail != "" || req.ContactPhone != "" {
		if err := lead.SetContactInfo(req.ContactName, req.ContactEmail, req.ContactPhone); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		lead.SetNotes(*req.Notes)
	}

	if err := s.leadRepo.Save(ctx, lead); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, lead)

	response := ToLeadResponse(lead)
	return &response, nil
}

// GetByID retrieves a lead by ID within the scope
func (s *LeadService) GetByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*LeadResponse, error) {
	lead, err := s.leadRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	response := ToLeadResponse(lead)
	return &response, nil
}

// List retrieves leads with filtering and pagination
func (s *LeadService) List(ctx context.Context, scope shared.Scope, filter ListFilter) ([]LeadResponse, int64, error) {
	domainFilter := buildFilter(filter)

	var leads []crm.Lead
	var err error
	if filter.Status != "" {
		leads, err = s.leadRepo.FindByStatus(ctx, scope, crm.LeadStatus(filter.Status), domainFilter)
	} else {
		leads, err = s.leadRepo.FindAll(ctx, scope, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.leadRepo.Count(ctx, scope, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToLeadResponses(leads), total, nil
}

// Update updates a lead
func (s *LeadService) Update(ctx context.Context, scope shared.Scope, id uuid.UUID, req UpdateLeadRequest) (*LeadResponse, error) {
	lead, err := s.leadRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil || req.EstimatedValue != nil {
		title := lead.Title
		value := lead.EstimatedValue
		if req.Title != nil {
			title = *req.Title
		}
		if req.EstimatedValue != nil {
			value = *req.EstimatedValue
		}
		if err := lead.Update(title, value); err != nil {
			return nil, err
		}
	}

	if req.ContactName != nil || req.ContactEmail != nil || req.ContactPhone != nil {
		name := lead.ContactName
		email := lead.ContactEmail
		phone := lead.ContactPhone
		if req.ContactName != nil {
			name = *req.ContactName
		}
		if req.ContactEmail != nil {
			email = *req.ContactEmail
		}
		if req.ContactPhone != nil {
			phone = *req.ContactPhone
		}
		if err := lead.SetContactInfo(name, email, phone); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		lead.SetNotes(*req.Notes)
	}

	if err := s.leadRepo.SaveWithLock(ctx, lead); err != nil {
		return nil, err
	}

	response := ToLeadResponse(lead)
	return &response, nil
}

// ChangeStatus moves a lead through its qualification pipeline
func (s *LeadService) ChangeStatus(ctx context.Context, scope shared.Scope, id uuid.UUID, req ChangeLeadStatusRequest) (*LeadResponse, error) {
	lead, err := s.leadRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if err := lead.ChangeStatus(crm.LeadStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := s.leadRepo.SaveWithLock(ctx, lead); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, lead)

	response := ToLeadResponse(lead)
	return &response, nil
}

// Convert converts a qualified lead into a deal. The lead and the new deal
// are saved together; conversion is rejected for anything but a qualified
// lead.
func (s *LeadService) Convert(ctx context.Context, scope shared.Scope, id uuid.UUID) (*ConvertLeadResponse, error) {
	lead, err := s.leadRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	deal, err := lead.Convert()
	if err != nil {
		return nil, err
	}

	if err := s.dealRepo.Save(ctx, deal); err != nil {
		return nil, err
	}
	if err := s.leadRepo.SaveWithLock(ctx, lead); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, lead)
	s.publishEvents(ctx, deal)

	return &ConvertLeadResponse{
		Lead: ToLeadResponse(lead),
		Deal: ToDealResponse(deal),
	}, nil
}

// Delete deletes a lead within the scope
func (s *LeadService) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	lead, err := s.leadRepo.FindByID(ctx, scope, id)
	if err != nil {
		return err
	}
	if lead.IsConverted() {
		return shared.NewDomainError("LEAD_CONVERTED", "Converted leads cannot be deleted")
	}

	return s.leadRepo.Delete(ctx, scope, id)
}

func (s *LeadService) publishEvents(ctx context.Context, aggregate interface {
	GetDomainEvents() []shared.DomainEvent
	ClearDomainEvents()
}) {
	if s.eventBus == nil {
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	aggregate.ClearDomainEvents()
}

func buildFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.Status != "" {
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.Stage != "" {
		domainFilter.Filters["stage"] = filter.Stage
	}
	return domainFilter
}
