package directory

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/directory"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// CompanyService handles company management operations
type CompanyService struct {
	companyRepo directory.CompanyRepository
	eventBus    shared.EventPublisher
}

// NewCompanyService creates a new CompanyService
func NewCompanyService(companyRepo directory.CompanyRepository, eventBus shared.EventPublisher) *CompanyService {
	return &CompanyService{
		companyRepo: companyRepo,
		eventBus:    eventBus,
	}
}

// Create creates a new company
func (s *CompanyService) Create(ctx context.Context, req CreateCompanyRequest) (*CompanyResponse, error) {
	if req.VATNumber != "" {
		existing, err := s.companyRepo.FindByVATNumber(ctx, req.VATNumber)
		if err != nil && !shared.IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Company with this VAT number already exists")
		}
	}

	company, err := directory.NewCompany(req.Name)
	if err != nil {
		return nil, err
	}

	if req.LegalName != "" {
		if err := company.Update(req.Name, req.LegalName); err != nil {
			return nil, err
		}
	}
	if req.RegistrationNumber != "" || req.VATNumber != "" {
		if err := company.SetRegistration(req.RegistrationNumber, req.VATNumber); err != nil {
			return nil, err
		}
	}
	if req.Email != "" || req.Phone != "" || req.Website != "" {
		if err := company.SetContactInfo(req.Email, req.Phone, req.Website); err != nil {
			return nil, err
		}
	}
	if req.DefaultCurrency != "" {
		if err := company.SetDefaultCurrency(valueobject.Currency(req.DefaultCurrency)); err != nil {
			return nil, err
		}
	}
	if req.BillingAddress != nil {
		company.SetBillingAddress(*req.BillingAddress)
	}
	if req.Notes != "" {
		company.SetNotes(req.Notes)
	}

	if err := s.companyRepo.Save(ctx, company); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, company)

	response := ToCompanyResponse(company)
	return &response, nil
}

// GetByID retrieves a company by ID
func (s *CompanyService) GetByID(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToCompanyResponse(company)
	return &response, nil
}

// List retrieves companies with filtering and pagination
func (s *CompanyService) List(ctx context.Context, filter ListFilter) ([]CompanyResponse, int64, error) {
	domainFilter := buildFilter(filter)

	companies, err := s.companyRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.companyRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToCompanyResponses(companies), total, nil
}

// Update updates a company
func (s *CompanyService) Update(ctx context.Context, id uuid.UUID, req UpdateCompanyRequest) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil || req.LegalName != nil {
		name := company.Name
		legalName := company.LegalName
		if req.Name != nil {
			name = *req.Name
		}
		if req.LegalName != nil {
			legalName = *req.LegalName
		}
		if err := company.Update(name, legalName); err != nil {
			return nil, err
		}
	}

	if req.RegistrationNumber != nil || req.VATNumber != nil {
		registration := company.RegistrationNumber
		vat := company.VATNumber
		if req.RegistrationNumber != nil {
			registration = *req.RegistrationNumber
		}
		if req.VATNumber != nil {
			vat = *req.VATNumber
		}
		if err := company.SetRegistration(registration, vat); err != nil {
			return nil, err
		}
	}

	if req.Email != nil || req.Phone != nil || req.Website != nil {
		email := company.Email
		phone := company.Phone
		website := company.Website
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Website != nil {
			website = *req.Website
		}
		if err := company.SetContactInfo(email, phone, website); err != nil {
			return nil, err
		}
	}

	if req.DefaultCurrency != nil {
		if err := company.SetDefaultCurrency(valueobject.Currency(*req.DefaultCurrency)); err != nil {
			return nil, err
		}
	}
	if req.BillingAddress != nil {
		company.SetBillingAddress(*req.BillingAddress)
	}
	if req.Notes != nil {
		company.SetNotes(*req.Notes)
	}

	if err := s.companyRepo.SaveWithLock(ctx, company); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, company)

	response := ToCompanyResponse(company)
	return &response, nil
}

// Archive archives a company
func (s *CompanyService) Archive(ctx context.Context, id uuid.UUID) (*CompanyResponse, error) {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := company.Archive(); err != nil {
		return nil, err
	}
	if err := s.companyRepo.SaveWithLock(ctx, company); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, company)

	response := ToCompanyResponse(company)
	return &response, nil
}

// Delete deletes a company. Archived companies only; active companies
// must be archived first.
func (s *CompanyService) Delete(ctx context.Context, id uuid.UUID) error {
	company, err := s.companyRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if company.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Archive the company before deleting it")
	}

	return s.companyRepo.Delete(ctx, id)
}

func (s *CompanyService) publishEvents(ctx context.Context, company *directory.Company) {
	if s.eventBus == nil {
		return
	}
	for _, event := range company.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	company.ClearDomainEvents()
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
	return domainFilter
}
