package directory

import (
	"context"

	"github.com/crmsuite/backend/internal/domain/directory"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ContactService handles contact management operations
type ContactService struct {
	contactRepo directory.ContactRepository
}

// NewContactService creates a new ContactService
func NewContactService(contactRepo directory.ContactRepository) *ContactService {
	return &ContactService{
		contactRepo: contactRepo,
	}
}

// Create creates a new contact in the scope's company
func (s *ContactService) Create(ctx context.Context, scope shared.Scope, req CreateContactRequest) (*ContactResponse, error) {
	if scope.All {
		return nil, shared.NewDomainError("INVALID_SCOPE", "Creating a contact requires a company scope")
	}

	if req.Email != "" {
		existing, err := s.contactRepo.FindByEmail(ctx, scope.CompanyID, req.Email)
		if err != nil && !shared.IsNotFound(err) {
			return nil, err
		}
		if existing != nil {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Contact with this email already exists")
		}
	}

	contact, err := directory.NewContact(scope.CompanyID, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	if req.Position != "" {
		if err := contact.Update(req.FirstName, req.LastName, req.Position); err != nil {
			return nil, err
		}
	}
	if req.Email != "" || req.Phone != "" {
		if err := contact.SetContactInfo(req.Email, req.Phone); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		contact.SetNotes(*req.Notes)
	}
	if req.LeadID != nil {
		contact.LinkLead(*req.LeadID)
	}
	if req.DealID != nil {
		contact.LinkDeal(*req.DealID)
	}

	if err := s.contactRepo.Save(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// GetByID retrieves a contact by ID within the scope
func (s *ContactService) GetByID(ctx context.Context, scope shared.Scope, id uuid.UUID) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// List retrieves contacts with filtering and pagination
func (s *ContactService) List(ctx context.Context, scope shared.Scope, filter ListFilter) ([]ContactResponse, int64, error) {
	domainFilter := buildFilter(filter)

	contacts, err := s.contactRepo.FindAll(ctx, scope, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.contactRepo.Count(ctx, scope, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToContactResponses(contacts), total, nil
}

// Update updates a contact
func (s *ContactService) Update(ctx context.Context, scope shared.Scope, id uuid.UUID, req UpdateContactRequest) (*ContactResponse, error) {
	contact, err := s.contactRepo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil || req.LastName != nil || req.Position != nil {
		firstName := contact.FirstName
		lastName := contact.LastName
		position := contact.Position
		if req.FirstName != nil {
			firstName = *req.FirstName
		}
		if req.LastName != nil {
			lastName = *req.LastName
		}
		if req.Position != nil {
			position = *req.Position
		}
		if err := contact.Update(firstName, lastName, position); err != nil {
			return nil, err
		}
	}

	if req.Email != nil || req.Phone != nil {
		email := contact.Email
		phone := contact.Phone
		if req.Email != nil {
			email = *req.Email
		}
		if req.Phone != nil {
			phone = *req.Phone
		}
		if err := contact.SetContactInfo(email, phone); err != nil {
			return nil, err
		}
	}

	if req.Notes != nil {
		contact.SetNotes(*req.Notes)
	}
	if req.LeadID != nil {
		contact.LinkLead(*req.LeadID)
	}
	if req.DealID != nil {
		contact.LinkDeal(*req.DealID)
	}

	if err := s.contactRepo.SaveWithLock(ctx, contact); err != nil {
		return nil, err
	}

	response := ToContactResponse(contact)
	return &response, nil
}

// Delete deletes a contact within the scope
func (s *ContactService) Delete(ctx context.Context, scope shared.Scope, id uuid.UUID) error {
	return s.contactRepo.Delete(ctx, scope, id)
}
