package directory

import (
	"time"

	"github.com/crmsuite/backend/internal/domain/directory"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// =============================================================================
// Company DTOs
// =============================================================================

// CreateCompanyRequest represents a request to create a new company
type CreateCompanyRequest struct {
	Name               string                 `json:"name" binding:"required,min=1,max=200"`
	LegalName          string                 `json:"legal_name" binding:"max=200"`
	RegistrationNumber string                 `json:"registration_number" binding:"max=50"`
	VATNumber          string                 `json:"vat_number" binding:"max=50"`
	Email              string                 `json:"email" binding:"omitempty,email,max=200"`
	Phone              string                 `json:"phone" binding:"max=50"`
	Website            string                 `json:"website" binding:"max=200"`
	DefaultCurrency    string                 `json:"default_currency" binding:"omitempty,len=3"`
	BillingAddress     *valueobject.EditorDoc `json:"billing_address"`
	Notes              string                 `json:"notes"`
}

// UpdateCompanyRequest represents a request to update a company
type UpdateCompanyRequest struct {
	Name               *string                `json:"name" binding:"omitempty,min=1,max=200"`
	LegalName          *string                `json:"legal_name" binding:"omitempty,max=200"`
	RegistrationNumber *string                `json:"registration_number" binding:"omitempty,max=50"`
	VATNumber          *string                `json:"vat_number" binding:"omitempty,max=50"`
	Email              *string                `json:"email" binding:"omitempty,email,max=200"`
	Phone              *string                `json:"phone" binding:"omitempty,max=50"`
	Website            *string                `json:"website" binding:"omitempty,max=200"`
	DefaultCurrency    *string                `json:"default_currency" binding:"omitempty,len=3"`
	BillingAddress     *valueobject.EditorDoc `json:"billing_address"`
	Notes              *string                `json:"notes"`
}

// CompanyResponse represents a company in API responses
type CompanyResponse struct {
	ID                 uuid.UUID             `json:"id"`
	Name               string                `json:"name"`
	LegalName          string                `json:"legal_name"`
	RegistrationNumber string                `json:"registration_number"`
	VATNumber          string                `json:"vat_number"`
	Email              string                `json:"email"`
	Phone              string                `json:"phone"`
	Website            string                `json:"website"`
	DefaultCurrency    string                `json:"default_currency"`
	Status             string                `json:"status"`
	BillingAddress     valueobject.EditorDoc `json:"billing_address"`
	Notes              string                `json:"notes"`
	CreatedAt          time.Time             `json:"created_at"`
	UpdatedAt          time.Time             `json:"updated_at"`
	Version            int                   `json:"version"`
}

// ToCompanyResponse converts a domain company to a response DTO
func ToCompanyResponse(company *directory.Company) CompanyResponse {
	return CompanyResponse{
		ID:                 company.ID,
		Name:               company.Name,
		LegalName:          company.LegalName,
		RegistrationNumber: company.RegistrationNumber,
		VATNumber:          company.VATNumber,
		Email:              company.Email,
		Phone:              company.Phone,
		Website:            company.Website,
		DefaultCurrency:    string(company.DefaultCurrency),
		Status:             string(company.Status),
		BillingAddress:     company.BillingAddress,
		Notes:              company.Notes,
		CreatedAt:          company.CreatedAt,
		UpdatedAt:          company.UpdatedAt,
		Version:            company.Version,
	}
}

// ToCompanyResponses converts a slice of companies to response DTOs
func ToCompanyResponses(companies []directory.Company) []CompanyResponse {
	responses := make([]CompanyResponse, len(companies))
	for i := range companies {
		responses[i] = ToCompanyResponse(&companies[i])
	}
	return responses
}

// =============================================================================
// Contact DTOs
// =============================================================================

// CreateContactRequest represents a request to create a new contact
type CreateContactRequest struct {
	FirstName string                 `json:"first_name" binding:"required,min=1,max=100"`
	LastName  string                 `json:"last_name" binding:"required,min=1,max=100"`
	Email     string                 `json:"email" binding:"omitempty,email,max=200"`
	Phone     string                 `json:"phone" binding:"max=50"`
	Position  string                 `json:"position" binding:"max=100"`
	Notes     *valueobject.EditorDoc `json:"notes"`
	LeadID    *uuid.UUID             `json:"lead_id"`
	DealID    *uuid.UUID             `json:"deal_id"`
}

// UpdateContactRequest represents a request to update a contact
type UpdateContactRequest struct {
	FirstName *string                `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName  *string                `json:"last_name" binding:"omitempty,min=1,max=100"`
	Email     *string                `json:"email" binding:"omitempty,email,max=200"`
	Phone     *string                `json:"phone" binding:"omitempty,max=50"`
	Position  *string                `json:"position" binding:"omitempty,max=100"`
	Notes     *valueobject.EditorDoc `json:"notes"`
	LeadID    *uuid.UUID             `json:"lead_id"`
	DealID    *uuid.UUID             `json:"deal_id"`
}

// ContactResponse represents a contact in API responses
type ContactResponse struct {
	ID        uuid.UUID             `json:"id"`
	CompanyID uuid.UUID             `json:"company_id"`
	FirstName string                `json:"first_name"`
	LastName  string                `json:"last_name"`
	FullName  string                `json:"full_name"`
	Email     string                `json:"email"`
	Phone     string                `json:"phone"`
	Position  string                `json:"position"`
	Notes     valueobject.EditorDoc `json:"notes"`
	LeadID    *uuid.UUID            `json:"lead_id,omitempty"`
	DealID    *uuid.UUID            `json:"deal_id,omitempty"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	Version   int                   `json:"version"`
}

// ToContactResponse converts a domain contact to a response DTO
func ToContactResponse(contact *directory.Contact) ContactResponse {
	return ContactResponse{
		ID:        contact.ID,
		CompanyID: contact.CompanyID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		FullName:  contact.FullName(),
		Email:     contact.Email,
		Phone:     contact.Phone,
		Position:  contact.Position,
		Notes:     contact.Notes,
		LeadID:    contact.LeadID,
		DealID:    contact.DealID,
		CreatedAt: contact.CreatedAt,
		UpdatedAt: contact.UpdatedAt,
		Version:   contact.Version,
	}
}

// ToContactResponses converts a slice of contacts to response DTOs
func ToContactResponses(contacts []directory.Contact) []ContactResponse {
	responses := make([]ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = ToContactResponse(&contacts[i])
	}
	return responses
}

// ListFilter carries common list parameters from the HTTP layer
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	Status   string `form:"status"`
}
