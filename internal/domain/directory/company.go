package directory

import (
	"regexp"
	"strings"
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
)

// CompanyStatus represents the status of a company
type CompanyStatus string

const (
	CompanyStatusActive   CompanyStatus = "active"
	CompanyStatusArchived CompanyStatus = "archived"
)

// Company is the tenancy boundary of the system. Every scoped aggregate
// carries a company ID; users belong to exactly one active company.
type Company struct {
	shared.BaseAggregateRoot
	Name               string                 `gorm:"type:varchar(200);not null;index"`
	LegalName          string                 `gorm:"type:varchar(200)"`
	RegistrationNumber string                 `gorm:"type:varchar(50)"`
	VATNumber          string                 `gorm:"type:varchar(50);index"`
	BillingAddress     valueobject.EditorDoc  `gorm:"type:jsonb"`
	Email              string                 `gorm:"type:varchar(200);index"`
	Phone              string                 `gorm:"type:varchar(50)"`
	Website            string                 `gorm:"type:varchar(200)"`
	DefaultCurrency    valueobject.Currency   `gorm:"type:varchar(3);not null;default:'EUR'"`
	Status             CompanyStatus          `gorm:"type:varchar(20);not null;default:'active'"`
	Notes              string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Company) TableName() string {
	return "companies"
}

// NewCompany creates a new active company
func NewCompany(name string) (*Company, error) {
	if err := validateCompanyName(name); err != nil {
		return nil, err
	}

	company := &Company{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		BillingAddress:    valueobject.NewEditorDoc(),
		DefaultCurrency:   valueobject.DefaultCurrency,
		Status:            CompanyStatusActive,
	}

	company.AddDomainEvent(NewCompanyCreatedEvent(company))

	return company, nil
}

// Update updates the company's basic information
func (c *Company) Update(name, legalName string) error {
	if err := validateCompanyName(name); err != nil {
		return err
	}
	if legalName != "" && len(legalName) > 200 {
		return shared.NewDomainError("INVALID_LEGAL_NAME", "Legal name cannot exceed 200 characters")
	}

	c.Name = name
	c.LegalName = legalName
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCompanyUpdatedEvent(c))

	return nil
}

// SetRegistration sets the company's registration and VAT numbers
func (c *Company) SetRegistration(registrationNumber, vatNumber string) error {
	if registrationNumber != "" && len(registrationNumber) > 50 {
		return shared.NewDomainError("INVALID_REGISTRATION_NUMBER", "Registration number cannot exceed 50 characters")
	}
	if vatNumber != "" && len(vatNumber) > 50 {
		return shared.NewDomainError("INVALID_VAT_NUMBER", "VAT number cannot exceed 50 characters")
	}

	c.RegistrationNumber = strings.ToUpper(strings.TrimSpace(registrationNumber))
	c.VATNumber = strings.ToUpper(strings.TrimSpace(vatNumber))
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetContactInfo sets the company's contact information
func (c *Company) SetContactInfo(email, phone, website string) error {
	if email != "" {
		if err := validateEmail(email); err != nil {
			return err
		}
		email = strings.ToLower(strings.TrimSpace(email))
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}
	if website != "" && len(website) > 200 {
		return shared.NewDomainError("INVALID_WEBSITE", "Website cannot exceed 200 characters")
	}

	c.Email = email
	c.Phone = phone
	c.Website = website
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetBillingAddress sets the company's billing address document
func (c *Company) SetBillingAddress(address valueobject.EditorDoc) {
	c.BillingAddress = address
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// SetDefaultCurrency sets the company's default currency
func (c *Company) SetDefaultCurrency(currency valueobject.Currency) error {
	if !currency.Validate() {
		return shared.NewDomainError("INVALID_CURRENCY", "Currency must be a 3-letter ISO code")
	}

	c.DefaultCurrency = currency.Normalize()
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// SetNotes sets the company's notes
func (c *Company) SetNotes(notes string) {
	c.Notes = notes
	c.UpdatedAt = time.Now()
	c.IncrementVersion()
}

// Archive archives the company; archived companies reject new documents
func (c *Company) Archive() error {
	if c.Status == CompanyStatusArchived {
		return shared.NewDomainError("ALREADY_ARCHIVED", "Company is already archived")
	}

	c.Status = CompanyStatusArchived
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	c.AddDomainEvent(NewCompanyArchivedEvent(c))

	return nil
}

// Restore restores an archived company to active
func (c *Company) Restore() error {
	if c.Status == CompanyStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Company is already active")
	}

	c.Status = CompanyStatusActive
	c.UpdatedAt = time.Now()
	c.IncrementVersion()

	return nil
}

// IsActive returns true if the company is active
func (c *Company) IsActive() bool {
	return c.Status == CompanyStatusActive
}

// IsArchived returns true if the company is archived
func (c *Company) IsArchived() bool {
	return c.Status == CompanyStatusArchived
}

// Validation functions

func validateCompanyName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Company name cannot exceed 200 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone number cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}
