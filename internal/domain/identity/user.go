package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRole represents the access role of a user
type UserRole string

const (
	// RoleAdmin can see and manage every company
	RoleAdmin UserRole = "admin"
	// RoleMember is confined to their active company
	RoleMember UserRole = "member"
)

// IsValid checks if the role is valid
func (r UserRole) IsValid() bool {
	return r == RoleAdmin || r == RoleMember
}

// UserStatus represents the status of a user account
type UserStatus string

const (
	UserStatusActive   UserStatus = "active"
	UserStatusDisabled UserStatus = "disabled"
)

// Password cost for bcrypt
const bcryptCost = 12

// User is a system account. Members always operate inside their active
// company; admins can cross company boundaries.
type User struct {
	shared.BaseAggregateRoot
	Email           string     `gorm:"type:varchar(200);not null;uniqueIndex"`
	DisplayName     string     `gorm:"type:varchar(100);not null"`
	PasswordHash    string     `gorm:"type:varchar(100);not null"`
	Role            UserRole   `gorm:"type:varchar(20);not null;default:'member'"`
	ActiveCompanyID *uuid.UUID `gorm:"type:uuid;index"`
	Status          UserStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	LastLoginAt     *time.Time
	FailedAttempts  int `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a new active member user
func NewUser(email, displayName, password string) (*User, error) {
	if err := validateUserEmail(email); err != nil {
		return nil, err
	}
	if err := validateDisplayName(displayName); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		DisplayName:       strings.TrimSpace(displayName),
		PasswordHash:      passwordHash,
		Role:              RoleMember,
		Status:            UserStatusActive,
	}

	user.AddDomainEvent(NewUserCreatedEvent(user))

	return user, nil
}

// NewAdminUser creates a new active admin user
func NewAdminUser(email, displayName, password string) (*User, error) {
	user, err := NewUser(email, displayName, password)
	if err != nil {
		return nil, err
	}
	user.Role = RoleAdmin
	return user, nil
}

// Update updates the user's display name
func (u *User) Update(displayName string) error {
	if err := validateDisplayName(displayName); err != nil {
		return err
	}

	u.DisplayName = strings.TrimSpace(displayName)
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetRole changes the user's role
func (u *User) SetRole(role UserRole) error {
	if !role.IsValid() {
		return shared.NewDomainError("INVALID_ROLE", "Role must be 'admin' or 'member'")
	}

	u.Role = role
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// SetActiveCompany assigns the user's active company
func (u *User) SetActiveCompany(companyID uuid.UUID) error {
	if companyID == uuid.Nil {
		return shared.NewDomainError("INVALID_COMPANY", "Company ID is required")
	}

	u.ActiveCompanyID = &companyID
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// ChangePassword verifies the current password and sets a new one
func (u *User) ChangePassword(currentPassword, newPassword string) error {
	if !u.VerifyPassword(currentPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return u.ResetPassword(newPassword)
}

// ResetPassword sets a new password without verifying the old one
func (u *User) ResetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (u *User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RecordLogin records a successful login
func (u *User) RecordLogin() {
	now := time.Now()
	u.LastLoginAt = &now
	u.FailedAttempts = 0
	u.UpdatedAt = now
}

// RecordFailedLogin counts a failed login attempt
func (u *User) RecordFailedLogin() {
	u.FailedAttempts++
	u.UpdatedAt = time.Now()
}

// Disable disables the user account
func (u *User) Disable() error {
	if u.Status == UserStatusDisabled {
		return shared.NewDomainError("ALREADY_DISABLED", "User is already disabled")
	}

	u.Status = UserStatusDisabled
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	u.AddDomainEvent(NewUserDisabledEvent(u))

	return nil
}

// Enable re-enables a disabled user account
func (u *User) Enable() error {
	if u.Status == UserStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "User is already active")
	}

	u.Status = UserStatusActive
	u.FailedAttempts = 0
	u.UpdatedAt = time.Now()
	u.IncrementVersion()

	return nil
}

// IsActive returns true if the user can log in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func validateUserEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateDisplayName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Display name cannot exceed 100 characters")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 { // bcrypt input limit
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}
