package identity

import (
	"time"

	"github.com/google/uuid"

	"github.com/crmsuite/backend/internal/domain/identity"
	"github.com/crmsuite/backend/internal/infrastructure/auth"
)

// LoginRequest carries login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued token pair and the user profile
type LoginResponse struct {
	Tokens *auth.TokenPair `json:"tokens"`
	User   *UserResponse   `json:"user"`
}

// RefreshRequest carries a refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest carries a password change
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// CreateUserRequest carries data for creating a user
type CreateUserRequest struct {
	Email           string     `json:"email" binding:"required,email"`
	DisplayName     string     `json:"display_name" binding:"required,max=100"`
	Password        string     `json:"password" binding:"required,min=8"`
	Role            string     `json:"role" binding:"omitempty,oneof=admin member"`
	ActiveCompanyID *uuid.UUID `json:"active_company_id"`
}

// UpdateUserRequest carries data for updating a user
type UpdateUserRequest struct {
	DisplayName     *string    `json:"display_name" binding:"omitempty,max=100"`
	Role            *string    `json:"role" binding:"omitempty,oneof=admin member"`
	ActiveCompanyID *uuid.UUID `json:"active_company_id"`
}

// UserResponse is the API representation of a user
type UserResponse struct {
	ID              uuid.UUID  `json:"id"`
	Email           string     `json:"email"`
	DisplayName     string     `json:"display_name"`
	Role            string     `json:"role"`
	ActiveCompanyID *uuid.UUID `json:"active_company_id,omitempty"`
	Status          string     `json:"status"`
	LastLoginAt     *time.Time `json:"last_login_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(user *identity.User) *UserResponse {
	return &UserResponse{
		ID:              user.ID,
		Email:           user.Email,
		DisplayName:     user.DisplayName,
		Role:            string(user.Role),
		ActiveCompanyID: user.ActiveCompanyID,
		Status:          string(user.Status),
		LastLoginAt:     user.LastLoginAt,
		CreatedAt:       user.CreatedAt,
		UpdatedAt:       user.UpdatedAt,
	}
}

// ToUserResponses converts a slice of users
func ToUserResponses(users []identity.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = *ToUserResponse(&users[i])
	}
	return responses
}

// ListFilter holds list query parameters for users
type ListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
}
