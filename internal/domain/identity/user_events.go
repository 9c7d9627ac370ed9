package identity

import (
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const AggregateTypeUser = "User"

const (
	EventTypeUserCreated  = "UserCreated"
	EventTypeUserDisabled = "UserDisabled"
)

func userCompanyID(user *User) uuid.UUID {
	if user.ActiveCompanyID != nil {
		return *user.ActiveCompanyID
	}
	return uuid.Nil
}

// UserCreatedEvent is published when a new user is created
type UserCreatedEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   UserRole  `json:"role"`
}

// NewUserCreatedEvent creates a new UserCreatedEvent
func NewUserCreatedEvent(user *User) *UserCreatedEvent {
	return &UserCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserCreated, AggregateTypeUser, user.ID, userCompanyID(user)),
		UserID:          user.ID,
		Email:           user.Email,
		Role:            user.Role,
	}
}

// UserDisabledEvent is published when a user account is disabled
type UserDisabledEvent struct {
	shared.BaseDomainEvent
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
}

// NewUserDisabledEvent creates a new UserDisabledEvent
func NewUserDisabledEvent(user *User) *UserDisabledEvent {
	return &UserDisabledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeUserDisabled, AggregateTypeUser, user.ID, userCompanyID(user)),
		UserID:          user.ID,
		Email:           user.Email,
	}
}
