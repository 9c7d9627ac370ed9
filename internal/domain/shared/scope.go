package shared

import "github.com/google/uuid"

// Scope describes which company's records a request may touch.
// Self-service members are always pinned to their active company; admins may
// target a single company or all of them.
type Scope struct {
	// All grants visibility across every company. Only admins can hold it.
	All bool
	// CompanyID is the single company the request is pinned to when All is false.
	CompanyID uuid.UUID
}

// ScopeAll returns a scope spanning all companies
func ScopeAll() Scope {
	return Scope{All: true}
}

// ScopeCompany returns a scope pinned to a single company
func ScopeCompany(companyID uuid.UUID) Scope {
	return Scope{CompanyID: companyID}
}

// IsZero reports whether the scope has not been resolved
func (s Scope) IsZero() bool {
	return !s.All && s.CompanyID == uuid.Nil
}

// Covers reports whether a record owned by companyID is visible in this scope
func (s Scope) Covers(companyID uuid.UUID) bool {
	if s.All {
		return true
	}
	return s.CompanyID == companyID
}
