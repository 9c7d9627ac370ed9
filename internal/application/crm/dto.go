package crm

import (
	"time"

	"github.com/crmsuite/backend/internal/domain/crm"
	"github.com/crmsuite/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateLeadRequest represents a request to create a lead
type CreateLeadRequest struct {
	Title          string                 `json:"title" binding:"required,max=200"`
	Source         string                 `json:"source" binding:"omitempty,oneof=web referral outbound import scrape"`
	EstimatedValue decimal.Decimal        `json:"estimated_value"`
	ContactName    string                 `json:"contact_name" binding:"omitempty,max=200"`
	ContactEmail   string                 `json:"contact_email" binding:"omitempty,email"`
	ContactPhone   string                 `json:"contact_phone" binding:"omitempty,max=50"`
	Notes          *valueobject.EditorDoc `json:"notes"`
}

// UpdateLeadRequest represents a request to update a lead
type UpdateLeadRequest struct {
	Title          *string                `json:"title" binding:"omitempty,max=200"`
	EstimatedValue *decimal.Decimal       `json:"estimated_value"`
	ContactName    *string                `json:"contact_name" binding:"omitempty,max=200"`
	ContactEmail   *string                `json:"contact_email"`
	ContactPhone   *string                `json:"contact_phone" binding:"omitempty,max=50"`
	Notes          *valueobject.EditorDoc `json:"notes"`
}

// ChangeLeadStatusRequest represents a request to move a lead through its pipeline
type ChangeLeadStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new contacted qualified disqualified"`
}

// LeadResponse represents a lead in API responses
type LeadResponse struct {
	ID             uuid.UUID             `json:"id"`
	CompanyID      uuid.UUID             `json:"company_id"`
	Title          string                `json:"title"`
	Source         string                `json:"source"`
	Status         string                `json:"status"`
	EstimatedValue decimal.Decimal       `json:"estimated_value"`
	ContactName    string                `json:"contact_name,omitempty"`
	ContactEmail   string                `json:"contact_email,omitempty"`
	ContactPhone   string                `json:"contact_phone,omitempty"`
	Notes          valueobject.EditorDoc `json:"notes"`
	ConvertedDeal  *uuid.UUID            `json:"converted_deal,omitempty"`
	Version        int                   `json:"version"`
	CreatedAt      time.Time             `json:"created_at"`
	UpdatedAt      time.Time             `json:"updated_at"`
}

// ToLeadResponse converts a lead aggregate to a response DTO
func ToLeadResponse(lead *crm.Lead) LeadResponse {
	return LeadResponse{
		ID:             lead.ID,
		CompanyID:      lead.CompanyID,
		Title:          lead.Title,
		Source:         string(lead.Source),
		Status:         string(lead.Status),
		EstimatedValue: lead.EstimatedValue,
		ContactName:    lead.ContactName,
		ContactEmail:   lead.ContactEmail,
		ContactPhone:   lead.ContactPhone,
		Notes:          lead.Notes,
		ConvertedDeal:  lead.ConvertedDeal,
		Version:        lead.Version,
		CreatedAt:      lead.CreatedAt,
		UpdatedAt:      lead.UpdatedAt,
	}
}

// ToLeadResponses converts a slice of leads to response DTOs
func ToLeadResponses(leads []crm.Lead) []LeadResponse {
	responses := make([]LeadResponse, len(leads))
	for i := range leads {
		responses[i] = ToLeadResponse(&leads[i])
	}
	return responses
}

// ConvertLeadResponse carries both sides of a lead conversion
type ConvertLeadResponse struct {
	Lead LeadResponse `json:"lead"`
	Deal DealResponse `json:"deal"`
}

// CreateDealRequest represents a request to create a deal directly
type CreateDealRequest struct {
	Title             string          `json:"title" binding:"required,max=200"`
	Value             decimal.Decimal `json:"value"`
	Probability       *int            `json:"probability" binding:"omitempty,min=0,max=100"`
	ExpectedCloseDate *time.Time      `json:"expected_close_date"`
	ContactID         *uuid.UUID      `json:"contact_id"`
}

// UpdateDealRequest represents a request to update a deal
type UpdateDealRequest struct {
	Title             *string          `json:"title" binding:"omitempty,max=200"`
	Value             *decimal.Decimal `json:"value"`
	Probability       *int             `json:"probability" binding:"omitempty,min=0,max=100"`
	ExpectedCloseDate *time.Time       `json:"expected_close_date"`
	ContactID         *uuid.UUID       `json:"contact_id"`
}

// ChangeDealStageRequest represents a request to move a deal to another stage
type ChangeDealStageRequest struct {
	Stage string `json:"stage" binding:"required,oneof=prospecting proposal negotiation won lost"`
}

// DealResponse represents a deal in API responses
type DealResponse struct {
	ID                uuid.UUID       `json:"id"`
	CompanyID         uuid.UUID       `json:"company_id"`
	Title             string          `json:"title"`
	Stage             string          `json:"stage"`
	Value             decimal.Decimal `json:"value"`
	Currency          string          `json:"currency"`
	Probability       int             `json:"probability"`
	WeightedValue     decimal.Decimal `json:"weighted_value"`
	ExpectedCloseDate *time.Time      `json:"expected_close_date,omitempty"`
	ContactID         *uuid.UUID      `json:"contact_id,omitempty"`
	ClosedAt          *time.Time      `json:"closed_at,omitempty"`
	Version           int             `json:"version"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ToDealResponse converts a deal aggregate to a response DTO
func ToDealResponse(deal *crm.Deal) DealResponse {
	return DealResponse{
		ID:                deal.ID,
		CompanyID:         deal.CompanyID,
		Title:             deal.Title,
		Stage:             string(deal.Stage),
		Value:             deal.Value,
		Currency:          deal.Currency,
		Probability:       deal.Probability,
		WeightedValue:     deal.WeightedValue(),
		ExpectedCloseDate: deal.ExpectedCloseDate,
		ContactID:         deal.ContactID,
		ClosedAt:          deal.ClosedAt,
		Version:           deal.Version,
		CreatedAt:         deal.CreatedAt,
		UpdatedAt:         deal.UpdatedAt,
	}
}

// ToDealResponses converts a slice of deals to response DTOs
func ToDealResponses(deals []crm.Deal) []DealResponse {
	responses := make([]DealResponse, len(deals))
	for i := range deals {
		responses[i] = ToDealResponse(&deals[i])
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
	Stage    string `form:"stage"`
}
