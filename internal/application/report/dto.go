package report

import (
	"github.com/shopspring/decimal"

	"github.com/crmsuite/backend/internal/domain/crm"
	"github.com/crmsuite/backend/internal/domain/sales"
)

// SalesSummaryRequest bounds the reporting window (inclusive months)
type SalesSummaryRequest struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01"`
}

// SalesSummaryResponse aggregates invoiced revenue per month
type SalesSummaryResponse struct {
	Rows          []sales.SalesSummaryRow `json:"rows"`
	TotalInvoiced decimal.Decimal         `json:"total_invoiced"`
	TotalPaid     decimal.Decimal         `json:"total_paid"`
}

// PipelineResponse summarizes the deal pipeline per stage
type PipelineResponse struct {
	Stages            []crm.PipelineStageSummary `json:"stages"`
	OpenWeightedValue decimal.Decimal            `json:"open_weighted_value"`
	LeadCounts        map[string]int64           `json:"lead_counts"`
}

// ReceivablesResponse buckets outstanding invoice balances by age
type ReceivablesResponse struct {
	Buckets          []sales.ReceivableBucket `json:"buckets"`
	TotalOutstanding decimal.Decimal          `json:"total_outstanding"`
}
