package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/crmsuite/backend/internal/domain/crm"
	"github.com/crmsuite/backend/internal/domain/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
)

// Service composes the reporting queries. All heavy lifting happens in
// the repositories; this layer only sets defaults and totals.
type Service struct {
	invoiceRepo sales.InvoiceRepository
	dealRepo    crm.DealRepository
	leadRepo    crm.LeadRepository
}

// NewService creates a new report service
func NewService(invoiceRepo sales.InvoiceRepository, dealRepo crm.DealRepository, leadRepo crm.LeadRepository) *Service {
	return &Service{invoiceRepo: invoiceRepo, dealRepo: dealRepo, leadRepo: leadRepo}
}

// SalesSummary aggregates invoiced and paid amounts per month. Without
// an explicit window it covers the trailing twelve months.
func (s *Service) SalesSummary(ctx context.Context, scope shared.Scope, req SalesSummaryRequest) (*SalesSummaryResponse, error) {
	from, to, err := resolveWindow(req)
	if err != nil {
		return nil, err
	}

	rows, err := s.invoiceRepo.SalesSummary(ctx, scope, from, to)
	if err != nil {
		return nil, err
	}

	resp := &SalesSummaryResponse{
		Rows:          rows,
		TotalInvoiced: decimal.Zero,
		TotalPaid:     decimal.Zero,
	}
	for _, row := range rows {
		resp.TotalInvoiced = resp.TotalInvoiced.Add(row.Invoiced)
		resp.TotalPaid = resp.TotalPaid.Add(row.Paid)
	}
	return resp, nil
}

// Pipeline summarizes deals per stage plus the lead funnel counts
func (s *Service) Pipeline(ctx context.Context, scope shared.Scope) (*PipelineResponse, error) {
	stages, err := s.dealRepo.PipelineSummary(ctx, scope)
	if err != nil {
		return nil, err
	}

	leadCounts, err := s.leadRepo.CountByStatus(ctx, scope)
	if err != nil {
		return nil, err
	}

	resp := &PipelineResponse{
		Stages:            stages,
		OpenWeightedValue: decimal.Zero,
		LeadCounts:        make(map[string]int64, len(leadCounts)),
	}
	for _, stage := range stages {
		if !stage.Stage.IsClosed() {
			resp.OpenWeightedValue = resp.OpenWeightedValue.Add(stage.WeightedValue)
		}
	}
	for status, count := range leadCounts {
		resp.LeadCounts[string(status)] = count
	}
	return resp, nil
}

// Receivables buckets outstanding invoice balances by days overdue
func (s *Service) Receivables(ctx context.Context, scope shared.Scope) (*ReceivablesResponse, error) {
	buckets, err := s.invoiceRepo.ReceivablesAging(ctx, scope, time.Now())
	if err != nil {
		return nil, err
	}

	resp := &ReceivablesResponse{
		Buckets:          buckets,
		TotalOutstanding: decimal.Zero,
	}
	for _, bucket := range buckets {
		resp.TotalOutstanding = resp.TotalOutstanding.Add(bucket.Balance)
	}
	return resp, nil
}

// resolveWindow parses the YYYY-MM bounds, defaulting to the trailing
// twelve months ending with the current one
func resolveWindow(req SalesSummaryRequest) (time.Time, time.Time, error) {
	now := time.Now()
	to := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	from := to.AddDate(-1, 0, 0)

	if req.From != "" {
		parsed, err := time.Parse("2006-01", req.From)
		if err != nil {
			return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_PERIOD", "from must be formatted YYYY-MM")
		}
		from = parsed
	}
	if req.To != "" {
		parsed, err := time.Parse("2006-01", req.To)
		if err != nil {
			return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_PERIOD", "to must be formatted YYYY-MM")
		}
		to = parsed.AddDate(0, 1, 0) // inclusive month
	}
	if !from.Before(to) {
		return time.Time{}, time.Time{}, shared.NewDomainError("INVALID_PERIOD", "from must precede to")
	}
	return from, to, nil
}
