package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/crmsuite/backend/internal/application/report"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// ReportHandler serves the reporting endpoints
type ReportHandler struct {
	BaseHandler
	reportService *reportapp.Service
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService *reportapp.Service) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes registers the reporting endpoints
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports")
	reports.GET("/sales-summary", h.SalesSummary)
	reports.GET("/pipeline", h.Pipeline)
	reports.GET("/receivables", h.Receivables)
}

// SalesSummary returns invoiced revenue per month
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	var req reportapp.SalesSummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.reportService.SalesSummary(c.Request.Context(), middleware.GetScope(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, summary)
}

// Pipeline returns the deal pipeline summary
func (h *ReportHandler) Pipeline(c *gin.Context) {
	pipeline, err := h.reportService.Pipeline(c.Request.Context(), middleware.GetScope(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, pipeline)
}

// Receivables returns outstanding invoice balances bucketed by age
func (h *ReportHandler) Receivables(c *gin.Context) {
	receivables, err := h.reportService.Receivables(c.Request.Context(), middleware.GetScope(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, receivables)
}
