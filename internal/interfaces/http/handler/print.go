package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	printingapp "github.com/crmsuite/backend/internal/application/printing"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// PrintHandler serves rendered PDF downloads for sales documents
type PrintHandler struct {
	BaseHandler
	printingService *printingapp.Service
}

// NewPrintHandler creates a new PrintHandler
func NewPrintHandler(printingService *printingapp.Service) *PrintHandler {
	return &PrintHandler{printingService: printingService}
}

// RegisterRoutes registers the PDF endpoints alongside their resources
func (h *PrintHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes/:id/pdf", h.QuotePDF)
	rg.GET("/invoices/:id/pdf", h.InvoicePDF)
	rg.GET("/delivery-notes/:id/pdf", h.DeliveryNotePDF)
}

// QuotePDF renders a quote as PDF
func (h *PrintHandler) QuotePDF(c *gin.Context) {
	h.serve(c, h.printingService.QuotePDF)
}

// InvoicePDF renders an invoice as PDF
func (h *PrintHandler) InvoicePDF(c *gin.Context) {
	h.serve(c, h.printingService.InvoicePDF)
}

// DeliveryNotePDF renders a delivery note as PDF
func (h *PrintHandler) DeliveryNotePDF(c *gin.Context) {
	h.serve(c, h.printingService.DeliveryNotePDF)
}

func (h *PrintHandler) serve(c *gin.Context, render func(ctx context.Context, scope shared.Scope, id uuid.UUID) (*printingapp.PDF, error)) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	pdf, err := render(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.FileName))
	c.Data(200, "application/pdf", pdf.Content)
}
