package handler

import (
	"github.com/gin-gonic/gin"

	salesapp "github.com/crmsuite/backend/internal/application/sales"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// InvoiceHandler serves invoice endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *salesapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *salesapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// RegisterRoutes registers the invoice endpoints
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	invoices := rg.Group("/invoices")
	invoices.POST("", h.Create)
	invoices.GET("", h.List)
	invoices.GET("/:id", h.GetByID)
	invoices.PUT("/:id", h.Update)
	invoices.DELETE("/:id", h.Delete)

	invoices.POST("/:id/items", h.AddItem)
	invoices.PUT("/:id/items/:item_id", h.UpdateItemQuantity)
	invoices.DELETE("/:id/items/:item_id", h.RemoveItem)

	invoices.POST("/:id/send", h.Send)
	invoices.POST("/:id/payments", h.RecordPayment)
	invoices.POST("/:id/cancel", h.Cancel)
}

// Create creates a draft invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req salesapp.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), middleware.GetScope(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, invoice)
}

// List lists invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	var filter salesapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, invoices, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// GetByID returns one invoice
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, invoice)
}

// Update updates a draft invoice
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req salesapp.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, invoice)
}

// AddItem adds a line item to a draft invoice
func (h *InvoiceHandler) AddItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req salesapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.AddItem(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, invoice)
}

// UpdateItemQuantity changes a line item quantity
func (h *InvoiceHandler) UpdateItemQuantity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	var req salesapp.UpdateItemQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.UpdateItemQuantity(c.Request.Context(), middleware.GetScope(c), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, invoice)
}

// RemoveItem removes a line item from a draft invoice
func (h *InvoiceHandler) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	invoice, err := h.invoiceService.RemoveItem(c.Request.Context(), middleware.GetScope(c), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, invoice)
}

// Send issues a draft invoice
func (h *InvoiceHandler) Send(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Send(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, invoice)
}

// RecordPayment records a payment against an issued invoice
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	var req salesapp.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	invoice, err := h.invoiceService.RecordPayment(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, invoice)
}

// Cancel cancels an invoice
func (h *InvoiceHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.Cancel(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, invoice)
}

// Delete removes a draft invoice
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
