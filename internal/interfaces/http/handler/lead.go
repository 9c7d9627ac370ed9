package handler

import (
	"github.com/gin-gonic/gin"

	crmapp "github.com/crmsuite/backend/internal/application/crm"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// LeadHandler serves lead endpoints
type LeadHandler struct {
	BaseHandler
	leadService *crmapp.LeadService
}

// NewLeadHandler creates a new LeadHandler
func NewLeadHandler(leadService *crmapp.LeadService) *LeadHandler {
	return &LeadHandler{leadService: leadService}
}

// RegisterRoutes registers the lead endpoints
func (h *LeadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	leads := rg.Group("/leads")
	leads.POST("", h.Create)
	leads.GET("", h.List)
	leads.GET("/:id", h.GetByID)
	leads.PUT("/:id", h.Update)
	leads.POST("/:id/status", h.ChangeStatus)
	leads.POST("/:id/convert", h.Convert)
	leads.DELETE("/:id", h.Delete)
}

// Create creates a lead
func (h *LeadHandler) Create(c *gin.Context) {
	var req crmapp.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lead, err := h.leadService.Create(c.Request.Context(), middleware.GetScope(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, lead)
}

// List lists leads
func (h *LeadHandler) List(c *gin.Context) {
	var filter crmapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	leads, total, err := h.leadService.List(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, leads, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// GetByID returns one lead
func (h *LeadHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	lead, err := h.leadService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, lead)
}

// Update updates a lead
func (h *LeadHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	var req crmapp.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lead, err := h.leadService.Update(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, lead)
}

// ChangeStatus moves a lead through its status lifecycle
func (h *LeadHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	var req crmapp.ChangeLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	lead, err := h.leadService.ChangeStatus(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, lead)
}

// Convert converts a qualified lead into a deal
func (h *LeadHandler) Convert(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	result, err := h.leadService.Convert(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Delete removes a lead
func (h *LeadHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid lead ID")
		return
	}

	if err := h.leadService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
