package handler

import (
	"github.com/gin-gonic/gin"

	crmapp "github.com/crmsuite/backend/internal/application/crm"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// DealHandler serves deal endpoints
type DealHandler struct {
	BaseHandler
	dealService *crmapp.DealService
}

// NewDealHandler creates a new DealHandler
func NewDealHandler(dealService *crmapp.DealService) *DealHandler {
	return &DealHandler{dealService: dealService}
}

// RegisterRoutes registers the deal endpoints
func (h *DealHandler) RegisterRoutes(rg *gin.RouterGroup) {
	deals := rg.Group("/deals")
	deals.POST("", h.Create)
	deals.GET("", h.List)
	deals.GET("/pipeline", h.Pipeline)
	deals.GET("/:id", h.GetByID)
	deals.PUT("/:id", h.Update)
	deals.POST("/:id/stage", h.ChangeStage)
	deals.DELETE("/:id", h.Delete)
}

// Create creates a deal
func (h *DealHandler) Create(c *gin.Context) {
	var req crmapp.CreateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deal, err := h.dealService.Create(c.Request.Context(), middleware.GetScope(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, deal)
}

// List lists deals
func (h *DealHandler) List(c *gin.Context) {
	var filter crmapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deals, total, err := h.dealService.List(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, deals, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// Pipeline summarizes open deals per stage
func (h *DealHandler) Pipeline(c *gin.Context) {
	stages, weighted, err := h.dealService.Pipeline(c.Request.Context(), middleware.GetScope(c))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{
		"stages":              stages,
		"open_weighted_value": weighted,
	})
}

// GetByID returns one deal
func (h *DealHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid deal ID")
		return
	}

	deal, err := h.dealService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, deal)
}

// Update updates a deal
func (h *DealHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid deal ID")
		return
	}

	var req crmapp.UpdateDealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deal, err := h.dealService.Update(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, deal)
}

// ChangeStage moves a deal through the pipeline
func (h *DealHandler) ChangeStage(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid deal ID")
		return
	}

	var req crmapp.ChangeDealStageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	deal, err := h.dealService.ChangeStage(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, deal)
}

// Delete removes a deal
func (h *DealHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid deal ID")
		return
	}

	if err := h.dealService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
