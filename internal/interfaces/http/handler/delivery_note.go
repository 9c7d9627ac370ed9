package handler

import (
	"github.com/gin-gonic/gin"

	salesapp "github.com/crmsuite/backend/internal/application/sales"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// DeliveryNoteHandler serves delivery note endpoints. Notes are created
// by fulfilling an order, so there is no create endpoint here.
type DeliveryNoteHandler struct {
	BaseHandler
	deliveryService *salesapp.DeliveryNoteService
}

// NewDeliveryNoteHandler creates a new DeliveryNoteHandler
func NewDeliveryNoteHandler(deliveryService *salesapp.DeliveryNoteService) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{deliveryService: deliveryService}
}

// RegisterRoutes registers the delivery note endpoints
func (h *DeliveryNoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notes := rg.Group("/delivery-notes")
	notes.GET("", h.List)
	notes.GET("/:id", h.GetByID)
	notes.PUT("/:id", h.Update)
	notes.PUT("/:id/items/:item_id", h.UpdateItemQuantity)
	notes.POST("/:id/issue", h.Issue)
	notes.POST("/:id/deliver", h.MarkDelivered)
	notes.DELETE("/:id", h.Delete)
}

// List lists delivery notes
func (h *DeliveryNoteHandler) List(c *gin.Context) {
	var filter salesapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	notes, total, err := h.deliveryService.List(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, notes, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// GetByID returns one delivery note
func (h *DeliveryNoteHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid delivery note ID")
		return
	}

	note, err := h.deliveryService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, note)
}

// Update updates a draft delivery note
func (h *DeliveryNoteHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid delivery note ID")
		return
	}

	var req salesapp.UpdateDeliveryNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.deliveryService.Update(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, note)
}

// UpdateItemQuantity adjusts a delivered quantity on a draft note
func (h *DeliveryNoteHandler) UpdateItemQuantity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid delivery note ID")
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

	note, err := h.deliveryService.UpdateItemQuantity(c.Request.Context(), middleware.GetScope(c), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, note)
}

// Issue marks a draft delivery note as issued
func (h *DeliveryNoteHandler) Issue(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid delivery note ID")
		return
	}

	note, err := h.deliveryService.Issue(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, note)
}

// MarkDelivered marks an issued delivery note as delivered
func (h *DeliveryNoteHandler) MarkDelivered(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid delivery note ID")
		return
	}

	note, err := h.deliveryService.MarkDelivered(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, note)
}

// Delete removes a draft delivery note
func (h *DeliveryNoteHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid delivery note ID")
		return
	}

	if err := h.deliveryService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
