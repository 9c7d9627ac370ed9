package handler

import (
	"github.com/gin-gonic/gin"

	salesapp "github.com/crmsuite/backend/internal/application/sales"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// OrderHandler serves order endpoints
type OrderHandler struct {
	BaseHandler
	orderService    *salesapp.OrderService
	deliveryService *salesapp.DeliveryNoteService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *salesapp.OrderService, deliveryService *salesapp.DeliveryNoteService) *OrderHandler {
	return &OrderHandler{orderService: orderService, deliveryService: deliveryService}
}

// RegisterRoutes registers the order endpoints
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/:id", h.GetByID)
	orders.PUT("/:id", h.Update)
	orders.DELETE("/:id", h.Delete)

	orders.POST("/:id/items", h.AddItem)
	orders.PUT("/:id/items/:item_id", h.UpdateItemQuantity)
	orders.DELETE("/:id/items/:item_id", h.RemoveItem)

	orders.POST("/:id/confirm", h.Confirm)
	orders.POST("/:id/fulfill", h.Fulfill)
	orders.POST("/:id/cancel", h.Cancel)
	orders.GET("/:id/delivery-notes", h.ListDeliveryNotes)
}

// Create creates a draft order
func (h *OrderHandler) Create(c *gin.Context) {
	var req salesapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), middleware.GetScope(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// List lists orders
func (h *OrderHandler) List(c *gin.Context) {
	var filter salesapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	orders, total, err := h.orderService.List(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, orders, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// GetByID returns one order
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, order)
}

// Update updates a draft order
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req salesapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, order)
}

// AddItem adds a line item to a draft order
func (h *OrderHandler) AddItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req salesapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.AddItem(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, order)
}

// UpdateItemQuantity changes a line item quantity
func (h *OrderHandler) UpdateItemQuantity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
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

	order, err := h.orderService.UpdateItemQuantity(c.Request.Context(), middleware.GetScope(c), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, order)
}

// RemoveItem removes a line item from a draft order
func (h *OrderHandler) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	order, err := h.orderService.RemoveItem(c.Request.Context(), middleware.GetScope(c), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, order)
}

// Confirm confirms a draft order
func (h *OrderHandler) Confirm(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	order, err := h.orderService.Confirm(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, order)
}

// Fulfill fulfills a confirmed order and issues a delivery note
func (h *OrderHandler) Fulfill(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req salesapp.FulfillOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	note, err := h.orderService.Fulfill(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, note)
}

// Cancel cancels an order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	var req salesapp.CancelOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Cancel(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, order)
}

// ListDeliveryNotes lists the delivery notes issued for an order
func (h *OrderHandler) ListDeliveryNotes(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	notes, err := h.deliveryService.ListByOrder(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, notes)
}

// Delete removes a draft order
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
