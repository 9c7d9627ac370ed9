package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/crmsuite/backend/internal/application/sales"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// QuoteHandler serves quote endpoints
type QuoteHandler struct {
	BaseHandler
	quoteService *salesapp.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler
func NewQuoteHandler(quoteService *salesapp.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteService: quoteService}
}

// RegisterRoutes registers the quote endpoints
func (h *QuoteHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quotes := rg.Group("/quotes")
	quotes.POST("", h.Create)
	quotes.GET("", h.List)
	quotes.GET("/:id", h.GetByID)
	quotes.PUT("/:id", h.Update)
	quotes.DELETE("/:id", h.Delete)

	quotes.POST("/:id/items", h.AddItem)
	quotes.PUT("/:id/items/:item_id", h.UpdateItemQuantity)
	quotes.DELETE("/:id/items/:item_id", h.RemoveItem)

	quotes.POST("/:id/send", h.Send)
	quotes.POST("/:id/accept", h.Accept)
	quotes.POST("/:id/reject", h.Reject)
	quotes.POST("/:id/convert", h.Convert)
	quotes.POST("/expire-stale", h.ExpireStale)
}

// Create creates a draft quote
func (h *QuoteHandler) Create(c *gin.Context) {
	var req salesapp.CreateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.quoteService.Create(c.Request.Context(), middleware.GetScope(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, quote)
}

// List lists quotes
func (h *QuoteHandler) List(c *gin.Context) {
	var filter salesapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quotes, total, err := h.quoteService.List(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, quotes, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// GetByID returns one quote
func (h *QuoteHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := h.quoteService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, quote)
}

// Update updates a draft quote
func (h *QuoteHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	var req salesapp.UpdateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.quoteService.Update(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, quote)
}

// AddItem adds a line item to a draft quote
func (h *QuoteHandler) AddItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	var req salesapp.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	quote, err := h.quoteService.AddItem(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, quote)
}

// UpdateItemQuantity changes a line item quantity
func (h *QuoteHandler) UpdateItemQuantity(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid quote ID")
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

	quote, err := h.quoteService.UpdateItemQuantity(c.Request.Context(), middleware.GetScope(c), id, itemID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, quote)
}

// RemoveItem removes a line item from a draft quote
func (h *QuoteHandler) RemoveItem(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid quote ID")
		return
	}
	itemID, ok := parseUUIDParam(c, "item_id")
	if !ok {
		h.BadRequest(c, "Invalid item ID")
		return
	}

	quote, err := h.quoteService.RemoveItem(c.Request.Context(), middleware.GetScope(c), id, itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, quote)
}

// Send marks a quote as sent
func (h *QuoteHandler) Send(c *gin.Context) {
	h.transition(c, h.quoteService.Send)
}

// Accept marks a sent quote as accepted
func (h *QuoteHandler) Accept(c *gin.Context) {
	h.transition(c, h.quoteService.Accept)
}

// Reject marks a sent quote as rejected
func (h *QuoteHandler) Reject(c *gin.Context) {
	h.transition(c, h.quoteService.Reject)
}

// Convert turns an accepted quote into an order
func (h *QuoteHandler) Convert(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	order, err := h.quoteService.Convert(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// ExpireStale marks sent quotes past their valid-until date as expired.
func (h *QuoteHandler) ExpireStale(c *gin.Context) {
	expired, err := h.quoteService.ExpireStale(c.Request.Context(), middleware.GetScope(c), time.Now())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"expired": expired})
}

// Delete removes a draft quote
func (h *QuoteHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	if err := h.quoteService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *QuoteHandler) transition(c *gin.Context, apply func(ctx context.Context, scope shared.Scope, id uuid.UUID) (*salesapp.QuoteResponse, error)) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid quote ID")
		return
	}

	quote, err := apply(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, quote)
}
