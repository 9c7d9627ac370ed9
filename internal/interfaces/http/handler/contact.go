package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/crmsuite/backend/internal/application/directory"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// ContactHandler serves contact endpoints
type ContactHandler struct {
	BaseHandler
	contactService *directoryapp.ContactService
}

// NewContactHandler creates a new ContactHandler
func NewContactHandler(contactService *directoryapp.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// RegisterRoutes registers the contact endpoints
func (h *ContactHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contacts := rg.Group("/contacts")
	contacts.POST("", h.Create)
	contacts.GET("", h.List)
	contacts.GET("/:id", h.GetByID)
	contacts.PUT("/:id", h.Update)
	contacts.DELETE("/:id", h.Delete)
}

// Create creates a contact
func (h *ContactHandler) Create(c *gin.Context) {
	var req directoryapp.CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.Create(c.Request.Context(), middleware.GetScope(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, contact)
}

// List lists contacts
func (h *ContactHandler) List(c *gin.Context) {
	var filter directoryapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contacts, total, err := h.contactService.List(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, contacts, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// GetByID returns one contact
func (h *ContactHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	contact, err := h.contactService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, contact)
}

// Update updates a contact
func (h *ContactHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	var req directoryapp.UpdateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	contact, err := h.contactService.Update(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, contact)
}

// Delete removes a contact
func (h *ContactHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid contact ID")
		return
	}

	if err := h.contactService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
