package handler

import (
	"github.com/gin-gonic/gin"

	vaultapp "github.com/crmsuite/backend/internal/application/vault"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// VaultHandler serves the document vault endpoints. Uploads go straight
// to object storage via presigned URLs; the API only tracks metadata.
type VaultHandler struct {
	BaseHandler
	vaultService *vaultapp.Service
}

// NewVaultHandler creates a new VaultHandler
func NewVaultHandler(vaultService *vaultapp.Service) *VaultHandler {
	return &VaultHandler{vaultService: vaultService}
}

// RegisterRoutes registers the document endpoints
func (h *VaultHandler) RegisterRoutes(rg *gin.RouterGroup) {
	documents := rg.Group("/documents")
	documents.POST("", h.Register)
	documents.GET("", h.List)
	documents.GET("/:id", h.GetByID)
	documents.POST("/:id/confirm", h.ConfirmUpload)
	documents.GET("/:id/download", h.Download)
	documents.POST("/:id/attach", h.Attach)
	documents.DELETE("/:id", h.Delete)

	rg.GET("/entities/:kind/:entity_id/documents", h.ListByEntity)
}

// Register reserves a document slot and returns an upload URL
func (h *VaultHandler) Register(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	var req vaultapp.RegisterDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.vaultService.Register(c.Request.Context(), middleware.GetScope(c), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// ConfirmUpload marks a pending document as stored
func (h *VaultHandler) ConfirmUpload(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.vaultService.ConfirmUpload(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, doc)
}

// GetByID returns one document's metadata
func (h *VaultHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	doc, err := h.vaultService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, doc)
}

// List lists documents
func (h *VaultHandler) List(c *gin.Context) {
	var filter vaultapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.vaultService.List(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListByEntity lists documents attached to a business record
func (h *VaultHandler) ListByEntity(c *gin.Context) {
	entityID, ok := parseUUIDParam(c, "entity_id")
	if !ok {
		h.BadRequest(c, "Invalid entity ID")
		return
	}

	docs, err := h.vaultService.ListByEntity(c.Request.Context(), middleware.GetScope(c), c.Param("kind"), entityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, docs)
}

// Download returns a short-lived download URL
func (h *VaultHandler) Download(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	result, err := h.vaultService.Download(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, result)
}

// Attach links a document to a business record
func (h *VaultHandler) Attach(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	var req vaultapp.AttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	doc, err := h.vaultService.Attach(c.Request.Context(), middleware.GetScope(c), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, doc)
}

// Delete removes a document and its stored object
func (h *VaultHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid document ID")
		return
	}

	if err := h.vaultService.Delete(c.Request.Context(), middleware.GetScope(c), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
