package handler

import (
	"github.com/gin-gonic/gin"

	directoryapp "github.com/crmsuite/backend/internal/application/directory"
)

// CompanyHandler serves company administration endpoints
type CompanyHandler struct {
	BaseHandler
	companyService *directoryapp.CompanyService
}

// NewCompanyHandler creates a new CompanyHandler
func NewCompanyHandler(companyService *directoryapp.CompanyService) *CompanyHandler {
	return &CompanyHandler{companyService: companyService}
}

// RegisterRoutes registers the company endpoints
func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	companies := rg.Group("/companies")
	companies.POST("", h.Create)
	companies.GET("", h.List)
	companies.GET("/:id", h.GetByID)
	companies.PUT("/:id", h.Update)
	companies.POST("/:id/archive", h.Archive)
	companies.DELETE("/:id", h.Delete)
}

// Create creates a company
func (h *CompanyHandler) Create(c *gin.Context) {
	var req directoryapp.CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, company)
}

// List lists companies
func (h *CompanyHandler) List(c *gin.Context) {
	var filter directoryapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	companies, total, err := h.companyService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, companies, total, pageOf(filter.Page), pageSizeOf(filter.PageSize))
}

// GetByID returns one company
func (h *CompanyHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	company, err := h.companyService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, company)
}

// Update updates a company
func (h *CompanyHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	var req directoryapp.UpdateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	company, err := h.companyService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, company)
}

// Archive archives a company
func (h *CompanyHandler) Archive(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	company, err := h.companyService.Archive(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, company)
}

// Delete removes a company
func (h *CompanyHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid company ID")
		return
	}

	if err := h.companyService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// pageOf normalizes a requested page number for response meta
func pageOf(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

// pageSizeOf normalizes a requested page size for response meta
func pageSizeOf(pageSize int) int {
	if pageSize <= 0 || pageSize > 100 {
		return 20
	}
	return pageSize
}
