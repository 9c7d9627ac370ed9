package handler

import (
	"github.com/gin-gonic/gin"

	scrapeapp "github.com/crmsuite/backend/internal/application/scrape"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// ScrapeHandler serves the scrape job endpoints
type ScrapeHandler struct {
	BaseHandler
	scrapeService *scrapeapp.Service
}

// NewScrapeHandler creates a new ScrapeHandler
func NewScrapeHandler(scrapeService *scrapeapp.Service) *ScrapeHandler {
	return &ScrapeHandler{scrapeService: scrapeService}
}

// RegisterRoutes registers the scrape job endpoints
func (h *ScrapeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	jobs := rg.Group("/scrape-jobs")
	jobs.POST("", h.Enqueue)
	jobs.GET("", h.List)
	jobs.GET("/:id", h.GetByID)
}

// Enqueue submits a scrape job. With sync=true a single-URL job runs
// inline and the response carries the finished result.
func (h *ScrapeHandler) Enqueue(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	var req scrapeapp.EnqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	job, err := h.scrapeService.Enqueue(c.Request.Context(), middleware.GetScope(c), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, job)
}

// GetByID returns one scrape job
func (h *ScrapeHandler) GetByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid job ID")
		return
	}

	job, err := h.scrapeService.GetByID(c.Request.Context(), middleware.GetScope(c), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, job)
}

// List lists scrape jobs
func (h *ScrapeHandler) List(c *gin.Context) {
	var filter scrapeapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.scrapeService.List(c.Request.Context(), middleware.GetScope(c), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}
