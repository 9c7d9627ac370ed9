package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/crmsuite/backend/internal/infrastructure/persistence"
	"github.com/crmsuite/backend/internal/interfaces/http/dto"
)

// HealthHandler reports process liveness and dependency readiness
type HealthHandler struct {
	db          *persistence.Database
	redisClient *redis.Client
	version     string
}

// NewHealthHandler creates a new HealthHandler. redisClient may be nil
// when the deployment runs without Redis.
func NewHealthHandler(db *persistence.Database, redisClient *redis.Client, version string) *HealthHandler {
	return &HealthHandler{db: db, redisClient: redisClient, version: version}
}

// RegisterRoutes registers the health endpoints
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}

// Health reports that the process is up
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{
		"status":  "ok",
		"version": h.version,
	}))
}

// Ready checks that backing services answer
func (h *HealthHandler) Ready(c *gin.Context) {
	checks := gin.H{}
	healthy := true

	if err := h.db.Ping(); err != nil {
		checks["database"] = err.Error()
		healthy = false
	} else {
		checks["database"] = "ok"
	}

	if h.redisClient != nil {
		if err := h.redisClient.Ping(c.Request.Context()).Err(); err != nil {
			checks["redis"] = err.Error()
			healthy = false
		} else {
			checks["redis"] = "ok"
		}
	}

	status := http.StatusOK
	state := "ok"
	if !healthy {
		status = http.StatusServiceUnavailable
		state = "degraded"
	}
	c.JSON(status, dto.NewSuccessResponse(gin.H{
		"status": state,
		"checks": checks,
	}))
}
