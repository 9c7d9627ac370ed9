package handler

import (
	"github.com/gin-gonic/gin"

	notificationapp "github.com/crmsuite/backend/internal/application/notification"
	"github.com/crmsuite/backend/internal/domain/shared"
	"github.com/crmsuite/backend/internal/interfaces/http/middleware"
)

// NotificationHandler serves the caller's own notifications. Every
// endpoint is pinned to the authenticated user, not to a company scope.
type NotificationHandler struct {
	BaseHandler
	notificationService *notificationapp.Service
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService *notificationapp.Service) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

// RegisterRoutes registers the notification endpoints
func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	notifications := rg.Group("/notifications")
	notifications.GET("", h.List)
	notifications.GET("/unread-count", h.UnreadCount)
	notifications.GET("/:id", h.GetByID)
	notifications.POST("/:id/read", h.MarkRead)
	notifications.POST("/read-all", h.MarkAllRead)
	notifications.DELETE("/:id", h.Delete)
}

// List lists the caller's notifications
func (h *NotificationHandler) List(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	var filter notificationapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.notificationService.List(c.Request.Context(), userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Paginated(c, result.Items, result.Total, result.Page, result.PageSize)
}

// UnreadCount returns the caller's unread notification count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	count, err := h.notificationService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, count)
}

// GetByID returns one of the caller's notifications
func (h *NotificationHandler) GetByID(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	notification, err := h.notificationService.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, notification)
}

// MarkRead marks one notification as read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), userID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, notification)
}

// MarkAllRead marks all of the caller's notifications as read
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}

	updated, err := h.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.OK(c, gin.H{"updated": updated})
}

// Delete removes one of the caller's notifications
func (h *NotificationHandler) Delete(c *gin.Context) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		h.HandleError(c, shared.ErrUnauthorized)
		return
	}
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	if err := h.notificationService.Delete(c.Request.Context(), userID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
