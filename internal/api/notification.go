package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipe-share/backend/internal/middleware"
	"github.com/pageza/recipe-share/backend/internal/service"
)

// NotificationHandler serves the caller's notification inbox
type NotificationHandler struct {
	notificationService service.INotificationService
	validator           middleware.TokenValidator
}

// NewNotificationHandler creates a new NotificationHandler instance
func NewNotificationHandler(notifications service.INotificationService, validator middleware.TokenValidator) *NotificationHandler {
	return &NotificationHandler{notificationService: notifications, validator: validator}
}

// RegisterRoutes registers the notification routes on router
func (h *NotificationHandler) RegisterRoutes(router *gin.RouterGroup) {
	notifications := router.Group("/notifications")
	notifications.Use(middleware.AuthMiddleware(h.validator))
	{
		notifications.GET("", h.ListNotifications)
		notifications.PUT("/read-all", h.MarkAllRead)
		notifications.PUT("/:id/read", h.MarkRead)
		notifications.DELETE("/:id", h.DeleteNotification)
	}
}

func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	page, err := h.notificationService.ListNotifications(c.Request.Context(), userID, queryInt(c, "page", 1), queryInt(c, "limit", 0))
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, page)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "Notification")
	if !ok {
		return
	}
	n, err := h.notificationService.MarkRead(c.Request.Context(), id, userID)
	if err != nil {
		fail(c, err)
		return
	}
	respondOK(c, n)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	updated, err := h.notificationService.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "All notifications marked as read", gin.H{"updated": updated})
}

func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", "Notification")
	if !ok {
		return
	}
	if err := h.notificationService.DeleteNotification(c.Request.Context(), id, userID); err != nil {
		fail(c, err)
		return
	}
	respondMessage(c, http.StatusOK, "Notification deleted", nil)
}
