package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/solo-platform/community-api/internal/dto"
	apierrors "github.com/solo-platform/community-api/internal/errors"
	"github.com/solo-platform/community-api/internal/middleware"
	"github.com/solo-platform/community-api/internal/services"
)

// NotificationHandler coordinates notification HTTP handlers.
type NotificationHandler struct {
	notificationService *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notificationService *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// CreateNotification records a message for a user. Staff only (route
// gate).
func (h *NotificationHandler) CreateNotification(c *gin.Context) {
	type CreateNotificationRequest struct {
		UserID  uint64 `json:"user_id" binding:"required"`
		Message string `json:"message" binding:"required"`
		Link    string `json:"link"`
	}

	var req CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	notification, err := h.notificationService.CreateNotification(services.CreateNotificationInput{
		UserID:  req.UserID,
		Message: req.Message,
		Link:    req.Link,
	})
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToNotificationDTO(*notification))
}

// ListNotifications lists notifications visible to the caller.
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	notifications, err := h.notificationService.ListNotifications(actor)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch notifications")
		return
	}

	notificationDTOs := make([]dto.NotificationDTO, len(notifications))
	for i, n := range notifications {
		notificationDTOs[i] = dto.ToNotificationDTO(n)
	}

	c.JSON(http.StatusOK, gin.H{
		"notifications": notificationDTOs,
	})
}

// GetNotification returns a single notification for its recipient.
func (h *NotificationHandler) GetNotification(c *gin.Context) {
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	notification, err := h.notificationService.GetNotification(actor, notificationID)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationDTO(*notification))
}

// UpdateNotification flips the viewed flag. Recipient only.
func (h *NotificationHandler) UpdateNotification(c *gin.Context) {
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateNotificationRequest struct {
		Viewed *bool `json:"viewed" binding:"required"`
	}

	var req UpdateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	notification, err := h.notificationService.MarkViewed(actor, notificationID, *req.Viewed)
	if err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationDTO(*notification))
}

// DeleteNotification removes a notification. Recipient or staff.
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid notification ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.notificationService.DeleteNotification(actor, notificationID); err != nil {
		respondNotificationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Notification deleted successfully",
	})
}

func respondNotificationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotificationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmptyNotification):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotNotificationOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
