package dto

import (
	"time"

	"github.com/solo-platform/community-api/internal/models"
)

// NotificationDTO represents a notification in API responses
type NotificationDTO struct {
	ID        uint64    `json:"id"`
	UserID    uint64    `json:"user_id"`
	Message   string    `json:"message"`
	Link      string    `json:"link"`
	Viewed    bool      `json:"viewed"`
	CreatedAt time.Time `json:"created_at"`
}

// ToNotificationDTO converts a notification to DTO
func ToNotificationDTO(notification models.Notification) NotificationDTO {
	return NotificationDTO{
		ID:        notification.ID,
		UserID:    notification.UserID,
		Message:   notification.Message,
		Link:      notification.Link,
		Viewed:    notification.Viewed,
		CreatedAt: notification.CreatedAt,
	}
}
