package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrNotNotificationOwner  = errors.New("notification belongs to another user")
	ErrEmptyNotification     = errors.New("notification message cannot be empty")
)

// NotificationService provides business logic for notifications. Creation
// is reserved for staff (the route enforces it); reads and the viewed flag
// belong to the recipient.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
	}
}

// CreateNotificationInput represents parameters to create a notification.
type CreateNotificationInput struct {
	UserID  uint64
	Message string
	Link    string
}

// CreateNotification records a message for a user.
func (s *NotificationService) CreateNotification(input CreateNotificationInput) (*models.Notification, error) {
	if strings.TrimSpace(input.Message) == "" {
		return nil, ErrEmptyNotification
	}

	notification := &models.Notification{
		UserID:  input.UserID,
		Message: input.Message,
		Link:    input.Link,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	return notification, nil
}

// ListNotifications lists notifications visible to the actor: staff see
// all rows, everyone else their own.
func (s *NotificationService) ListNotifications(actor *models.User) ([]models.Notification, error) {
	var (
		notifications []models.Notification
		err           error
	)
	if actor.IsStaff {
		notifications, err = s.notificationRepo.ListAll()
	} else {
		notifications, err = s.notificationRepo.ListByUserID(actor.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// GetNotification returns a notification if the actor is the recipient or
// staff.
func (s *NotificationService) GetNotification(actor *models.User, id uint64) (*models.Notification, error) {
	notification, err := s.findNotification(id)
	if err != nil {
		return nil, err
	}

	if notification.UserID != actor.ID && !actor.IsStaff {
		return nil, ErrNotNotificationOwner
	}

	return notification, nil
}

// MarkViewed sets the viewed flag. Only the recipient (or staff) may
// mutate it.
func (s *NotificationService) MarkViewed(actor *models.User, id uint64, viewed bool) (*models.Notification, error) {
	notification, err := s.findNotification(id)
	if err != nil {
		return nil, err
	}

	if notification.UserID != actor.ID && !actor.IsStaff {
		return nil, ErrNotNotificationOwner
	}

	notification.Viewed = viewed
	if err := s.notificationRepo.Update(notification); err != nil {
		return nil, fmt.Errorf("failed to update notification: %w", err)
	}

	return notification, nil
}

// DeleteNotification removes a notification. Only the recipient (or
// staff) may delete it.
func (s *NotificationService) DeleteNotification(actor *models.User, id uint64) error {
	notification, err := s.findNotification(id)
	if err != nil {
		return err
	}

	if notification.UserID != actor.ID && !actor.IsStaff {
		return ErrNotNotificationOwner
	}

	if err := s.notificationRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete notification: %w", err)
	}

	return nil
}

func (s *NotificationService) findNotification(id uint64) (*models.Notification, error) {
	notification, err := s.notificationRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("failed to find notification: %w", err)
	}
	return notification, nil
}
