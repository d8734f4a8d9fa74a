package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/solo-platform/community-api/internal/dto"
	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/repository"
	"github.com/solo-platform/community-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type notificationTestEnv struct {
	db      *gorm.DB
	handler *NotificationHandler
}

func setupNotificationTestEnv(t *testing.T) notificationTestEnv {
	t.Helper()

	db := openTestDB(t)
	handler := NewNotificationHandler(services.NewNotificationService(repository.NewNotificationRepository(db)))

	return notificationTestEnv{
		db:      db,
		handler: handler,
	}
}

func createTestNotification(t *testing.T, db *gorm.DB, userID uint64, message string) *models.Notification {
	t.Helper()
	notification := &models.Notification{
		UserID:  userID,
		Message: message,
	}
	require.NoError(t, db.Create(notification).Error)
	return notification
}

func TestNotificationHandler_CreateNotification(t *testing.T) {
	env := setupNotificationTestEnv(t)

	staff := createTestUser(t, env.db, "staff@example.com", true)
	recipient := createTestUser(t, env.db, "user@example.com", false)

	body := mustMarshal(t, map[string]interface{}{
		"user_id": recipient.ID,
		"message": "Your organization was verified",
		"link":    "/organizations/1",
	})

	c, w := testContext(http.MethodPost, "/api/notifications", body, staff.ID)
	env.handler.CreateNotification(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.NotificationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, recipient.ID, response.UserID)
	require.Equal(t, "Your organization was verified", response.Message)
	require.False(t, response.Viewed)
}

func TestNotificationHandler_CreateNotification_EmptyMessage(t *testing.T) {
	env := setupNotificationTestEnv(t)

	staff := createTestUser(t, env.db, "staff@example.com", true)
	recipient := createTestUser(t, env.db, "user@example.com", false)

	body := mustMarshal(t, map[string]interface{}{
		"user_id": recipient.ID,
		"message": "   ",
	})

	c, w := testContext(http.MethodPost, "/api/notifications", body, staff.ID)
	env.handler.CreateNotification(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNotificationHandler_ListNotifications_OwnOnly(t *testing.T) {
	env := setupNotificationTestEnv(t)

	userA := createTestUser(t, env.db, "a@example.com", false)
	userB := createTestUser(t, env.db, "b@example.com", false)
	staff := createTestUser(t, env.db, "staff@example.com", true)

	createTestNotification(t, env.db, userA.ID, "for A")
	createTestNotification(t, env.db, userB.ID, "for B")

	c, w := testContext(http.MethodGet, "/api/notifications", nil, userA.ID)
	env.handler.ListNotifications(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.NotificationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response["notifications"], 1)
	require.Equal(t, "for A", response["notifications"][0].Message)

	// Staff see every user's notifications.
	c, w = testContext(http.MethodGet, "/api/notifications", nil, staff.ID)
	env.handler.ListNotifications(c)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response["notifications"], 2)
}

func TestNotificationHandler_MarkViewed_ByRecipient(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := createTestUser(t, env.db, "user@example.com", false)
	row := createTestNotification(t, env.db, user.ID, "hello")

	body := mustMarshal(t, map[string]bool{"viewed": true})
	c, w := testContext(http.MethodPatch, "/api/notifications/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", row.ID)}}
	env.handler.UpdateNotification(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.NotificationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.Viewed)

	var stored models.Notification
	require.NoError(t, env.db.First(&stored, row.ID).Error)
	require.True(t, stored.Viewed)
}

func TestNotificationHandler_MarkViewed_ByAnotherUser(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := createTestUser(t, env.db, "user@example.com", false)
	intruder := createTestUser(t, env.db, "intruder@example.com", false)
	row := createTestNotification(t, env.db, user.ID, "hello")

	body := mustMarshal(t, map[string]bool{"viewed": true})
	c, w := testContext(http.MethodPatch, "/api/notifications/1", body, intruder.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", row.ID)}}
	env.handler.UpdateNotification(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestNotificationHandler_DeleteNotification_ByRecipient(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := createTestUser(t, env.db, "user@example.com", false)
	row := createTestNotification(t, env.db, user.ID, "hello")

	c, w := testContext(http.MethodDelete, "/api/notifications/1", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", row.ID)}}
	env.handler.DeleteNotification(c)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Notification{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestNotificationHandler_GetNotification_NotFound(t *testing.T) {
	env := setupNotificationTestEnv(t)

	user := createTestUser(t, env.db, "user@example.com", false)

	c, w := testContext(http.MethodGet, "/api/notifications/9999", nil, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "9999"}}
	env.handler.GetNotification(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
