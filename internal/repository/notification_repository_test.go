package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/solo-platform/community-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	return db, mock
}

func TestNotificationRepository_Create(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `notifications`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	notification := &models.Notification{
		UserID:  7,
		Message: "Your membership was confirmed",
		Link:    "/organizations/3",
	}
	require.NoError(t, repo.Create(notification))
	require.EqualValues(t, 1, notification.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_ListByUserID_NewestFirst(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewNotificationRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "message", "link", "viewed", "created_at", "updated_at"}).
		AddRow(2, 7, "second", "", false, now, now).
		AddRow(1, 7, "first", "", true, now.Add(-time.Hour), now.Add(-time.Hour))

	mock.ExpectQuery("SELECT \\* FROM `notifications` WHERE user_id = \\? ORDER BY created_at DESC").
		WithArgs(uint64(7)).
		WillReturnRows(rows)

	notifications, err := repo.ListByUserID(7)
	require.NoError(t, err)
	require.Len(t, notifications, 2)
	require.Equal(t, "second", notifications[0].Message)
	require.Equal(t, "first", notifications[1].Message)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestNotificationRepository_Delete(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewNotificationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM `notifications` WHERE `notifications`.`id` = \\?").
		WithArgs(uint64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(5))
	require.NoError(t, mock.ExpectationsWereMet())
}
