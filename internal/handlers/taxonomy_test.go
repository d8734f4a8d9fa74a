package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/solo-platform/community-api/internal/dto"
	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/repository"
	"github.com/solo-platform/community-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type taxonomyTestEnv struct {
	db      *gorm.DB
	handler *TaxonomyHandler
}

func setupTaxonomyTestEnv(t *testing.T) taxonomyTestEnv {
	t.Helper()

	db := openTestDB(t)
	handler := NewTaxonomyHandler(services.NewTaxonomyService(repository.NewTaxonomyRepository(db)))

	return taxonomyTestEnv{
		db:      db,
		handler: handler,
	}
}

func TestTaxonomyHandler_CreateCategory(t *testing.T) {
	env := setupTaxonomyTestEnv(t)

	staff := createTestUser(t, env.db, "staff@example.com", true)

	body := mustMarshal(t, map[string]string{"name": "Hackathon"})
	c, w := testContext(http.MethodPost, "/api/event-categories", body, staff.ID)
	env.handler.CreateCategory(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.EventCategoryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Hackathon", response.Name)

	// A second category with the same name conflicts on the unique index.
	c, w = testContext(http.MethodPost, "/api/event-categories", body, staff.ID)
	env.handler.CreateCategory(c)
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestTaxonomyHandler_CreateCategory_EmptyName(t *testing.T) {
	env := setupTaxonomyTestEnv(t)

	staff := createTestUser(t, env.db, "staff@example.com", true)

	body := mustMarshal(t, map[string]string{"name": "   "})
	c, w := testContext(http.MethodPost, "/api/event-categories", body, staff.ID)
	env.handler.CreateCategory(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTaxonomyHandler_ListCategories_SortedByName(t *testing.T) {
	env := setupTaxonomyTestEnv(t)

	require.NoError(t, env.db.Create(&models.EventCategory{Name: "Science"}).Error)
	require.NoError(t, env.db.Create(&models.EventCategory{Name: "Culture"}).Error)

	c, w := testContext(http.MethodGet, "/api/event-categories", nil, 0)
	env.handler.ListCategories(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.EventCategoryDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	categories := response["categories"]
	require.Len(t, categories, 2)
	require.Equal(t, "Culture", categories[0].Name)
	require.Equal(t, "Science", categories[1].Name)
}

func TestTaxonomyHandler_UpdateType(t *testing.T) {
	env := setupTaxonomyTestEnv(t)

	staff := createTestUser(t, env.db, "staff@example.com", true)

	row := &models.EventType{Name: "Before"}
	require.NoError(t, env.db.Create(row).Error)

	body := mustMarshal(t, map[string]string{"name": "After"})
	c, w := testContext(http.MethodPatch, "/api/event-types/1", body, staff.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", row.ID)}}
	env.handler.UpdateType(c)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.EventType
	require.NoError(t, env.db.First(&stored, row.ID).Error)
	require.Equal(t, "After", stored.Name)
}

func TestTaxonomyHandler_GetType_NotFound(t *testing.T) {
	env := setupTaxonomyTestEnv(t)

	c, w := testContext(http.MethodGet, "/api/event-types/9999", nil, 0)
	c.Params = gin.Params{{Key: "id", Value: "9999"}}
	env.handler.GetType(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestTaxonomyHandler_DeleteCategory_DetachesFromEvents(t *testing.T) {
	env := setupTaxonomyTestEnv(t)

	staff := createTestUser(t, env.db, "staff@example.com", true)

	category := &models.EventCategory{Name: "Doomed"}
	require.NoError(t, env.db.Create(category).Error)
	event := &models.Event{
		Name:           "Event",
		OrganizationID: 1,
		Date:           time.Now(),
		Categories:     []models.EventCategory{*category},
	}
	require.NoError(t, env.db.Create(event).Error)

	c, w := testContext(http.MethodDelete, "/api/event-categories/1", nil, staff.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", category.ID)}}
	env.handler.DeleteCategory(c)
	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Table("event_category_assignments").
		Where("event_id = ?", event.ID).
		Count(&count).Error)
	require.Zero(t, count)
}
