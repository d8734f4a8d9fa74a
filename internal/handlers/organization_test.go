package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/solo-platform/community-api/internal/authz"
	"github.com/solo-platform/community-api/internal/constants"
	"github.com/solo-platform/community-api/internal/database"
	"github.com/solo-platform/community-api/internal/dto"
	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/repository"
	"github.com/solo-platform/community-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type organizationTestEnv struct {
	db         *gorm.DB
	handler    *OrganizationHandler
	orgService *services.OrganizationService
}

func setupOrganizationTestEnv(t *testing.T) organizationTestEnv {
	t.Helper()

	db := openTestDB(t)

	orgRepo := repository.NewOrganizationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	resolver := authz.NewResolver(orgRepo, eventRepo)
	orgService := services.NewOrganizationService(orgRepo, resolver)
	handler := NewOrganizationHandler(orgService)

	return organizationTestEnv{
		db:         db,
		handler:    handler,
		orgService: orgService,
	}
}

// openTestDB opens an in-memory SQLite database, migrates the schema and
// installs it as the package-global handle.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Membership{},
		&models.EventCategory{},
		&models.EventType{},
		&models.Event{},
		&models.EventOrganizer{},
		&models.EventGuest{},
		&models.Notification{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func testContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set(constants.ContextKeyUserID, userID)

	return c, w
}

func createTestUser(t *testing.T, db *gorm.DB, email string, isStaff bool) *models.User {
	t.Helper()
	user := &models.User{
		Email:        email,
		FullName:     "Test User",
		PasswordHash: "hashed",
		IsStaff:      isStaff,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestOrganizationHandler_CreateOrganization(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	user := createTestUser(t, env.db, "founder@example.com", false)

	payload := map[string]string{
		"name":        "New Org",
		"description": "A community organization",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPost, "/api/organizations", body, user.ID)

	env.handler.CreateOrganization(c)

	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.OrganizationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["name"], response.Name)
	require.Equal(t, models.OrganizationStatusNew, response.Status)

	// The creator is granted a leader membership with both sides confirmed.
	var member models.Membership
	require.NoError(t, env.db.Where("organization_id = ? AND user_id = ?", response.ID, user.ID).First(&member).Error)
	require.Equal(t, models.RoleLeader, member.Role)
	require.True(t, member.OrganizationConfirm)
	require.True(t, member.UserConfirm)
}

func TestOrganizationHandler_GetOrganization_MemberListIsStable(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	user := createTestUser(t, env.db, "founder@example.com", false)

	org, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "Org",
		CreatorID: user.ID,
	})
	require.NoError(t, err)

	read := func() dto.OrganizationDetailDTO {
		c, w := testContext(http.MethodGet, "/api/organizations/1", nil, user.ID)
		c.Params = gin.Params{{Key: "id", Value: "1"}}
		env.handler.GetOrganization(c)
		require.Equal(t, http.StatusOK, w.Code)

		var response dto.OrganizationDetailDTO
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		return response
	}

	first := read()
	second := read()
	require.Equal(t, org.ID, first.ID)
	require.Len(t, first.Members, 1)
	require.Equal(t, first, second)
}

func TestOrganizationHandler_UpdateOrganization_ByLeader(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	user := createTestUser(t, env.db, "leader@example.com", false)

	_, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "Before",
		CreatorID: user.ID,
	})
	require.NoError(t, err)

	payload := map[string]string{"name": "After"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPatch, "/api/organizations/1", body, user.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.handler.UpdateOrganization(c)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.OrganizationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "After", response.Name)
}

func TestOrganizationHandler_UpdateOrganization_ByNonLeader(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	founder := createTestUser(t, env.db, "founder@example.com", false)
	outsider := createTestUser(t, env.db, "outsider@example.com", false)

	_, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "Org",
		CreatorID: founder.ID,
	})
	require.NoError(t, err)

	payload := map[string]string{"name": "Hijacked"}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	c, w := testContext(http.MethodPatch, "/api/organizations/1", body, outsider.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.handler.UpdateOrganization(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestOrganizationHandler_DeleteOrganization_Cascades(t *testing.T) {
	env := setupOrganizationTestEnv(t)

	founder := createTestUser(t, env.db, "founder@example.com", false)

	org, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "Doomed",
		CreatorID: founder.ID,
	})
	require.NoError(t, err)

	c, w := testContext(http.MethodDelete, "/api/organizations/1", nil, founder.ID)
	c.Params = gin.Params{{Key: "id", Value: "1"}}

	env.handler.DeleteOrganization(c)

	require.Equal(t, http.StatusOK, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Membership{}).Where("organization_id = ?", org.ID).Count(&count).Error)
	require.Zero(t, count)
}
