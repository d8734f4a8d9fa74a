package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/solo-platform/community-api/internal/authz"
	"github.com/solo-platform/community-api/internal/dto"
	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/repository"
	"github.com/solo-platform/community-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type membershipTestEnv struct {
	db         *gorm.DB
	handler    *MembershipHandler
	orgService *services.OrganizationService
}

func setupMembershipTestEnv(t *testing.T) membershipTestEnv {
	t.Helper()

	db := openTestDB(t)

	orgRepo := repository.NewOrganizationRepository(db)
	eventRepo := repository.NewEventRepository(db)
	resolver := authz.NewResolver(orgRepo, eventRepo)
	orgService := services.NewOrganizationService(orgRepo, resolver)
	handler := NewMembershipHandler(services.NewMembershipService(orgRepo, resolver))

	return membershipTestEnv{
		db:         db,
		handler:    handler,
		orgService: orgService,
	}
}

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return body
}

// Scenario from the membership handshake: A creates an organization, B
// requests to join, A confirms. Each step only touches its own side of
// the handshake.
func TestMembershipHandler_ConfirmationHandshake(t *testing.T) {
	env := setupMembershipTestEnv(t)

	userA := createTestUser(t, env.db, "a@example.com", false)
	userB := createTestUser(t, env.db, "b@example.com", false)

	org, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "Org O",
		CreatorID: userA.ID,
	})
	require.NoError(t, err)

	// A's own membership exists with role leader.
	var leaderRow models.Membership
	require.NoError(t, env.db.Where("organization_id = ? AND user_id = ?", org.ID, userA.ID).First(&leaderRow).Error)
	require.Equal(t, models.RoleLeader, leaderRow.Role)

	// B requests to join.
	body := mustMarshal(t, map[string]uint64{"organization_id": org.ID})
	c, w := testContext(http.MethodPost, "/api/memberships/join", body, userB.ID)
	env.handler.JoinOrganization(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var joined dto.MembershipDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &joined))
	require.Equal(t, models.RoleMember, joined.Role)
	require.False(t, joined.OrganizationConfirm)
	require.True(t, joined.UserConfirm)

	// A confirms B on the organization side.
	body = mustMarshal(t, map[string]bool{"organization_confirm": true})
	c, w = testContext(http.MethodPatch, "/api/memberships/review", body, userA.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", joined.ID)}}
	env.handler.ReviewMembership(c)
	require.Equal(t, http.StatusOK, w.Code)

	var reviewed dto.MembershipDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reviewed))
	require.True(t, reviewed.OrganizationConfirm)
	// B's side and role are untouched; no derived state changes.
	require.True(t, reviewed.UserConfirm)
	require.Equal(t, models.RoleMember, reviewed.Role)
}

func TestMembershipHandler_JoinOrganization_Duplicate(t *testing.T) {
	env := setupMembershipTestEnv(t)

	founder := createTestUser(t, env.db, "founder@example.com", false)
	user := createTestUser(t, env.db, "joiner@example.com", false)

	org, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "Org",
		CreatorID: founder.ID,
	})
	require.NoError(t, err)

	body := mustMarshal(t, map[string]uint64{"organization_id": org.ID})

	c, w := testContext(http.MethodPost, "/api/memberships/join", body, user.ID)
	env.handler.JoinOrganization(c)
	require.Equal(t, http.StatusCreated, w.Code)

	// Second join for the same (user, organization) pair must fail; the
	// unique index guarantees exactly one surviving row.
	c, w = testContext(http.MethodPost, "/api/memberships/join", body, user.ID)
	env.handler.JoinOrganization(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var count int64
	require.NoError(t, env.db.Model(&models.Membership{}).
		Where("organization_id = ? AND user_id = ?", org.ID, user.ID).
		Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestMembershipHandler_InviteMember_ByLeader(t *testing.T) {
	env := setupMembershipTestEnv(t)

	leader := createTestUser(t, env.db, "leader@example.com", false)
	invited := createTestUser(t, env.db, "invited@example.com", false)

	org, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "Org",
		CreatorID: leader.ID,
	})
	require.NoError(t, err)

	body := mustMarshal(t, map[string]interface{}{
		"organization_id": org.ID,
		"user_id":         invited.ID,
		"role":            "member",
	})

	c, w := testContext(http.MethodPost, "/api/memberships/invite", body, leader.ID)
	env.handler.InviteMember(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var response dto.MembershipDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.OrganizationConfirm)
	require.False(t, response.UserConfirm)
}

func TestMembershipHandler_InviteMember_ByNonLeader(t *testing.T) {
	env := setupMembershipTestEnv(t)

	founder := createTestUser(t, env.db, "founder@example.com", false)
	outsider := createTestUser(t, env.db, "outsider@example.com", false)
	target := createTestUser(t, env.db, "target@example.com", false)

	org, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "Org",
		CreatorID: founder.ID,
	})
	require.NoError(t, err)

	body := mustMarshal(t, map[string]interface{}{
		"organization_id": org.ID,
		"user_id":         target.ID,
	})

	c, w := testContext(http.MethodPost, "/api/memberships/invite", body, outsider.ID)
	env.handler.InviteMember(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestMembershipHandler_ConfirmMembership_OnlyOwnFlag(t *testing.T) {
	env := setupMembershipTestEnv(t)

	leader := createTestUser(t, env.db, "leader@example.com", false)
	member := createTestUser(t, env.db, "member@example.com", false)

	org, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "Org",
		CreatorID: leader.ID,
	})
	require.NoError(t, err)

	row := &models.Membership{
		OrganizationID:      org.ID,
		UserID:              member.ID,
		Role:                models.RoleMember,
		OrganizationConfirm: true,
		UserConfirm:         false,
	}
	require.NoError(t, env.db.Create(row).Error)

	body := mustMarshal(t, map[string]bool{"user_confirm": true})
	c, w := testContext(http.MethodPatch, "/api/memberships/confirm", body, member.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", row.ID)}}
	env.handler.ConfirmMembership(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.MembershipDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.True(t, response.UserConfirm)
	require.True(t, response.OrganizationConfirm)
	require.Equal(t, models.RoleMember, response.Role)
}

func TestMembershipHandler_ConfirmMembership_ByAnotherUser(t *testing.T) {
	env := setupMembershipTestEnv(t)

	leader := createTestUser(t, env.db, "leader@example.com", false)
	member := createTestUser(t, env.db, "member@example.com", false)
	intruder := createTestUser(t, env.db, "intruder@example.com", false)

	org, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "Org",
		CreatorID: leader.ID,
	})
	require.NoError(t, err)

	row := &models.Membership{
		OrganizationID: org.ID,
		UserID:         member.ID,
		Role:           models.RoleMember,
	}
	require.NoError(t, env.db.Create(row).Error)

	body := mustMarshal(t, map[string]bool{"user_confirm": true})
	c, w := testContext(http.MethodPatch, "/api/memberships/confirm", body, intruder.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprintf("%d", row.ID)}}
	env.handler.ConfirmMembership(c)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestMembershipHandler_ListMemberships_OwnOnly(t *testing.T) {
	env := setupMembershipTestEnv(t)

	userA := createTestUser(t, env.db, "a@example.com", false)
	userB := createTestUser(t, env.db, "b@example.com", false)

	_, err := env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "A's Org",
		CreatorID: userA.ID,
	})
	require.NoError(t, err)
	_, err = env.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:      "B's Org",
		CreatorID: userB.ID,
	})
	require.NoError(t, err)

	c, w := testContext(http.MethodGet, "/api/memberships", nil, userA.ID)
	env.handler.ListMemberships(c)
	require.Equal(t, http.StatusOK, w.Code)

	var response map[string][]dto.MembershipWithOrganizationDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	memberships := response["memberships"]
	require.Len(t, memberships, 1)
	require.Equal(t, "A's Org", memberships[0].Organization.Name)
}
