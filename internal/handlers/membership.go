package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/solo-platform/community-api/internal/dto"
	apierrors "github.com/solo-platform/community-api/internal/errors"
	"github.com/solo-platform/community-api/internal/middleware"
	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/services"
)

// MembershipHandler coordinates membership HTTP handlers: the user-side
// join/confirm endpoints and the organization-side invite/review
// endpoints.
type MembershipHandler struct {
	membershipService *services.MembershipService
}

// NewMembershipHandler creates a new MembershipHandler.
func NewMembershipHandler(membershipService *services.MembershipService) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
	}
}

// JoinOrganization creates a membership on the user's initiative: role is
// fixed to member, user_confirm is set, organization_confirm is not.
func (h *MembershipHandler) JoinOrganization(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type JoinRequest struct {
		OrganizationID uint64 `json:"organization_id" binding:"required"`
	}

	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.membershipService.JoinOrganization(userID, req.OrganizationID)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMembershipDTO(*member))
}

// InviteMember creates a membership on the organization's initiative:
// caller must be a leader/admin of the target organization.
func (h *MembershipHandler) InviteMember(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type InviteRequest struct {
		OrganizationID uint64                  `json:"organization_id" binding:"required"`
		UserID         uint64                  `json:"user_id" binding:"required"`
		Role           models.OrganizationRole `json:"role"`
	}

	var req InviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.membershipService.InviteMember(actor, services.InviteMemberInput{
		OrganizationID: req.OrganizationID,
		UserID:         req.UserID,
		Role:           req.Role,
	})
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMembershipDTO(*member))
}

// ListMemberships lists the caller's memberships with their organizations.
func (h *MembershipHandler) ListMemberships(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	memberships, err := h.membershipService.ListMembershipsForUser(actor)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch memberships")
		return
	}

	membershipDTOs := make([]dto.MembershipWithOrganizationDTO, len(memberships))
	for i, m := range memberships {
		membershipDTOs[i] = dto.ToMembershipWithOrganizationDTO(m)
	}

	c.JSON(http.StatusOK, gin.H{
		"memberships": membershipDTOs,
	})
}

// GetMembership returns a single membership row.
func (h *MembershipHandler) GetMembership(c *gin.Context) {
	membershipID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid membership ID")
		return
	}

	member, err := h.membershipService.GetMembership(membershipID)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipDTO(*member))
}

// ConfirmMembership is the user-side update: only the user_confirm flag
// may change.
func (h *MembershipHandler) ConfirmMembership(c *gin.Context) {
	membershipID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid membership ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ConfirmRequest struct {
		UserConfirm *bool `json:"user_confirm" binding:"required"`
	}

	var req ConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.membershipService.ConfirmMembership(actor, membershipID, *req.UserConfirm)
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipDTO(*member))
}

// ReviewMembership is the organization-side update: role and
// organization_confirm may change; the user's flag stays untouched.
func (h *MembershipHandler) ReviewMembership(c *gin.Context) {
	membershipID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid membership ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type ReviewRequest struct {
		Role                *models.OrganizationRole `json:"role"`
		OrganizationConfirm *bool                    `json:"organization_confirm"`
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	member, err := h.membershipService.ReviewMembership(actor, membershipID, services.ReviewMembershipInput{
		Role:                req.Role,
		OrganizationConfirm: req.OrganizationConfirm,
	})
	if err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMembershipDTO(*member))
}

// DeleteMembership removes a membership row.
func (h *MembershipHandler) DeleteMembership(c *gin.Context) {
	membershipID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid membership ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	if err := h.membershipService.RemoveMembership(actor, membershipID); err != nil {
		respondMembershipError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Membership removed successfully",
	})
}

func respondMembershipError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrMembershipNotFound),
		errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrAlreadyMember):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNotOrganizationLeader),
		errors.Is(err, services.ErrNotMembershipOwner):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
