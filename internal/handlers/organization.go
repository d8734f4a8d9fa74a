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
	"github.com/solo-platform/community-api/internal/utils"
)

// OrganizationHandler coordinates organization HTTP handlers.
type OrganizationHandler struct {
	orgService *services.OrganizationService
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(orgService *services.OrganizationService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService: orgService,
	}
}

// CreateOrganization creates a new organization
func (h *OrganizationHandler) CreateOrganization(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateOrgRequest struct {
		Name        string `json:"name" binding:"required,max=64"`
		Description string `json:"description"`
		Mission     string `json:"mission"`
		Goal        string `json:"goal"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.CreateOrganization(services.CreateOrganizationInput{
		Name:        req.Name,
		Description: req.Description,
		Mission:     req.Mission,
		Goal:        req.Goal,
		CreatorID:   userID,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrganizationDTO(*org))
}

// ListOrganizations returns organizations with pagination. Public read.
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	orgs, total, err := h.orgService.ListOrganizations(params)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch organizations")
		return
	}

	orgDTOs := make([]dto.OrganizationDTO, len(orgs))
	for i, org := range orgs {
		orgDTOs[i] = dto.ToOrganizationDTO(org)
	}

	c.JSON(http.StatusOK, gin.H{
		"organizations": orgDTOs,
		"pagination": utils.PaginationResponse{
			Page:  params.Page,
			Limit: params.Limit,
			Total: total,
		},
	})
}

// GetOrganization returns organization details with its member list.
// Public read; retrieving the member list twice without mutation yields
// identical results.
func (h *OrganizationHandler) GetOrganization(c *gin.Context) {
	orgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}

	org, members, err := h.orgService.GetOrganizationWithMembers(orgID)
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDetailDTO(*org, members))
}

// UpdateOrganization updates organization fields (full or partial)
func (h *OrganizationHandler) UpdateOrganization(c *gin.Context) {
	orgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}

	actor := middleware.CurrentUser(c)
	if actor == nil {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type UpdateOrgRequest struct {
		Name        *string                    `json:"name"`
		Description *string                    `json:"description"`
		Mission     *string                    `json:"mission"`
		Goal        *string                    `json:"goal"`
		Status      *models.OrganizationStatus `json:"status"`
	}

	var req UpdateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.orgService.UpdateOrganization(actor, orgID, services.UpdateOrganizationInput{
		Name:        req.Name,
		Description: req.Description,
		Mission:     req.Mission,
		Goal:        req.Goal,
		Status:      req.Status,
	})
	if err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrganizationDTO(*org))
}

// DeleteOrganization deletes an organization. Staff only (route gate).
func (h *OrganizationHandler) DeleteOrganization(c *gin.Context) {
	orgID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid organization ID")
		return
	}

	if err := h.orgService.DeleteOrganization(orgID); err != nil {
		respondOrganizationError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Organization deleted successfully",
	})
}

func respondOrganizationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrOrganizationNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidOrganizationName):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNotOrganizationLeader):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
