package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/solo-platform/community-api/internal/authz"
	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/repository"
	"github.com/solo-platform/community-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrOrganizationNotFound    = errors.New("organization not found")
	ErrInvalidOrganizationName = errors.New("organization name cannot be empty")
	ErrNotOrganizationLeader   = errors.New("not a leader of this organization")
)

// OrganizationService provides business logic for organization operations.
type OrganizationService struct {
	orgRepo  repository.OrganizationRepository
	resolver *authz.Resolver
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(orgRepo repository.OrganizationRepository, resolver *authz.Resolver) *OrganizationService {
	return &OrganizationService{
		orgRepo:  orgRepo,
		resolver: resolver,
	}
}

// CreateOrganizationInput represents parameters to create a new organization.
type CreateOrganizationInput struct {
	Name        string
	Description string
	Mission     string
	Goal        string
	CreatorID   uint64
}

// CreateOrganization creates an organization and grants the creator a
// leader membership in the same transaction, so every organization has at
// least one privileged user from the start.
func (s *OrganizationService) CreateOrganization(input CreateOrganizationInput) (*models.Organization, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrInvalidOrganizationName
	}

	org := &models.Organization{
		Name:        input.Name,
		Description: input.Description,
		Mission:     input.Mission,
		Goal:        input.Goal,
		Status:      models.OrganizationStatusNew,
	}

	member := &models.Membership{
		UserID:              input.CreatorID,
		Role:                models.RoleLeader,
		OrganizationConfirm: true,
		UserConfirm:         true,
	}

	if err := s.orgRepo.CreateWithLeader(org, member); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	return org, nil
}

// ListOrganizations returns organizations with pagination.
func (s *OrganizationService) ListOrganizations(params utils.PaginationParams) ([]models.Organization, int64, error) {
	orgs, total, err := s.orgRepo.List(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list organizations: %w", err)
	}
	return orgs, total, nil
}

// GetOrganizationWithMembers returns an organization and all of its members.
func (s *OrganizationService) GetOrganizationWithMembers(orgID uint64) (*models.Organization, []models.Membership, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrOrganizationNotFound
		}
		return nil, nil, fmt.Errorf("failed to find organization: %w", err)
	}

	members, err := s.orgRepo.ListMembers(orgID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list organization members: %w", err)
	}

	return org, members, nil
}

// UpdateOrganizationInput holds updatable organization fields. Nil fields
// are left unchanged (partial update semantics).
type UpdateOrganizationInput struct {
	Name        *string
	Description *string
	Mission     *string
	Goal        *string
	Status      *models.OrganizationStatus
}

// UpdateOrganization updates an organization. The actor must be a
// leader/admin of the organization or staff.
func (s *OrganizationService) UpdateOrganization(actor *models.User, orgID uint64, input UpdateOrganizationInput) (*models.Organization, error) {
	org, err := s.orgRepo.FindByID(orgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	allowed, err := s.resolver.IsLeaderOrAdmin(actor, authz.ForOrganization(org))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions: %w", err)
	}
	if !allowed {
		return nil, ErrNotOrganizationLeader
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrInvalidOrganizationName
		}
		org.Name = *input.Name
	}
	if input.Description != nil {
		org.Description = *input.Description
	}
	if input.Mission != nil {
		org.Mission = *input.Mission
	}
	if input.Goal != nil {
		org.Goal = *input.Goal
	}
	if input.Status != nil {
		org.Status = *input.Status
	}

	if err := s.orgRepo.Update(org); err != nil {
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	return org, nil
}

// DeleteOrganization removes an organization with its memberships and
// events. Reserved for staff; the route enforces it.
func (s *OrganizationService) DeleteOrganization(orgID uint64) error {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrganizationNotFound
		}
		return fmt.Errorf("failed to find organization: %w", err)
	}

	if err := s.orgRepo.Delete(orgID); err != nil {
		return fmt.Errorf("failed to delete organization: %w", err)
	}

	return nil
}
