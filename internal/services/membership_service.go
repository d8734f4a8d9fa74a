package services

import (
	"errors"
	"fmt"

	"github.com/solo-platform/community-api/internal/authz"
	"github.com/solo-platform/community-api/internal/models"
	"github.com/solo-platform/community-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrMembershipNotFound = errors.New("membership not found")
	ErrAlreadyMember      = errors.New("user is already a member of this organization")
	ErrNotMembershipOwner = errors.New("membership belongs to another user")
)

// MembershipService implements the confirmation handshake between users
// and organizations. Each side may only write its own fields: the
// organization sets role and organization_confirm, the user sets
// user_confirm. Nothing derives an "active" state when both flags are
// true.
type MembershipService struct {
	orgRepo  repository.OrganizationRepository
	resolver *authz.Resolver
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(orgRepo repository.OrganizationRepository, resolver *authz.Resolver) *MembershipService {
	return &MembershipService{
		orgRepo:  orgRepo,
		resolver: resolver,
	}
}

// JoinOrganization is the "by user" creation path: any authenticated user
// may request to join. Role is fixed to member, the user side is confirmed
// by the act of requesting, the organization side is not.
func (s *MembershipService) JoinOrganization(userID, orgID uint64) (*models.Membership, error) {
	if _, err := s.orgRepo.FindByID(orgID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	member := &models.Membership{
		OrganizationID:      orgID,
		UserID:              userID,
		Role:                models.RoleMember,
		OrganizationConfirm: false,
		UserConfirm:         true,
	}

	if err := s.orgRepo.AddMember(member); err != nil {
		// The unique index on (organization_id, user_id) is the authority
		// under concurrent joins.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

// InviteMemberInput holds parameters for the "by organization" creation
// path.
type InviteMemberInput struct {
	OrganizationID uint64
	UserID         uint64
	Role           models.OrganizationRole
}

// InviteMember is the "by organization" creation path: only a leader/admin
// of the target organization (or staff) may add members. The organization
// side is confirmed by the act of creation, the user side is not.
func (s *MembershipService) InviteMember(actor *models.User, input InviteMemberInput) (*models.Membership, error) {
	org, err := s.orgRepo.FindByID(input.OrganizationID)
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

	role := input.Role
	if role == "" {
		role = models.RoleMember
	}

	member := &models.Membership{
		OrganizationID:      input.OrganizationID,
		UserID:              input.UserID,
		Role:                role,
		OrganizationConfirm: true,
		UserConfirm:         false,
	}

	if err := s.orgRepo.AddMember(member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return member, nil
}

// ConfirmMembership is the "by user" update path: the member may flip
// their own user_confirm flag and nothing else.
func (s *MembershipService) ConfirmMembership(actor *models.User, membershipID uint64, userConfirm bool) (*models.Membership, error) {
	member, err := s.findMembership(membershipID)
	if err != nil {
		return nil, err
	}

	if member.UserID != actor.ID && !actor.IsStaff {
		return nil, ErrNotMembershipOwner
	}

	member.UserConfirm = userConfirm
	if err := s.orgRepo.UpdateMember(member); err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}

	return member, nil
}

// ReviewMembershipInput holds the fields the organization side may change.
// Nil fields are left unchanged.
type ReviewMembershipInput struct {
	Role                *models.OrganizationRole
	OrganizationConfirm *bool
}

// ReviewMembership is the "by organization" update path: a leader/admin of
// the membership's organization may change role and organization_confirm.
// The user's confirmation flag stays untouched.
func (s *MembershipService) ReviewMembership(actor *models.User, membershipID uint64, input ReviewMembershipInput) (*models.Membership, error) {
	member, err := s.findMembership(membershipID)
	if err != nil {
		return nil, err
	}

	allowed, err := s.resolver.IsLeaderOrAdmin(actor, authz.ForMembership(member))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve permissions: %w", err)
	}
	if !allowed {
		return nil, ErrNotOrganizationLeader
	}

	if input.Role != nil {
		member.Role = *input.Role
	}
	if input.OrganizationConfirm != nil {
		member.OrganizationConfirm = *input.OrganizationConfirm
	}

	if err := s.orgRepo.UpdateMember(member); err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}

	return member, nil
}

// RemoveMembership deletes a membership row. Permitted for a leader/admin
// of the organization, the member themself, or staff.
func (s *MembershipService) RemoveMembership(actor *models.User, membershipID uint64) error {
	member, err := s.findMembership(membershipID)
	if err != nil {
		return err
	}

	if member.UserID != actor.ID {
		allowed, err := s.resolver.IsLeaderOrAdmin(actor, authz.ForMembership(member))
		if err != nil {
			return fmt.Errorf("failed to resolve permissions: %w", err)
		}
		if !allowed {
			return ErrNotOrganizationLeader
		}
	}

	if err := s.orgRepo.RemoveMember(membershipID); err != nil {
		return fmt.Errorf("failed to remove membership: %w", err)
	}

	return nil
}

// GetMembership returns a membership row.
func (s *MembershipService) GetMembership(membershipID uint64) (*models.Membership, error) {
	return s.findMembership(membershipID)
}

// ListMembershipsForUser lists the actor's own membership rows.
func (s *MembershipService) ListMembershipsForUser(actor *models.User) ([]models.Membership, error) {
	memberships, err := s.orgRepo.ListMembersByUserID(actor.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return memberships, nil
}

func (s *MembershipService) findMembership(id uint64) (*models.Membership, error) {
	member, err := s.orgRepo.FindMembership(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMembershipNotFound
		}
		return nil, fmt.Errorf("failed to find membership: %w", err)
	}
	return member, nil
}
