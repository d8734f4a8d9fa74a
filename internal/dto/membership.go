package dto

import (
	"time"

	"github.com/solo-platform/community-api/internal/models"
)

// MembershipDTO represents a membership row in API responses
type MembershipDTO struct {
	ID                  uint64                  `json:"id"`
	OrganizationID      uint64                  `json:"organization_id"`
	UserID              uint64                  `json:"user_id"`
	Role                models.OrganizationRole `json:"role"`
	OrganizationConfirm bool                    `json:"organization_confirm"`
	UserConfirm         bool                    `json:"user_confirm"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}

// MembershipWithOrganizationDTO includes the organization the membership
// refers to
type MembershipWithOrganizationDTO struct {
	MembershipDTO
	Organization OrganizationDTO `json:"organization"`
}

// ToMembershipDTO converts a membership to DTO
func ToMembershipDTO(member models.Membership) MembershipDTO {
	return MembershipDTO{
		ID:                  member.ID,
		OrganizationID:      member.OrganizationID,
		UserID:              member.UserID,
		Role:                member.Role,
		OrganizationConfirm: member.OrganizationConfirm,
		UserConfirm:         member.UserConfirm,
		CreatedAt:           member.CreatedAt,
		UpdatedAt:           member.UpdatedAt,
	}
}

// ToMembershipWithOrganizationDTO converts a membership with its preloaded
// organization to DTO
func ToMembershipWithOrganizationDTO(member models.Membership) MembershipWithOrganizationDTO {
	return MembershipWithOrganizationDTO{
		MembershipDTO: ToMembershipDTO(member),
		Organization:  ToOrganizationDTO(member.Organization),
	}
}
