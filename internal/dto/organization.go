package dto

import (
	"time"

	"github.com/solo-platform/community-api/internal/models"
)

// OrganizationDTO represents an organization in API responses
type OrganizationDTO struct {
	ID          uint64                    `json:"id"`
	Name        string                    `json:"name"`
	Description string                    `json:"description"`
	Mission     string                    `json:"mission"`
	Goal        string                    `json:"goal"`
	Status      models.OrganizationStatus `json:"status"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// OrganizationMemberDTO represents a member in an organization
type OrganizationMemberDTO struct {
	MembershipID        uint64                  `json:"membership_id"`
	User                UserDTO                 `json:"user"`
	Role                models.OrganizationRole `json:"role"`
	OrganizationConfirm bool                    `json:"organization_confirm"`
	UserConfirm         bool                    `json:"user_confirm"`
	JoinedAt            time.Time               `json:"joined_at"`
}

// OrganizationDetailDTO represents detailed organization information
type OrganizationDetailDTO struct {
	OrganizationDTO
	Members []OrganizationMemberDTO `json:"members"`
}

// ToOrganizationDTO converts an organization to DTO
func ToOrganizationDTO(org models.Organization) OrganizationDTO {
	return OrganizationDTO{
		ID:          org.ID,
		Name:        org.Name,
		Description: org.Description,
		Mission:     org.Mission,
		Goal:        org.Goal,
		Status:      org.Status,
		CreatedAt:   org.CreatedAt,
	}
}

// ToOrganizationMemberDTO converts a member to DTO
func ToOrganizationMemberDTO(member models.Membership) OrganizationMemberDTO {
	return OrganizationMemberDTO{
		MembershipID:        member.ID,
		User:                ToUserDTO(member.User),
		Role:                member.Role,
		OrganizationConfirm: member.OrganizationConfirm,
		UserConfirm:         member.UserConfirm,
		JoinedAt:            member.CreatedAt,
	}
}

// ToOrganizationDetailDTO converts organization with members to detailed DTO
func ToOrganizationDetailDTO(org models.Organization, members []models.Membership) OrganizationDetailDTO {
	memberDTOs := make([]OrganizationMemberDTO, len(members))
	for i, member := range members {
		memberDTOs[i] = ToOrganizationMemberDTO(member)
	}

	return OrganizationDetailDTO{
		OrganizationDTO: ToOrganizationDTO(org),
		Members:         memberDTOs,
	}
}
