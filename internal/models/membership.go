package models

import "time"

type OrganizationRole string

const (
	RoleMember OrganizationRole = "member"
	RoleLeader OrganizationRole = "leader"
	RoleAdmin  OrganizationRole = "admin"
)

// IsPrivileged reports whether the role grants elevated privilege over the
// organization. Every privilege check goes through this predicate so the
// leader/admin set cannot drift between call sites.
func (r OrganizationRole) IsPrivileged() bool {
	return r == RoleLeader || r == RoleAdmin
}

// Membership links a user to an organization. The two confirmation flags
// record each side's acknowledgment independently; no composite "active"
// status is derived from them.
type Membership struct {
	ID                  uint64           `gorm:"primarykey" json:"id"`
	OrganizationID      uint64           `gorm:"not null;uniqueIndex:idx_memberships_org_user" json:"organization_id"`
	UserID              uint64           `gorm:"not null;uniqueIndex:idx_memberships_org_user" json:"user_id"`
	Role                OrganizationRole `gorm:"type:varchar(10);not null;default:'member'" json:"role"`
	OrganizationConfirm bool             `gorm:"not null;default:false" json:"organization_confirm"`
	UserConfirm         bool             `gorm:"not null;default:false" json:"user_confirm"`
	CreatedAt           time.Time        `json:"created_at"`
	UpdatedAt           time.Time        `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	User         User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
