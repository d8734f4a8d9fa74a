package models

import "time"

type OrganizerRole string

const (
	OrganizerRoleLeader    OrganizerRole = "leader"
	OrganizerRoleManager   OrganizerRole = "manager"
	OrganizerRoleExecutor  OrganizerRole = "executor"
	OrganizerRoleVolunteer OrganizerRole = "volunteer"
)

// IsPrivileged reports whether the organizer role grants leadership over
// the event. Only the leader role does.
func (r OrganizerRole) IsPrivileged() bool {
	return r == OrganizerRoleLeader
}

type EventOrganizer struct {
	ID        uint64        `gorm:"primarykey" json:"id"`
	EventID   uint64        `gorm:"not null;uniqueIndex:idx_event_organizers_event_user" json:"event_id"`
	UserID    uint64        `gorm:"not null;uniqueIndex:idx_event_organizers_event_user" json:"user_id"`
	Role      OrganizerRole `gorm:"type:varchar(64);not null;default:'volunteer'" json:"role"`
	Grant     uint16        `gorm:"not null;default:0" json:"grant"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
