package models

import "time"

// EventGuest is a plain attendance record. Uniqueness per (event, user)
// prevents duplicate registrations.
type EventGuest struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	EventID   uint64    `gorm:"not null;uniqueIndex:idx_event_guests_event_user" json:"event_id"`
	UserID    uint64    `gorm:"not null;uniqueIndex:idx_event_guests_event_user" json:"user_id"`
	CreatedAt time.Time `json:"created_at"`

	// Relations
	Event Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
