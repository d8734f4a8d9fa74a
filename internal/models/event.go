package models

import (
	"time"

	"gorm.io/gorm"
)

type EventStatus string

const (
	EventStatusNew       EventStatus = "new"
	EventStatusInRelease EventStatus = "in_release"
	EventStatusVerify    EventStatus = "verify"
	EventStatusDenied    EventStatus = "denied"
)

type EventLevel string

const (
	EventLevelUniversity    EventLevel = "university"
	EventLevelRegional      EventLevel = "regional"
	EventLevelCountry       EventLevel = "country"
	EventLevelInternational EventLevel = "international"
)

type Event struct {
	ID             uint64         `gorm:"primarykey" json:"id"`
	Name           string         `gorm:"type:varchar(64);not null" json:"name"`
	OrganizationID uint64         `gorm:"not null" json:"organization_id"`
	Date           time.Time      `gorm:"not null" json:"date"`
	DateEnd        time.Time      `json:"date_end"`
	Auditorium     string         `gorm:"type:varchar(64)" json:"auditorium"`
	Level          EventLevel     `gorm:"type:varchar(64);not null;default:'university'" json:"level"`
	Status         EventStatus    `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization     `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Organizers   []EventOrganizer `gorm:"foreignKey:EventID" json:"organizers,omitempty"`
	Guests       []EventGuest     `gorm:"foreignKey:EventID" json:"guests,omitempty"`
	Categories   []EventCategory  `gorm:"many2many:event_category_assignments" json:"categories,omitempty"`
	Types        []EventType      `gorm:"many2many:event_type_assignments" json:"types,omitempty"`
}
