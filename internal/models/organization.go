package models

import (
	"time"

	"gorm.io/gorm"
)

type OrganizationStatus string

const (
	OrganizationStatusNew    OrganizationStatus = "new"
	OrganizationStatusVerify OrganizationStatus = "verify"
	OrganizationStatusDenied OrganizationStatus = "denied"
)

type Organization struct {
	ID          uint64             `gorm:"primarykey" json:"id"`
	Name        string             `gorm:"type:varchar(64);not null" json:"name"`
	Description string             `gorm:"type:text" json:"description"`
	Mission     string             `gorm:"type:text" json:"mission"`
	Goal        string             `gorm:"type:text" json:"goal"`
	Status      OrganizationStatus `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`
	DeletedAt   gorm.DeletedAt     `gorm:"index" json:"-"`

	// Relations
	Members []Membership `gorm:"foreignKey:OrganizationID" json:"members,omitempty"`
	Events  []Event      `gorm:"foreignKey:OrganizationID" json:"events,omitempty"`
}
