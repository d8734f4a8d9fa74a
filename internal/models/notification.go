package models

import "time"

// Notification is a one-way message to a user. Only the recipient (or
// staff) may flip the viewed flag.
type Notification struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Link      string    `gorm:"type:varchar(255)" json:"link"`
	Viewed    bool      `gorm:"not null;default:false" json:"viewed"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
