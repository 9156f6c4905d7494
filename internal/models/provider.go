package models

import "time"

// Provider is the clinician whose calendar is booked. Timezone is the single
// authoritative zone for all of the provider's availability rows.
type Provider struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"size:100;not null" json:"name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Timezone     string `gorm:"size:64;not null;default:'America/New_York'" json:"timezone"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
