package models

import "time"

// ProviderAvailability is one recurring weekly window in provider-local wall
// clock. DayOfWeek follows 0=Monday .. 6=Sunday.
type ProviderAvailability struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	ProviderID uint `gorm:"index;not null" json:"provider_id"`

	DayOfWeek int    `gorm:"not null" json:"day_of_week"`
	StartTime string `gorm:"size:8;not null" json:"start_time"`
	EndTime   string `gorm:"size:8;not null" json:"end_time"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProviderAvailability) TableName() string {
	return "provider_availability"
}
