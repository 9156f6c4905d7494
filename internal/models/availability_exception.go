package models

import "time"

// AvailabilityException overrides the weekly schedule on one provider-local
// date. With IsAvailable=false and no times the whole date is blocked.
type AvailabilityException struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ProviderID    uint   `gorm:"index:idx_exception_provider_date;not null" json:"provider_id"`
	ExceptionDate string `gorm:"size:10;index:idx_exception_provider_date;not null" json:"exception_date"`

	IsAvailable bool    `gorm:"not null;default:false" json:"is_available"`
	StartTime   *string `gorm:"size:8" json:"start_time,omitempty"`
	EndTime     *string `gorm:"size:8" json:"end_time,omitempty"`
	Reason      string  `gorm:"size:255" json:"reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (AvailabilityException) TableName() string {
	return "provider_availability_exceptions"
}

func (e AvailabilityException) HasTimes() bool {
	return e.StartTime != nil && e.EndTime != nil &&
		*e.StartTime != "" && *e.EndTime != ""
}

// BlocksWholeDay reports a full-date block.
func (e AvailabilityException) BlocksWholeDay() bool {
	return !e.IsAvailable && !e.HasTimes()
}
