package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProviderID uint     `gorm:"uniqueIndex:idx_appointment_provider_slot;not null" json:"provider_id"`
	Provider   Provider `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	PatientID uint    `gorm:"index;not null" json:"patient_id"`
	Patient   Patient `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	// Datetime is always stored in UTC.
	Datetime time.Time `gorm:"uniqueIndex:idx_appointment_provider_slot;not null" json:"datetime"`
	Duration int       `gorm:"not null" json:"duration"`

	Type   string `gorm:"size:40;default:'initial_consultation'" json:"type"`
	Reason string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Appointment) End() time.Time {
	return a.Datetime.Add(time.Duration(a.Duration) * time.Minute)
}
