package dto

import (
	"time"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
)

type AppointmentListDTO struct {
	ID          uint      `json:"id"`
	ProviderID  uint      `json:"provider_id"`
	PatientID   uint      `json:"patient_id"`
	PatientName string    `json:"patient_name,omitempty"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Duration    int       `json:"duration"`
	Type        string    `json:"type"`
	Reason      string    `json:"reason,omitempty"`
}

func FromAppointment(ap models.Appointment) AppointmentListDTO {
	return AppointmentListDTO{
		ID:          ap.ID,
		ProviderID:  ap.ProviderID,
		PatientID:   ap.PatientID,
		PatientName: ap.Patient.Name,
		StartTime:   ap.Datetime.UTC(),
		EndTime:     ap.End().UTC(),
		Duration:    ap.Duration,
		Type:        ap.Type,
		Reason:      ap.Reason,
	}
}

func FromAppointments(in []models.Appointment) []AppointmentListDTO {
	out := make([]AppointmentListDTO, 0, len(in))
	for _, ap := range in {
		out = append(out, FromAppointment(ap))
	}
	return out
}
