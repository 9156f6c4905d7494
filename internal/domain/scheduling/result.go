package scheduling

import "github.com/BruksfildServices01/telehealth-scheduler/internal/models"

// ===============================
// Result codes
// ===============================

const (
	CodePastTime            = "past_time"
	CodeInvalidDuration     = "invalid_duration"
	CodeInvalidType         = "invalid_appointment_type"
	CodeProviderConflict    = "provider_conflict"
	CodePatientConflict     = "patient_conflict"
	CodeNoAvailability      = "no_availability"
	CodeOutsideAvailability = "outside_availability"
	CodeDateBlocked         = "date_blocked"
	CodeTimeBlocked         = "time_blocked"
	CodeValidationFailed    = "validation_failed"
	CodeSlotTaken           = "slot_taken"
	CodeProviderNotFound    = "provider_not_found"
	CodePatientNotFound     = "patient_not_found"
	CodeAppointmentNotFound = "appointment_not_found"
)

var messages = map[string]string{
	CodePastTime:            "Appointment must be scheduled for a future time",
	CodeInvalidDuration:     "Appointment duration must be a positive number of minutes",
	CodeInvalidType:         "Unknown appointment type",
	CodeProviderConflict:    "The provider already has an appointment at this time. Please choose another time.",
	CodePatientConflict:     "You already have an appointment that overlaps this time.",
	CodeNoAvailability:      "Provider has no availability configured",
	CodeOutsideAvailability: "The requested time is outside the provider's available hours",
	CodeDateBlocked:         "The provider is unavailable on this date",
	CodeTimeBlocked:         "The provider is unavailable at this time",
	CodeValidationFailed:    "Unable to validate appointment. Please try again.",
	CodeSlotTaken:           "This time slot is no longer available. Please select another time.",
	CodeProviderNotFound:    "Provider not found",
	CodePatientNotFound:     "Patient not found",
	CodeAppointmentNotFound: "Appointment not found",
}

// Message returns the end-user text for a result code.
func Message(code string) string {
	if m, ok := messages[code]; ok {
		return m
	}
	return messages[CodeValidationFailed]
}

// ValidationResult is the outcome of a full booking validation. Callers show
// Error to the end user as-is.
type ValidationResult struct {
	IsValid                bool                `json:"is_valid"`
	Code                   string              `json:"code,omitempty"`
	Error                  string              `json:"error,omitempty"`
	ConflictingAppointment *models.Appointment `json:"conflicting_appointment,omitempty"`
}

func Valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

func Invalid(code string, conflicting *models.Appointment) ValidationResult {
	return ValidationResult{
		Code:                   code,
		Error:                  Message(code),
		ConflictingAppointment: conflicting,
	}
}

// SlotAvailability is the outcome of the last-moment slot re-check.
type SlotAvailability struct {
	IsAvailable            bool                `json:"is_available"`
	Code                   string              `json:"code,omitempty"`
	Error                  string              `json:"error,omitempty"`
	ConflictingAppointment *models.Appointment `json:"conflicting_appointment,omitempty"`
}

func Unavailable(code string, conflicting *models.Appointment) SlotAvailability {
	return SlotAvailability{
		Code:                   code,
		Error:                  Message(code),
		ConflictingAppointment: conflicting,
	}
}
