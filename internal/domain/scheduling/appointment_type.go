package scheduling

import "github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"

type AppointmentType string

const (
	TypeInitialConsultation AppointmentType = "initial_consultation"
	TypeFollowUp            AppointmentType = "follow_up"
	TypeMedicationReview    AppointmentType = "medication_review"
	TypeUrgent              AppointmentType = "urgent"
)

// ParseAppointmentType defaults an empty value to an initial consultation.
func ParseAppointmentType(v string) (AppointmentType, error) {
	switch AppointmentType(v) {
	case "":
		return TypeInitialConsultation, nil
	case TypeInitialConsultation, TypeFollowUp, TypeMedicationReview, TypeUrgent:
		return AppointmentType(v), nil
	}
	return "", httperr.ErrBusiness(CodeInvalidType)
}
