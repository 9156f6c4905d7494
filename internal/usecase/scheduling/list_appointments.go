package scheduling

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/dto"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
)

type ListAppointmentsByDate struct {
	repo domain.Repository
}

func NewListAppointmentsByDate(
	repo domain.Repository,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo: repo,
	}
}

// Execute lists the provider's appointments starting on date (YYYY-MM-DD)
// in the provider's own timezone.
func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	providerID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(provider.Timezone)

	start, err := timezone.ParseDate(date, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date")
	}
	end := start.AddDate(0, 0, 1)

	appointments, err := uc.repo.ListProviderAppointments(ctx, providerID, start, end)
	if err != nil {
		return nil, err
	}

	sameDay := make([]models.Appointment, 0, len(appointments))
	for _, ap := range appointments {
		if ap.Datetime.Before(end) {
			sameDay = append(sameDay, ap)
		}
	}

	return dto.FromAppointments(sameDay), nil
}

// PatientLookahead bounds the "upcoming" patient listing.
const PatientLookahead = 365 * 24 * time.Hour

type ListPatientAppointments struct {
	repo domain.Repository
	now  func() time.Time
}

func NewListPatientAppointments(
	repo domain.Repository,
) *ListPatientAppointments {
	return &ListPatientAppointments{
		repo: repo,
		now:  time.Now,
	}
}

// Execute lists the patient's upcoming appointments. The caller must present
// the email on file; a missing or wrong email looks exactly like an unknown
// patient so ids cannot be probed.
func (uc *ListPatientAppointments) Execute(
	ctx context.Context,
	patientID uint,
	email string,
) ([]dto.AppointmentListDTO, error) {

	patient, err := uc.repo.GetPatient(ctx, patientID)
	if err != nil {
		return nil, err
	}

	email = strings.TrimSpace(email)
	if email == "" || !strings.EqualFold(email, strings.TrimSpace(patient.Email)) {
		return nil, httperr.ErrBusiness(domain.CodePatientNotFound)
	}

	now := uc.now().UTC()
	appointments, err := uc.repo.ListPatientAppointments(ctx, patientID, now, now.Add(PatientLookahead))
	if err != nil {
		return nil, err
	}

	return dto.FromAppointments(appointments), nil
}
