package scheduling

import (
	"context"
	"time"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
)

// Repository is the storage handle every scheduling use case receives.
type Repository interface {
	// -------- Provider / Patient --------
	GetProvider(
		ctx context.Context,
		id uint,
	) (*models.Provider, error)

	UpdateProviderTimezone(
		ctx context.Context,
		providerID uint,
		tz string,
	) error

	GetPatient(
		ctx context.Context,
		id uint,
	) (*models.Patient, error)

	// -------- Availability --------
	ListWeeklyAvailability(
		ctx context.Context,
		providerID uint,
	) ([]models.ProviderAvailability, error)

	// ListAvailabilityExceptions returns exceptions with fromDate <= date <= toDate
	// (YYYY-MM-DD, provider-local).
	ListAvailabilityExceptions(
		ctx context.Context,
		providerID uint,
		fromDate string,
		toDate string,
	) ([]models.AvailabilityException, error)

	ReplaceWeeklyAvailability(
		ctx context.Context,
		providerID uint,
		tz string,
		rows []models.ProviderAvailability,
	) error

	ReplaceAvailabilityExceptions(
		ctx context.Context,
		providerID uint,
		rows []models.AvailabilityException,
	) error

	// -------- Appointments --------

	// ListProviderAppointments returns appointments with start <= datetime <= end.
	ListProviderAppointments(
		ctx context.Context,
		providerID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListPatientAppointments(
		ctx context.Context,
		patientID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// CreateAppointment inserts ap atomically, failing with a slot_taken
	// business error if an overlapping provider appointment appeared.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetAppointmentForProvider(
		ctx context.Context,
		appointmentID uint,
		providerID uint,
	) (*models.Appointment, error)

	DeleteAppointment(
		ctx context.Context,
		appointmentID uint,
	) error
}
