package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/metrics"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
)

type ValidateAppointmentInput struct {
	ProviderID      uint
	PatientID       uint
	Datetime        time.Time
	DurationMinutes int
	BufferMinutes   int
}

type ValidateAppointmentCreation struct {
	repo    domain.Repository
	policy  domain.Policy
	logger  *zap.Logger
	metrics *metrics.SchedulingMetrics
	now     func() time.Time
}

func NewValidateAppointmentCreation(
	repo domain.Repository,
	policy domain.Policy,
	logger *zap.Logger,
	m *metrics.SchedulingMetrics,
) *ValidateAppointmentCreation {
	return &ValidateAppointmentCreation{
		repo:    repo,
		policy:  policy.Normalize(),
		logger:  logging.OrNop(logger),
		metrics: m,
		now:     time.Now,
	}
}

// Execute runs the full write-time check and stops at the first failure:
// past time, provider conflict, patient conflict, then availability.
func (uc *ValidateAppointmentCreation) Execute(
	ctx context.Context,
	in ValidateAppointmentInput,
) domain.ValidationResult {

	res := uc.validate(ctx, in)
	uc.metrics.ObserveValidation("booking", res.Code)
	return res
}

func (uc *ValidateAppointmentCreation) validate(
	ctx context.Context,
	in ValidateAppointmentInput,
) domain.ValidationResult {

	log := uc.logger.With(
		zap.Uint("provider_id", in.ProviderID),
		zap.Uint("patient_id", in.PatientID),
		zap.Time("datetime", in.Datetime),
	)

	if in.DurationMinutes <= 0 {
		return domain.Invalid(domain.CodeInvalidDuration, nil)
	}

	start := in.Datetime.UTC()
	if !start.After(uc.now()) {
		return domain.Invalid(domain.CodePastTime, nil)
	}

	buffer := in.BufferMinutes
	if buffer < 0 {
		buffer = uc.policy.BufferMinutes
	}

	from := start.Add(-uc.policy.ValidationWindow)
	to := start.Add(uc.policy.ValidationWindow)

	// --------------------------------------------------
	// Provider conflicts
	// --------------------------------------------------
	providerAppts, err := uc.repo.ListProviderAppointments(ctx, in.ProviderID, from, to)
	if err != nil {
		return uc.fail(log, "list_provider_appointments", err)
	}
	if c := domain.CheckConflict(start, in.DurationMinutes, providerAppts, buffer); c.HasConflict {
		return domain.Invalid(domain.CodeProviderConflict, c.ConflictingAppointment)
	}

	// --------------------------------------------------
	// Patient conflicts
	// --------------------------------------------------
	patientAppts, err := uc.repo.ListPatientAppointments(ctx, in.PatientID, from, to)
	if err != nil {
		return uc.fail(log, "list_patient_appointments", err)
	}
	if c := domain.CheckConflict(start, in.DurationMinutes, patientAppts, buffer); c.HasConflict {
		return domain.Invalid(domain.CodePatientConflict, c.ConflictingAppointment)
	}

	// --------------------------------------------------
	// Availability
	// --------------------------------------------------
	weekly, err := uc.repo.ListWeeklyAvailability(ctx, in.ProviderID)
	if err != nil {
		return uc.fail(log, "list_weekly_availability", err)
	}
	if len(weekly) == 0 {
		return domain.Invalid(domain.CodeNoAvailability, nil)
	}

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		if httperr.IsBusiness(err, domain.CodeProviderNotFound) {
			return domain.Invalid(domain.CodeProviderNotFound, nil)
		}
		return uc.fail(log, "get_provider", err)
	}

	loc := timezone.Location(provider.Timezone)
	date := timezone.DateIn(start, loc)

	exceptions, err := uc.repo.ListAvailabilityExceptions(ctx, in.ProviderID, date, date)
	if err != nil {
		return uc.fail(log, "list_availability_exceptions", err)
	}

	schedule := domain.NewSchedule(loc, weekly, exceptions)
	if code := domain.CheckAvailability(schedule, domain.NewInterval(start, in.DurationMinutes)); code != "" {
		return domain.Invalid(code, nil)
	}

	return domain.Valid()
}

func (uc *ValidateAppointmentCreation) fail(log *zap.Logger, op string, err error) domain.ValidationResult {
	log.Error("appointment validation failed", zap.String("operation", op), zap.Error(err))
	uc.metrics.ObserveRepositoryError(op)
	return domain.Invalid(domain.CodeValidationFailed, nil)
}
