package scheduling

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/infra/lock"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/metrics"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	ProviderID      uint
	PatientID       uint
	Datetime        time.Time
	DurationMinutes int
	Type            string
	Reason          string
}

// SlotHolder takes a short-lived hold on a provider start instant.
type SlotHolder interface {
	Acquire(ctx context.Context, providerID uint, start time.Time) (*lock.Hold, error)
}

// RejectedError carries the validation result that refused a booking. It
// unwraps to the matching BusinessError.
type RejectedError struct {
	Result domain.ValidationResult
}

func (e *RejectedError) Error() string {
	return e.Result.Code
}

func (e *RejectedError) Unwrap() error {
	return httperr.ErrBusiness(e.Result.Code)
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo      domain.Repository
	validator *ValidateAppointmentCreation
	holder    SlotHolder
	audit     *audit.Dispatcher
	logger    *zap.Logger
	metrics   *metrics.SchedulingMetrics
}

func NewCreateAppointment(
	repo domain.Repository,
	validator *ValidateAppointmentCreation,
	holder SlotHolder,
	audit *audit.Dispatcher,
	logger *zap.Logger,
	m *metrics.SchedulingMetrics,
) *CreateAppointment {
	return &CreateAppointment{
		repo:      repo,
		validator: validator,
		holder:    holder,
		audit:     audit,
		logger:    logging.OrNop(logger),
		metrics:   m,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.create(ctx, in)
	if err != nil {
		uc.metrics.ObserveBooking("create", statusOf(err))
		return nil, err
	}
	uc.metrics.ObserveBooking("create", "ok")
	return ap, nil
}

func (uc *CreateAppointment) create(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	start := in.Datetime.UTC()
	log := uc.logger.With(
		zap.Uint("provider_id", in.ProviderID),
		zap.Uint("patient_id", in.PatientID),
		zap.Time("datetime", start),
	)

	apptType, err := domain.ParseAppointmentType(in.Type)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 1) Provider / patient
	// --------------------------------------------------
	if _, err := uc.repo.GetProvider(ctx, in.ProviderID); err != nil {
		return nil, err
	}
	if _, err := uc.repo.GetPatient(ctx, in.PatientID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2) Hold
	// --------------------------------------------------
	if uc.holder != nil {
		hold, err := uc.holder.Acquire(ctx, in.ProviderID, start)
		switch {
		case errors.Is(err, lock.ErrHeld):
			log.Info("slot held by another booking")
			return nil, &RejectedError{Result: domain.Invalid(domain.CodeSlotTaken, nil)}
		case err != nil:
			log.Warn("slot hold unavailable, relying on database guard", zap.Error(err))
		default:
			defer func() {
				if err := hold.Release(context.WithoutCancel(ctx)); err != nil {
					log.Warn("slot hold release failed", zap.Error(err))
				}
			}()
		}
	}

	// --------------------------------------------------
	// 3) Validation
	// --------------------------------------------------
	res := uc.validator.Execute(ctx, ValidateAppointmentInput{
		ProviderID:      in.ProviderID,
		PatientID:       in.PatientID,
		Datetime:        start,
		DurationMinutes: in.DurationMinutes,
		BufferMinutes:   UsePolicyBuffer,
	})
	if !res.IsValid {
		if res.Code == domain.CodeProviderConflict || res.Code == domain.CodePatientConflict {
			uc.dispatchConflict(in, res.Code)
		}
		return nil, &RejectedError{Result: res}
	}

	// --------------------------------------------------
	// 4) Transactional insert
	// --------------------------------------------------
	ap := &models.Appointment{
		ProviderID: in.ProviderID,
		PatientID:  in.PatientID,
		Datetime:   start,
		Duration:   in.DurationMinutes,
		Type:       string(apptType),
		Reason:     in.Reason,
	}

	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		if httperr.IsBusiness(err, domain.CodeSlotTaken) {
			log.Info("slot taken at insert")
			uc.dispatchConflict(in, domain.CodeSlotTaken)
			return nil, &RejectedError{Result: domain.Invalid(domain.CodeSlotTaken, nil)}
		}
		return nil, err
	}

	// --------------------------------------------------
	// 5) Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		Action:     "appointment_created",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"patient_id": in.PatientID,
			"datetime":   start,
			"duration":   in.DurationMinutes,
			"type":       ap.Type,
		},
	})

	log.Info("appointment created", zap.Uint("appointment_id", ap.ID))
	return ap, nil
}

func (uc *CreateAppointment) dispatchConflict(in CreateAppointmentInput, code string) {
	uc.audit.Dispatch(audit.Event{
		ProviderID: in.ProviderID,
		Action:     "appointment_conflict",
		Entity:     "appointment",
		Metadata: map[string]any{
			"patient_id": in.PatientID,
			"datetime":   in.Datetime.UTC(),
			"code":       code,
		},
	})
}

func statusOf(err error) string {
	if code, ok := httperr.BusinessCode(err); ok {
		return code
	}
	return "error"
}
