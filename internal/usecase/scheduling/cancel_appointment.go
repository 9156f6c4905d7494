package scheduling

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/metrics"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
)

type CancelAppointment struct {
	repo    domain.Repository
	audit   *audit.Dispatcher
	logger  *zap.Logger
	metrics *metrics.SchedulingMetrics
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
	logger *zap.Logger,
	m *metrics.SchedulingMetrics,
) *CancelAppointment {
	return &CancelAppointment{
		repo:    repo,
		audit:   audit,
		logger:  logging.OrNop(logger),
		metrics: m,
	}
}

// Execute deletes one of the provider's appointments, freeing its slot.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	providerID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentForProvider(ctx, appointmentID, providerID)
	if err != nil {
		uc.metrics.ObserveBooking("cancel", statusOf(err))
		return nil, err
	}

	if err := uc.repo.DeleteAppointment(ctx, ap.ID); err != nil {
		uc.metrics.ObserveBooking("cancel", statusOf(err))
		return nil, err
	}

	actor := providerID
	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		ActorID:    &actor,
		Action:     "appointment_cancelled",
		Entity:     "appointment",
		EntityID:   &ap.ID,
		Metadata: map[string]any{
			"patient_id": ap.PatientID,
			"datetime":   ap.Datetime,
		},
	})

	uc.metrics.ObserveBooking("cancel", "ok")
	uc.logger.Info("appointment cancelled",
		zap.Uint("provider_id", providerID),
		zap.Uint("appointment_id", ap.ID),
	)
	return ap, nil
}
