package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/metrics"
)

// ValidateSlotAvailability is the cheap re-check run right before booking:
// the slot is still in the future and no provider appointment starts inside it.
type ValidateSlotAvailability struct {
	repo    domain.Repository
	logger  *zap.Logger
	metrics *metrics.SchedulingMetrics
	now     func() time.Time
}

func NewValidateSlotAvailability(
	repo domain.Repository,
	logger *zap.Logger,
	m *metrics.SchedulingMetrics,
) *ValidateSlotAvailability {
	return &ValidateSlotAvailability{
		repo:    repo,
		logger:  logging.OrNop(logger),
		metrics: m,
		now:     time.Now,
	}
}

func (uc *ValidateSlotAvailability) Execute(
	ctx context.Context,
	providerID uint,
	slot time.Time,
	durationMinutes int,
) domain.SlotAvailability {

	res := uc.check(ctx, providerID, slot, durationMinutes)
	uc.metrics.ObserveValidation("slot", res.Code)
	return res
}

func (uc *ValidateSlotAvailability) check(
	ctx context.Context,
	providerID uint,
	slot time.Time,
	durationMinutes int,
) domain.SlotAvailability {

	if durationMinutes <= 0 {
		return domain.Unavailable(domain.CodeInvalidDuration, nil)
	}

	start := slot.UTC()
	if !start.After(uc.now()) {
		return domain.Unavailable(domain.CodePastTime, nil)
	}

	end := start.Add(time.Duration(durationMinutes) * time.Minute)

	appts, err := uc.repo.ListProviderAppointments(ctx, providerID, start, end)
	if err != nil {
		uc.logger.Error("slot check failed",
			zap.Uint("provider_id", providerID),
			zap.Time("slot", start),
			zap.Error(err),
		)
		uc.metrics.ObserveRepositoryError("list_provider_appointments")
		return domain.Unavailable(domain.CodeValidationFailed, nil)
	}

	for i := range appts {
		if appts[i].Datetime.Before(end) {
			return domain.Unavailable(domain.CodeSlotTaken, &appts[i])
		}
	}

	return domain.SlotAvailability{IsAvailable: true}
}
