package scheduling

import (
	"context"
	"strconv"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/metrics"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
)

// UsePolicyBuffer asks for the configured default buffer.
const UsePolicyBuffer = -1

type GetNextAvailableSlotsInput struct {
	ProviderID          uint
	SlotDurationMinutes int
	MaxSlots            int
	BufferMinutes       int
}

type GetNextAvailableSlots struct {
	repo    domain.Repository
	policy  domain.Policy
	logger  *zap.Logger
	metrics *metrics.SchedulingMetrics
	now     func() time.Time
}

func NewGetNextAvailableSlots(
	repo domain.Repository,
	policy domain.Policy,
	logger *zap.Logger,
	m *metrics.SchedulingMetrics,
) *GetNextAvailableSlots {
	return &GetNextAvailableSlots{
		repo:    repo,
		policy:  policy.Normalize(),
		logger:  logging.OrNop(logger),
		metrics: m,
		now:     time.Now,
	}
}

// Execute never returns an error: any repository failure yields an empty
// list so callers cannot offer a slot that was not fully checked.
func (uc *GetNextAvailableSlots) Execute(
	ctx context.Context,
	in GetNextAvailableSlotsInput,
) []string {

	log := uc.logger.With(
		zap.Uint("provider_id", in.ProviderID),
		zap.Int("duration", in.SlotDurationMinutes),
	)

	weekly, err := uc.repo.ListWeeklyAvailability(ctx, in.ProviderID)
	if err != nil {
		return uc.fail(log, "list_weekly_availability", err)
	}
	if len(weekly) == 0 {
		log.Debug("provider has no weekly availability")
		return []string{}
	}

	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		return uc.fail(log, "get_provider", err)
	}

	loc := timezone.Location(provider.Timezone)
	now := uc.now().UTC()
	from := domain.HorizonStart(now, loc)
	to := domain.HorizonEnd(now, loc, uc.policy)

	exceptions, err := uc.repo.ListAvailabilityExceptions(
		ctx,
		in.ProviderID,
		from.Format(timezone.DateLayout),
		to.Format(timezone.DateLayout),
	)
	if err != nil {
		return uc.fail(log, "list_availability_exceptions", err)
	}

	// Padded by a day so appointments straddling the horizon edges still
	// count as conflicts.
	appointments, err := uc.repo.ListProviderAppointments(
		ctx,
		in.ProviderID,
		from.Add(-24*time.Hour),
		to.AddDate(0, 0, 2),
	)
	if err != nil {
		return uc.fail(log, "list_provider_appointments", err)
	}

	buffer := in.BufferMinutes
	if buffer < 0 {
		buffer = uc.policy.BufferMinutes
	}

	slots := domain.GenerateSlots(
		domain.NewSchedule(loc, weekly, exceptions),
		appointments,
		domain.SlotQuery{
			Now:             now,
			DurationMinutes: in.SlotDurationMinutes,
			BufferMinutes:   buffer,
			MaxSlots:        in.MaxSlots,
		},
		uc.policy,
	)

	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, timezone.FormatISO(s))
	}

	uc.metrics.ObserveSlots(strconv.Itoa(in.SlotDurationMinutes), len(out))
	return out
}

func (uc *GetNextAvailableSlots) fail(log *zap.Logger, op string, err error) []string {
	log.Error("slot generation failed", zap.String("operation", op), zap.Error(err))
	uc.metrics.ObserveRepositoryError(op)
	return []string{}
}
