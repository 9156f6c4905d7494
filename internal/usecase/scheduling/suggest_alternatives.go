package scheduling

import (
	"context"
	"time"

	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/metrics"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
)

const DefaultMaxSuggestions = 3

type SuggestAlternativesInput struct {
	ProviderID      uint
	Requested       time.Time
	DurationMinutes int
	MaxSuggestions  int
}

type SuggestAlternativeAppointmentTimes struct {
	repo    domain.Repository
	policy  domain.Policy
	logger  *zap.Logger
	metrics *metrics.SchedulingMetrics
	now     func() time.Time
}

func NewSuggestAlternativeAppointmentTimes(
	repo domain.Repository,
	policy domain.Policy,
	logger *zap.Logger,
	m *metrics.SchedulingMetrics,
) *SuggestAlternativeAppointmentTimes {
	return &SuggestAlternativeAppointmentTimes{
		repo:    repo,
		policy:  policy.Normalize(),
		logger:  logging.OrNop(logger),
		metrics: m,
		now:     time.Now,
	}
}

// Execute is best effort: suggestions only avoid existing appointments and
// are not checked against weekly availability or exceptions.
func (uc *SuggestAlternativeAppointmentTimes) Execute(
	ctx context.Context,
	in SuggestAlternativesInput,
) []string {

	limit := in.MaxSuggestions
	if limit <= 0 {
		limit = DefaultMaxSuggestions
	}

	log := uc.logger.With(zap.Uint("provider_id", in.ProviderID))

	loc := timezone.Location("")
	provider, err := uc.repo.GetProvider(ctx, in.ProviderID)
	if err != nil {
		log.Warn("provider lookup failed, using default timezone", zap.Error(err))
	} else {
		loc = timezone.Location(provider.Timezone)
	}

	requested := in.Requested.UTC()
	appts, err := uc.repo.ListProviderAppointments(
		ctx,
		in.ProviderID,
		requested.Add(-24*time.Hour),
		requested.Add(uc.policy.SuggestionWindow+24*time.Hour),
	)
	if err != nil {
		log.Error("suggestions failed", zap.Error(err))
		uc.metrics.ObserveRepositoryError("list_provider_appointments")
		return []string{}
	}

	times := domain.SuggestTimes(loc, appts, domain.SuggestionQuery{
		Now:             uc.now(),
		Requested:       requested,
		DurationMinutes: in.DurationMinutes,
		MaxSuggestions:  limit,
	}, uc.policy)

	out := make([]string, 0, len(times))
	for _, t := range times {
		out = append(out, timezone.FormatISO(t))
	}
	return out
}
