package scheduling

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/logging"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/validators"
)

// AvailabilityView is everything a provider's availability editor shows.
type AvailabilityView struct {
	Timezone   string                         `json:"timezone"`
	Weekly     []models.ProviderAvailability  `json:"weekly"`
	Exceptions []models.AvailabilityException `json:"exceptions"`
}

// ======================================================
// READ
// ======================================================

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	providerID uint,
) (*AvailabilityView, error) {

	provider, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	weekly, err := uc.repo.ListWeeklyAvailability(ctx, providerID)
	if err != nil {
		return nil, err
	}

	// Past exceptions no longer affect anything bookable.
	today := timezone.DateIn(timezone.Now(), timezone.Location(provider.Timezone))
	exceptions, err := uc.repo.ListAvailabilityExceptions(ctx, providerID, today, "9999-12-31")
	if err != nil {
		return nil, err
	}

	return &AvailabilityView{
		Timezone:   timezone.Location(provider.Timezone).String(),
		Weekly:     nonNil(weekly),
		Exceptions: nonNil(exceptions),
	}, nil
}

// ======================================================
// WRITE: weekly rows
// ======================================================

type SaveWeeklyAvailability struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewSaveWeeklyAvailability(
	repo domain.Repository,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *SaveWeeklyAvailability {
	return &SaveWeeklyAvailability{
		repo:   repo,
		audit:  audit,
		logger: logging.OrNop(logger),
	}
}

// Execute replaces every weekly row of the provider and stores tz as the
// provider's timezone, both in one transaction.
func (uc *SaveWeeklyAvailability) Execute(
	ctx context.Context,
	providerID uint,
	tz string,
	rows []models.ProviderAvailability,
) error {

	if err := validators.ValidateWeekly(tz, rows); err != nil {
		return err
	}

	for i := range rows {
		rows[i].ID = 0
		rows[i].ProviderID = providerID
	}

	if err := uc.repo.ReplaceWeeklyAvailability(ctx, providerID, tz, rows); err != nil {
		return err
	}

	actor := providerID
	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		ActorID:    &actor,
		Action:     "weekly_availability_updated",
		Entity:     "provider_availability",
		Metadata: map[string]any{
			"timezone": tz,
			"rows":     len(rows),
		},
	})

	uc.logger.Info("weekly availability replaced",
		zap.Uint("provider_id", providerID),
		zap.Int("rows", len(rows)),
	)
	return nil
}

// ======================================================
// WRITE: exceptions
// ======================================================

type SaveAvailabilityExceptions struct {
	repo   domain.Repository
	audit  *audit.Dispatcher
	logger *zap.Logger
}

func NewSaveAvailabilityExceptions(
	repo domain.Repository,
	audit *audit.Dispatcher,
	logger *zap.Logger,
) *SaveAvailabilityExceptions {
	return &SaveAvailabilityExceptions{
		repo:   repo,
		audit:  audit,
		logger: logging.OrNop(logger),
	}
}

func (uc *SaveAvailabilityExceptions) Execute(
	ctx context.Context,
	providerID uint,
	rows []models.AvailabilityException,
) error {

	if err := validators.ValidateExceptions(rows); err != nil {
		return err
	}

	for i := range rows {
		rows[i].ID = 0
		rows[i].ProviderID = providerID
	}

	if err := uc.repo.ReplaceAvailabilityExceptions(ctx, providerID, rows); err != nil {
		return err
	}

	actor := providerID
	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		ActorID:    &actor,
		Action:     "availability_exceptions_updated",
		Entity:     "provider_availability_exceptions",
		Metadata:   map[string]any{"rows": len(rows)},
	})

	uc.logger.Info("availability exceptions replaced",
		zap.Uint("provider_id", providerID),
		zap.Int("rows", len(rows)),
	)
	return nil
}

func nonNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
