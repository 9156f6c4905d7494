package scheduling

import (
	"context"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/telehealth-scheduler/internal/domain/scheduling"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/validators"
)

type UpdateProviderTimezone struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewUpdateProviderTimezone(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *UpdateProviderTimezone {
	return &UpdateProviderTimezone{repo: repo, audit: audit}
}

// Execute changes the zone weekly rows are interpreted in. Existing
// appointments keep their UTC instants.
func (uc *UpdateProviderTimezone) Execute(
	ctx context.Context,
	providerID uint,
	tz string,
) (*models.Provider, error) {

	if !timezone.IsValid(tz) {
		return nil, httperr.ErrBusiness(validators.CodeInvalidTimezone)
	}

	before, err := uc.repo.GetProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateProviderTimezone(ctx, providerID, tz); err != nil {
		return nil, err
	}

	actor := providerID
	uc.audit.Dispatch(audit.Event{
		ProviderID: providerID,
		ActorID:    &actor,
		Action:     "provider_timezone_updated",
		Entity:     "provider",
		EntityID:   &actor,
		Metadata: map[string]any{
			"from": before.Timezone,
			"to":   tz,
		},
	})

	before.Timezone = tz
	return before, nil
}
