package scheduling

import (
	"fmt"
	"time"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
)

// Interval is a half-open [Start, End) span of instants.
type Interval struct {
	Start time.Time
	End   time.Time
}

func NewInterval(start time.Time, durationMinutes int) Interval {
	return Interval{
		Start: start,
		End:   start.Add(time.Duration(durationMinutes) * time.Minute),
	}
}

func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether other lies entirely inside iv.
func (iv Interval) Contains(other Interval) bool {
	return !other.Start.Before(iv.Start) && !other.End.After(iv.End)
}

// Pad widens the interval by buffer on both sides.
func (iv Interval) Pad(buffer time.Duration) Interval {
	return Interval{Start: iv.Start.Add(-buffer), End: iv.End.Add(buffer)}
}

type ConflictResult struct {
	HasConflict            bool
	ConflictReason         string
	ConflictingAppointment *models.Appointment
}

// CheckConflict tests [proposedStart, proposedStart+duration) against every
// existing appointment widened by bufferMinutes on both sides. The first
// overlapping appointment is reported.
func CheckConflict(
	proposedStart time.Time,
	durationMinutes int,
	existing []models.Appointment,
	bufferMinutes int,
) ConflictResult {

	proposed := NewInterval(proposedStart, durationMinutes)
	buffer := time.Duration(bufferMinutes) * time.Minute

	for i := range existing {
		ap := existing[i]
		protected := NewInterval(ap.Datetime, ap.Duration).Pad(buffer)

		if proposed.Overlaps(protected) {
			return ConflictResult{
				HasConflict: true,
				ConflictReason: fmt.Sprintf(
					"overlaps appointment %d at %s (%d min, %d min buffer)",
					ap.ID, timezone.FormatISO(ap.Datetime), ap.Duration, bufferMinutes,
				),
				ConflictingAppointment: &ap,
			}
		}
	}

	return ConflictResult{}
}
