package scheduling

import (
	"time"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
)

type SuggestionQuery struct {
	Now             time.Time
	Requested       time.Time
	DurationMinutes int
	MaxSuggestions  int
}

// SuggestTimes steps forward from the requested instant on the grid, keeping
// future candidates whose local start hour falls inside the suggestion day and
// that clear existing appointments by the suggestion buffer. It gives up after
// SuggestionMaxAttempts steps or once SuggestionWindow is exhausted.
func SuggestTimes(
	loc *time.Location,
	appointments []models.Appointment,
	q SuggestionQuery,
	p Policy,
) []time.Time {

	out := []time.Time{}
	if q.DurationMinutes <= 0 || q.MaxSuggestions <= 0 {
		return out
	}

	limit := q.Requested.Add(p.SuggestionWindow)
	cur := q.Requested

	for attempt := 0; attempt < p.SuggestionMaxAttempts && len(out) < q.MaxSuggestions; attempt++ {
		if !cur.Before(limit) {
			break
		}

		candidate := cur
		cur = cur.Add(p.Grid)

		if !candidate.After(q.Now) {
			continue
		}

		hour := candidate.In(loc).Hour()
		if hour < p.SuggestionDayStartHour || hour >= p.SuggestionDayEndHour {
			continue
		}

		if CheckConflict(candidate, q.DurationMinutes, appointments, p.SuggestionBufferMinutes).HasConflict {
			continue
		}

		out = append(out, candidate.UTC())
	}

	return out
}
