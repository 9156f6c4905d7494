package scheduling

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
)

// SlotQuery describes one slot generation run.
type SlotQuery struct {
	Now             time.Time
	DurationMinutes int
	BufferMinutes   int
	MaxSlots        int
}

// HorizonStart is provider-local midnight of the current day.
func HorizonStart(now time.Time, loc *time.Location) time.Time {
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// HorizonEnd is the last local day of the horizon, inclusive.
func HorizonEnd(now time.Time, loc *time.Location, p Policy) time.Time {
	return HorizonStart(now, loc).AddDate(0, 0, p.HorizonDays)
}

// GenerateSlots walks every window in the horizon on the fixed grid and keeps
// the candidates that respect lead time, window end, exceptions and existing
// appointments. The result is sorted, unique and at most q.MaxSlots long.
func GenerateSlots(
	s *Schedule,
	appointments []models.Appointment,
	q SlotQuery,
	p Policy,
) []time.Time {

	if !s.HasWeeklyAvailability() || q.DurationMinutes <= 0 || q.MaxSlots <= 0 {
		return []time.Time{}
	}

	duration := time.Duration(q.DurationMinutes) * time.Minute
	earliest := q.Now.Add(p.LeadTime)
	first := HorizonStart(q.Now, s.Location())

	seen := make(map[int64]struct{})
	var slots []time.Time

	for d := 0; d <= p.HorizonDays; d++ {
		day := first.AddDate(0, 0, d)

		if s.FullyBlocked(day) {
			continue
		}

		for _, w := range s.Windows(day) {
			for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(p.Grid) {
				if !cur.After(earliest) {
					continue
				}

				candidate := Interval{Start: cur, End: cur.Add(duration)}
				if blocked, _ := s.Blocked(candidate); blocked {
					continue
				}

				if CheckConflict(cur, q.DurationMinutes, appointments, q.BufferMinutes).HasConflict {
					continue
				}

				key := cur.Unix()
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				slots = append(slots, cur.UTC())
			}
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Before(slots[j]) })

	if len(slots) > q.MaxSlots {
		slots = slots[:q.MaxSlots]
	}
	if slots == nil {
		return []time.Time{}
	}
	return slots
}
