package scheduling

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
)

type clockRange struct {
	start time.Duration
	end   time.Duration
}

func parseClockRange(start, end string) (clockRange, bool) {
	s, err := timezone.ParseClock(start)
	if err != nil {
		return clockRange{}, false
	}
	e, err := timezone.ParseClock(end)
	if err != nil || e <= s {
		return clockRange{}, false
	}
	return clockRange{start: s, end: e}, true
}

type dayOverride struct {
	fullBlock bool
	blocks    []clockRange
	extra     []clockRange
}

// Schedule is a provider's weekly availability plus date exceptions, resolved
// in the provider's timezone. Rows with unparseable or empty ranges are ignored.
type Schedule struct {
	loc       *time.Location
	weekly    map[int][]clockRange
	overrides map[string]*dayOverride
	rows      int
}

func NewSchedule(
	loc *time.Location,
	weekly []models.ProviderAvailability,
	exceptions []models.AvailabilityException,
) *Schedule {

	s := &Schedule{
		loc:       loc,
		weekly:    make(map[int][]clockRange),
		overrides: make(map[string]*dayOverride),
	}

	for _, row := range weekly {
		if row.DayOfWeek < 0 || row.DayOfWeek > 6 {
			continue
		}
		r, ok := parseClockRange(row.StartTime, row.EndTime)
		if !ok {
			continue
		}
		s.weekly[row.DayOfWeek] = append(s.weekly[row.DayOfWeek], r)
		s.rows++
	}

	for _, ex := range exceptions {
		o := s.overrides[ex.ExceptionDate]
		if o == nil {
			o = &dayOverride{}
			s.overrides[ex.ExceptionDate] = o
		}

		if ex.BlocksWholeDay() {
			o.fullBlock = true
			continue
		}
		if !ex.HasTimes() {
			continue
		}

		r, ok := parseClockRange(*ex.StartTime, *ex.EndTime)
		if !ok {
			continue
		}
		if ex.IsAvailable {
			o.extra = append(o.extra, r)
		} else {
			o.blocks = append(o.blocks, r)
		}
	}

	return s
}

func (s *Schedule) Location() *time.Location {
	return s.loc
}

// HasWeeklyAvailability reports whether at least one usable weekly row exists.
func (s *Schedule) HasWeeklyAvailability() bool {
	return s.rows > 0
}

// Windows returns the bookable windows on the provider-local date of day,
// as instants, ordered by start.
func (s *Schedule) Windows(day time.Time) []Interval {
	local := day.In(s.loc)
	ranges := append([]clockRange{}, s.weekly[timezone.StorageWeekday(local)]...)
	if o := s.overrides[local.Format(timezone.DateLayout)]; o != nil {
		ranges = append(ranges, o.extra...)
	}

	out := make([]Interval, 0, len(ranges))
	for _, r := range ranges {
		out = append(out, s.toInterval(local, r))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}

// FullyBlocked reports a whole-day block on the provider-local date of day.
func (s *Schedule) FullyBlocked(day time.Time) bool {
	o := s.overrides[timezone.DateIn(day, s.loc)]
	return o != nil && o.fullBlock
}

// BlockedRanges returns the time-range blocks on the provider-local date of day.
func (s *Schedule) BlockedRanges(day time.Time) []Interval {
	local := day.In(s.loc)
	o := s.overrides[local.Format(timezone.DateLayout)]
	if o == nil {
		return nil
	}

	out := make([]Interval, 0, len(o.blocks))
	for _, r := range o.blocks {
		out = append(out, s.toInterval(local, r))
	}
	return out
}

// Blocked reports whether an exception on the local date of iv.Start removes iv,
// returning the matching result code.
func (s *Schedule) Blocked(iv Interval) (bool, string) {
	if s.FullyBlocked(iv.Start) {
		return true, CodeDateBlocked
	}
	for _, b := range s.BlockedRanges(iv.Start) {
		if iv.Overlaps(b) {
			return true, CodeTimeBlocked
		}
	}
	return false, ""
}

// StartBlocked reports whether an exception on the local date of iv.Start
// removes the start instant itself: a whole-day block, or a time-range block
// with block.Start <= iv.Start < block.End. An appointment that begins
// before a range block and runs into it is not refused here.
func (s *Schedule) StartBlocked(iv Interval) (bool, string) {
	if s.FullyBlocked(iv.Start) {
		return true, CodeDateBlocked
	}
	for _, b := range s.BlockedRanges(iv.Start) {
		if !iv.Start.Before(b.Start) && iv.Start.Before(b.End) {
			return true, CodeTimeBlocked
		}
	}
	return false, ""
}

// Contains reports whether some window on the local date of iv.Start fully
// contains iv.
func (s *Schedule) Contains(iv Interval) bool {
	for _, w := range s.Windows(iv.Start) {
		if w.Contains(iv) {
			return true
		}
	}
	return false
}

func (s *Schedule) toInterval(local time.Time, r clockRange) Interval {
	return Interval{
		Start: timezone.At(local, r.start, s.loc),
		End:   timezone.At(local, r.end, s.loc),
	}
}
