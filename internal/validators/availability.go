package validators

import (
	"sort"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/httperr"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
)

const (
	CodeInvalidTimezone     = "invalid_timezone"
	CodeInvalidDayOfWeek    = "invalid_day_of_week"
	CodeInvalidTime         = "invalid_time"
	CodeInvalidTimeRange    = "invalid_time_range"
	CodeOverlappingWindows  = "overlapping_availability"
	CodeInvalidDate         = "invalid_date"
	CodeIncompleteTimeRange = "incomplete_time_range"
)

// ValidateWeekly checks a full replacement set of weekly rows. Clocks are
// normalized to HH:MM:SS in place.
func ValidateWeekly(tz string, rows []models.ProviderAvailability) error {
	if !timezone.IsValid(tz) {
		return httperr.ErrBusiness(CodeInvalidTimezone)
	}

	type span struct{ start, end int64 }
	byDay := make(map[int][]span)

	for i := range rows {
		r := &rows[i]

		if r.DayOfWeek < 0 || r.DayOfWeek > 6 {
			return httperr.ErrBusiness(CodeInvalidDayOfWeek)
		}

		start, err := timezone.ParseClock(r.StartTime)
		if err != nil {
			return httperr.ErrBusiness(CodeInvalidTime)
		}
		end, err := timezone.ParseClock(r.EndTime)
		if err != nil {
			return httperr.ErrBusiness(CodeInvalidTime)
		}
		if start >= end {
			return httperr.ErrBusiness(CodeInvalidTimeRange)
		}

		r.StartTime = timezone.FormatClock(start)
		r.EndTime = timezone.FormatClock(end)
		byDay[r.DayOfWeek] = append(byDay[r.DayOfWeek], span{int64(start), int64(end)})
	}

	for _, spans := range byDay {
		sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		for i := 1; i < len(spans); i++ {
			if spans[i].start < spans[i-1].end {
				return httperr.ErrBusiness(CodeOverlappingWindows)
			}
		}
	}

	return nil
}

// ValidateExceptions checks dates and the optional start/end pair of each
// exception. Empty time strings are treated as absent.
func ValidateExceptions(rows []models.AvailabilityException) error {
	for i := range rows {
		r := &rows[i]

		if _, err := timezone.ParseDate(r.ExceptionDate, timezone.Location("")); err != nil {
			return httperr.ErrBusiness(CodeInvalidDate)
		}

		hasStart := r.StartTime != nil && *r.StartTime != ""
		hasEnd := r.EndTime != nil && *r.EndTime != ""

		if hasStart != hasEnd {
			return httperr.ErrBusiness(CodeIncompleteTimeRange)
		}
		if !hasStart {
			r.StartTime, r.EndTime = nil, nil
			if r.IsAvailable {
				return httperr.ErrBusiness(CodeIncompleteTimeRange)
			}
			continue
		}

		start, err := timezone.ParseClock(*r.StartTime)
		if err != nil {
			return httperr.ErrBusiness(CodeInvalidTime)
		}
		end, err := timezone.ParseClock(*r.EndTime)
		if err != nil {
			return httperr.ErrBusiness(CodeInvalidTime)
		}
		if start >= end {
			return httperr.ErrBusiness(CodeInvalidTimeRange)
		}

		s, e := timezone.FormatClock(start), timezone.FormatClock(end)
		r.StartTime, r.EndTime = &s, &e
	}
	return nil
}
