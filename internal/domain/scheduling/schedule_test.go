package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
)

func newYork(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	return loc
}

func strPtr(s string) *string { return &s }

func weekly(day int, start, end string) models.ProviderAvailability {
	return models.ProviderAvailability{ProviderID: 1, DayOfWeek: day, StartTime: start, EndTime: end}
}

func TestScheduleSkipsInvalidRows(t *testing.T) {
	s := NewSchedule(time.UTC, []models.ProviderAvailability{
		weekly(0, "17:00", "09:00"),
		weekly(7, "09:00", "17:00"),
		weekly(1, "bad", "17:00"),
	}, nil)

	assert.False(t, s.HasWeeklyAvailability())
}

func TestScheduleWindowsSplitShifts(t *testing.T) {
	loc := newYork(t)
	s := NewSchedule(loc, []models.ProviderAvailability{
		weekly(0, "13:00", "17:00"),
		weekly(0, "08:00", "12:00"),
	}, nil)

	monday := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)
	windows := s.Windows(monday)
	require.Len(t, windows, 2)
	assert.Equal(t, 8, windows[0].Start.In(loc).Hour())
	assert.Equal(t, 13, windows[1].Start.In(loc).Hour())

	assert.Empty(t, s.Windows(monday.AddDate(0, 0, 1)))
}

func TestScheduleExceptionWindow(t *testing.T) {
	loc := newYork(t)
	s := NewSchedule(loc, []models.ProviderAvailability{
		weekly(0, "09:00", "12:00"),
	}, []models.AvailabilityException{
		{ExceptionDate: "2026-03-07", IsAvailable: true, StartTime: strPtr("10:00"), EndTime: strPtr("12:00")},
	})

	saturday := time.Date(2026, 3, 7, 0, 0, 0, 0, loc)
	windows := s.Windows(saturday)
	require.Len(t, windows, 1)
	assert.True(t, s.Contains(NewInterval(time.Date(2026, 3, 7, 11, 0, 0, 0, loc), 60)))
}

func TestCheckAvailability(t *testing.T) {
	loc := newYork(t)
	s := NewSchedule(loc, []models.ProviderAvailability{
		weekly(0, "09:00", "17:00"),
	}, []models.AvailabilityException{
		{ExceptionDate: "2026-03-09"},
		{ExceptionDate: "2026-03-16", StartTime: strPtr("13:00"), EndTime: strPtr("14:00")},
	})

	at := func(day, hour, min int) time.Time {
		return time.Date(2026, 3, day, hour, min, 0, 0, loc)
	}

	tests := []struct {
		name string
		iv   Interval
		want string
	}{
		{"contained, ends at window end", NewInterval(at(2, 16, 30), 30), ""},
		{"exceeds window end", NewInterval(at(2, 16, 45), 30), CodeOutsideAvailability},
		{"wrong weekday", NewInterval(at(3, 10, 0), 30), CodeOutsideAvailability},
		{"full day block", NewInterval(at(9, 10, 0), 30), CodeDateBlocked},
		{"start inside range block", NewInterval(at(16, 13, 30), 30), CodeTimeBlocked},
		{"start at range block start", NewInterval(at(16, 13, 0), 30), CodeTimeBlocked},
		{"runs into range block", NewInterval(at(16, 12, 45), 30), ""},
		{"right after range block", NewInterval(at(16, 14, 0), 30), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckAvailability(s, tt.iv))
		})
	}

	empty := NewSchedule(loc, nil, nil)
	assert.Equal(t, CodeNoAvailability, CheckAvailability(empty, NewInterval(at(2, 10, 0), 30)))
}

func TestBlockedOverlapVersusStart(t *testing.T) {
	loc := newYork(t)
	s := NewSchedule(loc, []models.ProviderAvailability{
		weekly(0, "09:00", "17:00"),
	}, []models.AvailabilityException{
		{ExceptionDate: "2026-03-16", StartTime: strPtr("12:00"), EndTime: strPtr("13:00")},
	})

	intoBlock := NewInterval(time.Date(2026, 3, 16, 11, 45, 0, 0, loc), 30)

	blocked, code := s.Blocked(intoBlock)
	assert.True(t, blocked)
	assert.Equal(t, CodeTimeBlocked, code)

	blocked, _ = s.StartBlocked(intoBlock)
	assert.False(t, blocked)

	atEnd := NewInterval(time.Date(2026, 3, 16, 13, 0, 0, 0, loc), 30)
	blocked, _ = s.StartBlocked(atEnd)
	assert.False(t, blocked)
}
