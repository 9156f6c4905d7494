package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
	"github.com/BruksfildServices01/telehealth-scheduler/internal/timezone"
)

func mondayShift(start, end string) []models.ProviderAvailability {
	return []models.ProviderAvailability{weekly(0, start, end)}
}

func localDates(slots []time.Time, loc *time.Location) map[string]int {
	out := map[string]int{}
	for _, s := range slots {
		out[timezone.DateIn(s, loc)]++
	}
	return out
}

func TestGenerateSlotsWithoutAvailability(t *testing.T) {
	s := NewSchedule(time.UTC, nil, nil)
	slots := GenerateSlots(s, nil, SlotQuery{Now: utc(6, 0), DurationMinutes: 30, MaxSlots: 10}, DefaultPolicy())

	require.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGenerateSlotsNewYorkMondayAcrossDST(t *testing.T) {
	loc := newYork(t)
	s := NewSchedule(loc, mondayShift("08:30", "17:00"), nil)
	now := time.Date(2026, 3, 2, 6, 0, 0, 0, loc)

	slots := GenerateSlots(s, nil, SlotQuery{Now: now, DurationMinutes: 30, MaxSlots: 18}, DefaultPolicy())
	require.Len(t, slots, 18)

	// EST: 08:30 local is 13:30Z.
	assert.Equal(t, "2026-03-02T13:30:00.000Z", timezone.FormatISO(slots[0]))
	// Last slot of the day ends exactly at 17:00 local.
	assert.Equal(t, "2026-03-02T21:30:00.000Z", timezone.FormatISO(slots[16]))
	// EDT after the March 8 switch: 08:30 local is 12:30Z.
	assert.Equal(t, "2026-03-09T12:30:00.000Z", timezone.FormatISO(slots[17]))

	for i := 1; i < 17; i++ {
		assert.Equal(t, 30*time.Minute, slots[i].Sub(slots[i-1]))
	}
}

func TestGenerateSlotsOnlyOnMappedWeekday(t *testing.T) {
	loc := newYork(t)
	s := NewSchedule(loc, mondayShift("09:00", "11:00"), nil)
	now := time.Date(2026, 3, 4, 12, 0, 0, 0, loc)

	slots := GenerateSlots(s, nil, SlotQuery{Now: now, DurationMinutes: 30, MaxSlots: 100}, DefaultPolicy())
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		local := slot.In(loc)
		assert.Equal(t, time.Monday, local.Weekday(), local.String())
		assert.GreaterOrEqual(t, local.Hour(), 9)
	}
	// Mondays inside the 21-day horizon: Mar 9, 16, 23 (Mar 25 is the last day).
	assert.Len(t, localDates(slots, loc), 3)
	assert.Len(t, slots, 12)
}

func TestGenerateSlotsRespectsLeadTime(t *testing.T) {
	loc := newYork(t)
	s := NewSchedule(loc, mondayShift("08:30", "17:00"), nil)
	now := time.Date(2026, 3, 2, 8, 40, 0, 0, loc)

	slots := GenerateSlots(s, nil, SlotQuery{Now: now, DurationMinutes: 30, MaxSlots: 50}, DefaultPolicy())
	require.NotEmpty(t, slots)

	for _, slot := range slots {
		assert.True(t, slot.After(now.Add(30*time.Minute)))
	}
	assert.Equal(t, 9, slots[0].In(loc).Hour())
	assert.Equal(t, 30, slots[0].In(loc).Minute())
}

func TestGenerateSlotsFullDayException(t *testing.T) {
	loc := newYork(t)
	s := NewSchedule(loc, mondayShift("09:00", "17:00"), []models.AvailabilityException{
		{ExceptionDate: "2026-03-09"},
	})
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, loc)

	slots := GenerateSlots(s, nil, SlotQuery{Now: now, DurationMinutes: 30, MaxSlots: 200}, DefaultPolicy())
	dates := localDates(slots, loc)

	assert.NotContains(t, dates, "2026-03-09")
	assert.Contains(t, dates, "2026-03-16")
}

func TestGenerateSlotsPartialException(t *testing.T) {
	loc := newYork(t)
	s := NewSchedule(loc, mondayShift("09:00", "17:00"), []models.AvailabilityException{
		{ExceptionDate: "2026-03-09", StartTime: strPtr("13:00"), EndTime: strPtr("14:00")},
	})
	now := time.Date(2026, 3, 3, 9, 0, 0, 0, loc)
	at := func(hour, min int) time.Time { return time.Date(2026, 3, 9, hour, min, 0, 0, loc).UTC() }

	slots := GenerateSlots(s, nil, SlotQuery{Now: now, DurationMinutes: 30, MaxSlots: 16}, DefaultPolicy())
	assert.Contains(t, slots, at(12, 30))
	assert.NotContains(t, slots, at(13, 0))
	assert.NotContains(t, slots, at(13, 30))
	assert.Contains(t, slots, at(14, 0))

	hour := GenerateSlots(s, nil, SlotQuery{Now: now, DurationMinutes: 60, MaxSlots: 16}, DefaultPolicy())
	assert.Contains(t, hour, at(12, 0))
	assert.NotContains(t, hour, at(12, 30))
	assert.Contains(t, hour, at(14, 0))
}

func TestGenerateSlotsAvoidsExistingAppointments(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	booked := []models.Appointment{{ID: 1, Datetime: utc(10, 0), Duration: 30}}
	q := SlotQuery{Now: now, DurationMinutes: 30, MaxSlots: 10}

	offGrid := NewSchedule(time.UTC, mondayShift("09:45", "12:00"), nil)
	slots := GenerateSlots(offGrid, booked, q, DefaultPolicy())
	assert.NotContains(t, slots, utc(9, 45))
	assert.NotContains(t, slots, utc(10, 15))
	assert.Contains(t, slots, utc(10, 45))

	onGrid := NewSchedule(time.UTC, mondayShift("09:00", "12:00"), nil)
	slots = GenerateSlots(onGrid, booked, q, DefaultPolicy())
	assert.Contains(t, slots, utc(9, 30))
	assert.NotContains(t, slots, utc(10, 0))
	assert.Contains(t, slots, utc(10, 30))
}

func TestGenerateSlotsBufferAndTruncation(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewSchedule(time.UTC, mondayShift("09:00", "12:00"), nil)
	booked := []models.Appointment{{ID: 1, Datetime: utc(10, 0), Duration: 30}}

	slots := GenerateSlots(s, booked, SlotQuery{Now: now, DurationMinutes: 30, BufferMinutes: 15, MaxSlots: 3}, DefaultPolicy())
	assert.Equal(t, []time.Time{utc(9, 0), utc(11, 0), utc(11, 30)}, slots)
}

func TestGenerateSlotsDeduplicatesOverlappingWindows(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewSchedule(time.UTC, []models.ProviderAvailability{
		weekly(0, "09:00", "10:00"),
		weekly(0, "09:00", "10:30"),
	}, nil)

	slots := GenerateSlots(s, nil, SlotQuery{Now: now, DurationMinutes: 30, MaxSlots: 3}, DefaultPolicy())
	assert.Equal(t, []time.Time{utc(9, 0), utc(9, 30), utc(10, 0)}, slots)
}

func TestGenerateSlotsDurationLongerThanWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	s := NewSchedule(time.UTC, mondayShift("09:00", "09:30"), nil)

	slots := GenerateSlots(s, nil, SlotQuery{Now: now, DurationMinutes: 45, MaxSlots: 10}, DefaultPolicy())
	assert.Empty(t, slots)
}
