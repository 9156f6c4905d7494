package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
)

func TestSuggestTimesSkipsBufferedConflicts(t *testing.T) {
	now := utc(6, 0)
	booked := []models.Appointment{{ID: 1, Datetime: utc(10, 0), Duration: 30}}

	got := SuggestTimes(time.UTC, booked, SuggestionQuery{
		Now:             now,
		Requested:       utc(10, 0),
		DurationMinutes: 30,
		MaxSuggestions:  3,
	}, DefaultPolicy())

	// 10:00 and 10:30 fall inside the 15 minute buffer around 10:00-10:30.
	assert.Equal(t, []time.Time{utc(11, 0), utc(11, 30), utc(12, 0)}, got)
}

func TestSuggestTimesStaysInsideLocalDay(t *testing.T) {
	loc := newYork(t)
	requested := time.Date(2026, 3, 2, 16, 0, 0, 0, loc)

	got := SuggestTimes(loc, nil, SuggestionQuery{
		Now:             requested.Add(-time.Hour),
		Requested:       requested,
		DurationMinutes: 30,
		MaxSuggestions:  4,
	}, DefaultPolicy())

	want := []time.Time{
		time.Date(2026, 3, 2, 16, 0, 0, 0, loc).UTC(),
		time.Date(2026, 3, 2, 16, 30, 0, 0, loc).UTC(),
		time.Date(2026, 3, 3, 9, 0, 0, 0, loc).UTC(),
		time.Date(2026, 3, 3, 9, 30, 0, 0, loc).UTC(),
	}
	assert.Equal(t, want, got)
}

func TestSuggestTimesIsBoundedByAttempts(t *testing.T) {
	p := DefaultPolicy()
	p.SuggestionMaxAttempts = 4

	// Requested at 17:00 UTC: the first four steps are all after hours.
	got := SuggestTimes(time.UTC, nil, SuggestionQuery{
		Now:             utc(6, 0),
		Requested:       utc(17, 0),
		DurationMinutes: 30,
		MaxSuggestions:  3,
	}, p)

	assert.Empty(t, got)
}

func TestSuggestTimesSkipsPast(t *testing.T) {
	got := SuggestTimes(time.UTC, nil, SuggestionQuery{
		Now:             utc(10, 10),
		Requested:       utc(9, 30),
		DurationMinutes: 30,
		MaxSuggestions:  2,
	}, DefaultPolicy())

	assert.Equal(t, []time.Time{utc(10, 30), utc(11, 0)}, got)
}
