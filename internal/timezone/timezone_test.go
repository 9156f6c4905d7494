package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorageWeekday(t *testing.T) {
	tests := []struct {
		day  time.Time
		want int
	}{
		{time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC), 0}, // Monday
		{time.Date(2026, 3, 7, 12, 0, 0, 0, time.UTC), 5}, // Saturday
		{time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), 6}, // Sunday
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StorageWeekday(tt.day), tt.day.Weekday().String())
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "08:30", want: 8*time.Hour + 30*time.Minute},
		{in: "17:00:00", want: 17 * time.Hour},
		{in: "23:59:59", want: 23*time.Hour + 59*time.Minute + 59*time.Second},
		{in: "24:00", want: 24 * time.Hour},
		{in: "24:30", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "12:60", wantErr: true},
		{in: "noon", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClock(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.want, mustParse(t, FormatClock(got)))
		})
	}
}

func mustParse(t *testing.T, s string) time.Duration {
	t.Helper()
	d, err := ParseClock(s)
	require.NoError(t, err)
	return d
}

func TestAtIsDSTAware(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	// EST (UTC-5) before the March 8 2026 transition, EDT (UTC-4) after.
	winter := At(time.Date(2026, 3, 2, 0, 0, 0, 0, loc), 8*time.Hour+30*time.Minute, loc)
	summer := At(time.Date(2026, 3, 9, 0, 0, 0, 0, loc), 8*time.Hour+30*time.Minute, loc)

	assert.Equal(t, "2026-03-02T13:30:00.000Z", FormatISO(winter))
	assert.Equal(t, "2026-03-09T12:30:00.000Z", FormatISO(summer))
}

func TestLocationFallsBack(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Mars/Olympus").String())
	assert.Equal(t, "Europe/Lisbon", Location("Europe/Lisbon").String())
	assert.False(t, IsValid(""))
}

func TestSetDefaultChangesFallback(t *testing.T) {
	t.Cleanup(func() { _ = SetDefault(DefaultTimezone) })

	require.NoError(t, SetDefault("America/Chicago"))
	assert.Equal(t, "America/Chicago", Default().String())
	assert.Equal(t, "America/Chicago", Location("").String())
	assert.Equal(t, "America/Chicago", Location("Mars/Olympus").String())
	assert.Equal(t, "America/Chicago", Now().Location().String())

	assert.Error(t, SetDefault("Mars/Olympus"))
	assert.Error(t, SetDefault(""))
	assert.Equal(t, "America/Chicago", Default().String())
}

func TestParseInstant(t *testing.T) {
	got, err := ParseInstant("2026-05-04T14:00:00.000Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 4, 14, 0, 0, 0, time.UTC), got)

	got, err = ParseInstant("2026-05-04T10:00:00-04:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 4, 14, 0, 0, 0, time.UTC), got)

	_, err = ParseInstant("tomorrow")
	assert.Error(t, err)
}
