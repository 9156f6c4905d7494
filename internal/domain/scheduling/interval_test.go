package scheduling

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/telehealth-scheduler/internal/models"
)

func utc(hour, min int) time.Time {
	return time.Date(2026, 3, 2, hour, min, 0, 0, time.UTC)
}

func TestCheckConflict(t *testing.T) {
	existing := []models.Appointment{
		{ID: 7, Datetime: utc(10, 0), Duration: 30},
	}

	tests := []struct {
		name     string
		start    time.Time
		duration int
		buffer   int
		want     bool
	}{
		{"ends exactly at existing start", utc(9, 30), 30, 0, false},
		{"starts exactly at existing end", utc(10, 30), 30, 0, false},
		{"overlaps head", utc(9, 45), 30, 0, true},
		{"overlaps tail", utc(10, 15), 30, 0, true},
		{"contains existing", utc(9, 30), 90, 0, true},
		{"inside existing", utc(10, 5), 10, 0, true},
		{"buffer reaches back", utc(10, 30), 30, 15, true},
		{"buffer reaches forward", utc(9, 30), 30, 15, true},
		{"clear of buffer", utc(10, 45), 30, 15, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CheckConflict(tt.start, tt.duration, existing, tt.buffer)
			assert.Equal(t, tt.want, res.HasConflict)
			if tt.want {
				require.NotNil(t, res.ConflictingAppointment)
				assert.Equal(t, uint(7), res.ConflictingAppointment.ID)
				assert.NotEmpty(t, res.ConflictReason)
			} else {
				assert.Nil(t, res.ConflictingAppointment)
			}
		})
	}
}

func TestCheckConflictReportsFirstMatch(t *testing.T) {
	existing := []models.Appointment{
		{ID: 1, Datetime: utc(8, 0), Duration: 30},
		{ID: 2, Datetime: utc(10, 0), Duration: 60},
		{ID: 3, Datetime: utc(10, 30), Duration: 30},
	}

	res := CheckConflict(utc(10, 30), 30, existing, 0)
	require.True(t, res.HasConflict)
	assert.Equal(t, uint(2), res.ConflictingAppointment.ID)
}

func TestIntervalContains(t *testing.T) {
	window := Interval{Start: utc(9, 0), End: utc(17, 0)}

	assert.True(t, window.Contains(NewInterval(utc(16, 30), 30)))
	assert.False(t, window.Contains(NewInterval(utc(16, 45), 30)))
	assert.False(t, window.Contains(NewInterval(utc(8, 45), 30)))
}
