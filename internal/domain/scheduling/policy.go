package scheduling

import "time"

// Policy carries the booking rules shared by slot generation, validation and
// suggestions.
type Policy struct {
	// Slots sit on a fixed grid regardless of the requested duration.
	Grid time.Duration
	// Candidates must start strictly after now+LeadTime.
	LeadTime    time.Duration
	HorizonDays int

	BufferMinutes int

	// Provider and patient appointments are fetched in [t-Window, t+Window]
	// when validating a booking at t.
	ValidationWindow time.Duration

	SuggestionBufferMinutes int
	SuggestionMaxAttempts   int
	SuggestionWindow        time.Duration
	SuggestionDayStartHour  int
	SuggestionDayEndHour    int
}

func DefaultPolicy() Policy {
	return Policy{
		Grid:                    30 * time.Minute,
		LeadTime:                30 * time.Minute,
		HorizonDays:             21,
		BufferMinutes:           0,
		ValidationWindow:        24 * time.Hour,
		SuggestionBufferMinutes: 15,
		SuggestionMaxAttempts:   50,
		SuggestionWindow:        7 * 24 * time.Hour,
		SuggestionDayStartHour:  9,
		SuggestionDayEndHour:    17,
	}
}

// Normalize replaces unset or invalid fields with defaults.
func (p Policy) Normalize() Policy {
	d := DefaultPolicy()
	if p.Grid <= 0 {
		p.Grid = d.Grid
	}
	if p.LeadTime < 0 {
		p.LeadTime = d.LeadTime
	}
	if p.HorizonDays <= 0 {
		p.HorizonDays = d.HorizonDays
	}
	if p.BufferMinutes < 0 {
		p.BufferMinutes = 0
	}
	if p.ValidationWindow <= 0 {
		p.ValidationWindow = d.ValidationWindow
	}
	if p.SuggestionBufferMinutes < 0 {
		p.SuggestionBufferMinutes = d.SuggestionBufferMinutes
	}
	if p.SuggestionMaxAttempts <= 0 {
		p.SuggestionMaxAttempts = d.SuggestionMaxAttempts
	}
	if p.SuggestionWindow <= 0 {
		p.SuggestionWindow = d.SuggestionWindow
	}
	if p.SuggestionDayEndHour <= p.SuggestionDayStartHour {
		p.SuggestionDayStartHour = d.SuggestionDayStartHour
		p.SuggestionDayEndHour = d.SuggestionDayEndHour
	}
	return p
}
