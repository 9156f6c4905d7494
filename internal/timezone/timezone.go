package timezone

import (
	"fmt"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

// DefaultTimezone is the built-in fallback until SetDefault is called.
const DefaultTimezone = "America/New_York"

var defaultLoc atomic.Pointer[time.Location]

func init() {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	defaultLoc.Store(loc)
}

const (
	DateLayout = "2006-01-02"
	ISOLayout  = "2006-01-02T15:04:05.000Z"
)

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

// SetDefault replaces the process-wide fallback zone. Unknown or empty zones
// are rejected and leave the current default in place.
func SetDefault(tz string) error {
	if !IsValid(tz) {
		return fmt.Errorf("timezone: unknown default %q", tz)
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return fmt.Errorf("timezone: load %q: %w", tz, err)
	}
	defaultLoc.Store(loc)
	return nil
}

func Default() *time.Location {
	return defaultLoc.Load()
}

// Location resolves tz, falling back to the configured default when tz is
// empty or unknown.
func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}
	return Default()
}

func Now() time.Time {
	return time.Now().In(Default())
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// StorageWeekday maps Go's Sunday-first weekday onto the stored Monday-first
// convention (0=Monday .. 6=Sunday).
func StorageWeekday(t time.Time) int {
	day := int(t.Weekday())
	if day == 0 {
		return 6
	}
	return day - 1
}

// ParseClock parses a timezone-naive "HH:MM" or "HH:MM:SS" wall-clock value
// into an offset from local midnight. "24:00" is accepted as end of day.
func ParseClock(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("timezone: invalid clock %q", s)
	}

	values := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return 0, fmt.Errorf("timezone: invalid clock %q", s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("timezone: invalid clock %q", s)
		}
		values[i] = n
	}

	h, m, sec := values[0], values[1], values[2]
	if m > 59 || sec > 59 || h > 24 || (h == 24 && (m != 0 || sec != 0)) {
		return 0, fmt.Errorf("timezone: clock out of range %q", s)
	}

	return time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(sec)*time.Second, nil
}

// FormatClock renders an offset from midnight as "HH:MM:SS".
func FormatClock(d time.Duration) string {
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// At builds the instant for a wall-clock offset on the calendar date of day,
// interpreted in loc. DST gaps are normalized the way time.Date does.
func At(day time.Time, clock time.Duration, loc *time.Location) time.Time {
	h := int(clock / time.Hour)
	m := int(clock % time.Hour / time.Minute)
	s := int(clock % time.Minute / time.Second)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, loc)
}

func StartOfDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
}

// DateIn returns the provider-local calendar date of t as YYYY-MM-DD.
func DateIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// FormatISO renders t as a UTC ISO-8601 instant with millisecond precision.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOLayout)
}

// ParseInstant accepts RFC 3339 instants (with or without fractional seconds).
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("timezone: invalid instant %q: %w", s, err)
	}
	return t.UTC(), nil
}
