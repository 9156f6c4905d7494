package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("SLOT_HORIZON_DAYS", "")
	t.Setenv("BOOKING_HOLD_TTL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, 21, cfg.SlotHorizonDays)
	assert.Equal(t, 30*time.Second, cfg.BookingHoldTTL)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("SLOT_HORIZON_DAYS", "14")
	t.Setenv("SLOT_GRID_MINUTES", "15")
	t.Setenv("BOOKING_BUFFER_MINUTES", "10")
	t.Setenv("BOOKING_HOLD_TTL", "45s")
	t.Setenv("REDIS_DB", "not-a-number")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com, ,https://admin.example.com")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 45*time.Second, cfg.BookingHoldTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)

	p := cfg.Policy()
	assert.Equal(t, 14, p.HorizonDays)
	assert.Equal(t, 15*time.Minute, p.Grid)
	assert.Equal(t, 10, p.BufferMinutes)
	assert.Equal(t, 30*time.Minute, p.LeadTime)
}

func TestPolicyNormalizesInvalidValues(t *testing.T) {
	cfg := &Config{SlotHorizonDays: 0, SlotGridMinutes: -5, BookingLeadMinutes: 30, BookingBufferMinutes: -1}

	p := cfg.Policy()
	assert.Equal(t, 21, p.HorizonDays)
	assert.Equal(t, 30*time.Minute, p.Grid)
	assert.Equal(t, 0, p.BufferMinutes)
}
