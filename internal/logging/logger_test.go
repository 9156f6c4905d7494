package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name  string
		env   string
		level string
		on    zap.AtomicLevel
		want  bool
	}{
		{"development logs debug", "development", "", zap.NewAtomicLevelAt(zap.DebugLevel), true},
		{"production hides debug", "production", "", zap.NewAtomicLevelAt(zap.DebugLevel), false},
		{"explicit warn hides info", "development", "warn", zap.NewAtomicLevelAt(zap.InfoLevel), false},
		{"unknown level keeps default", "production", "loud", zap.NewAtomicLevelAt(zap.InfoLevel), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := New(tt.env, tt.level)
			require.NoError(t, err)
			assert.Equal(t, tt.want, l.Core().Enabled(tt.on.Level()))
		})
	}
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))

	l := zap.NewExample()
	assert.Same(t, l, OrNop(l))
}
