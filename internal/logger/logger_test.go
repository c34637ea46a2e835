package logger

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("dev environment", func(t *testing.T) {
		l, err := New(EnvDevelopment, LevelDebug)

		require.NoError(t, err)
		require.NotNil(t, l)
	})

	t.Run("prod environment", func(t *testing.T) {
		l, err := New(EnvProduction, LevelInfo)

		require.NoError(t, err)
		require.NotNil(t, l)
	})

	t.Run("unknown environment", func(t *testing.T) {
		_, err := New("staging", LevelInfo)

		require.Error(t, err, "unknown environment should be refused")
	})
}

func TestNewNoOp(t *testing.T) {
	t.Parallel()

	l := NewNoOp()

	// Must swallow everything without panicking
	l.Debug("msg")
	l.Info("msg", "key", "value")
	l.Warn("msg")
	l.Error("msg")
	l.With("key", "value").Info("msg")
}

func TestParseLevelString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{"DEBUG", slog.LevelDebug},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevelString(tt.level), "level %q", tt.level)
	}
}
