package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelForVerbosity(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zerolog.Level
	}{
		{-1, zerolog.WarnLevel},
		{0, zerolog.WarnLevel},
		{1, zerolog.InfoLevel},
		{2, zerolog.DebugLevel},
		{5, zerolog.DebugLevel},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, LevelForVerbosity(tt.verbosity), "verbosity %d", tt.verbosity)
	}
}

func TestNew(t *testing.T) {
	t.Run("quiet by default", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Options{Output: &buf, Format: "json"})
		require.NotNil(t, logger)

		logger.Info().Msg("hidden")
		logger.Warn().Msg("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "shown")
	})

	t.Run("debug with -vv", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Options{Output: &buf, Format: "json", Verbosity: 2})
		logger.Debug().Msg("debug test")
		assert.Contains(t, buf.String(), "debug test")
	})

	t.Run("pretty format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(Options{Output: &buf, Verbosity: 1, NoColor: true})
		logger.Info().Str("path", "/tmp/x").Msg("using path")
		assert.Contains(t, buf.String(), "using path")
		assert.Contains(t, buf.String(), "/tmp/x")
	})
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Output: &buf, Format: "json", Verbosity: 1})

	logger.WithComponent("release").Info().Msg("test message")
	assert.Contains(t, buf.String(), "release")
	assert.Contains(t, buf.String(), "test message")
}

func TestNop(t *testing.T) {
	logger := Nop()
	require.NotNil(t, logger)
	logger.Error().Msg("nothing happens")
}
