package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vivasim/viva-api/internal/config"
)

func TestSetupReturnsLogger(t *testing.T) {
	cfg := config.ServerConfig{Port: 8080, LogLevel: "debug"}

	logger, err := Setup(cfg)

	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.True(t, logger.Enabled(context.Background(), slog.LevelDebug), "debug level should be enabled")
}

func TestSetupInvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := config.ServerConfig{Port: 8080, LogLevel: "chatty"}

	logger, err := Setup(cfg)

	require.NoError(t, err)
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug), "debug should be disabled at info level")
	assert.True(t, logger.Enabled(context.Background(), slog.LevelInfo))
}

func TestSetupLevels(t *testing.T) {
	cases := []struct {
		level   string
		enabled slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tc := range cases {
		t.Run(tc.level, func(t *testing.T) {
			logger, err := Setup(config.ServerConfig{Port: 8080, LogLevel: tc.level})
			require.NoError(t, err)
			assert.True(t, logger.Enabled(context.Background(), tc.enabled))
		})
	}
}
