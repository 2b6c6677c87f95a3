package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFilePath(t *testing.T) {
	now := time.Date(2025, time.January, 8, 6, 30, 0, 0, time.UTC)

	assert.Equal(t, filepath.Join("logs", "scheduler_2025-01-08_06-30-00.log"), logFilePath("", now))
	assert.Equal(t, filepath.Join("logs", "scheduler_test_2025-01-08_06-30-00.log"), logFilePath("test", now))
}

func TestInitLogger_WritesLogFile(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(orig) })

	logger, err := InitLogger("test")
	require.NoError(t, err)

	logger.Debug("debug goes to the file only")
	logger.Info("starting up")
	// Sync can report EINVAL for the stdout sink; the file sink still flushes.
	_ = logger.Sync()

	entries, err := os.ReadDir("logs")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].Name(), "scheduler_test_")

	content, err := os.ReadFile(filepath.Join("logs", entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "debug goes to the file only")
	assert.Contains(t, string(content), "starting up")
}
