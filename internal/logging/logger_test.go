package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupHandlerText(t *testing.T) {
	tests := []struct {
		name          string
		logLevel      string
		expectedLevel log.Level
	}{
		{"trace level", "trace", log.DebugLevel},
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"uppercase level", "INFO", log.InfoLevel},
		{"unknown falls back to info", "chatty", log.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			handler := SetupHandlerText(tt.logLevel, buf)
			require.NotNil(t, handler)
			assert.Equal(t, tt.expectedLevel, handler.GetLevel())

			logger := slog.New(handler)
			logger.Error("test message", "key", "value")
			output := buf.String()
			assert.Contains(t, output, "test message")
			assert.Contains(t, output, "key")
			assert.Contains(t, output, "value")
		})
	}
}

func TestSetupHandlerText_FiltersBelowLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(SetupHandlerText("warn", buf))
	logger.Info("hidden")
	logger.Debug("hidden too")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetupHandlerText_NilWriter(t *testing.T) {
	handler := SetupHandlerText("info", nil)
	require.NotNil(t, handler)
	slog.New(handler).Debug("not written")
}

func TestNew_NoFile(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, closer, err := New(Options{Level: "info", Console: buf, Profile: termenv.Ascii})
	require.NoError(t, err)
	defer closer.Close()

	logger.With("component", "dispatch").Info("test message")
	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), "component=dispatch")
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestNew_WithFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "xresconv.log")
	console := &bytes.Buffer{}

	logger, closer, err := New(Options{Level: "info", Console: console, Profile: termenv.TrueColor, LogFile: path})
	require.NoError(t, err)

	logger.Warn("to file", "item", "role.xlsx")
	logger.Debug("below level")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(b)
	assert.Contains(t, content, "to file")
	assert.Contains(t, content, "item=role.xlsx")
	assert.NotContains(t, content, "below level")
	assert.NotContains(t, content, "\x1b[", "file sink must stay uncolored")
	assert.Contains(t, console.String(), "to file")
}

func TestNew_AppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xresconv.log")
	require.NoError(t, os.WriteFile(path, []byte("previous run\n"), 0o644))

	logger, closer, err := New(Options{Level: "info", Console: &bytes.Buffer{}, LogFile: path})
	require.NoError(t, err)
	logger.Info("this run")
	require.NoError(t, closer.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "previous run\n"))
	assert.Contains(t, string(b), "this run")
}

func TestNew_BadFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, _, err := New(Options{Level: "info", LogFile: filepath.Join(blocker, "sub", "x.log")})
	assert.Error(t, err)
}

func TestFanoutWithAttrsAndGroups(t *testing.T) {
	a, b := &bytes.Buffer{}, &bytes.Buffer{}
	h := Fanout(
		slog.NewTextHandler(a, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(b, &slog.HandlerOptions{Level: slog.LevelWarn}),
	)
	logger := slog.New(h).With("run_id", "r1").WithGroup("job")

	logger.Debug("debug only a", "item", "x")
	logger.Warn("both", "item", "y")

	assert.Contains(t, a.String(), "debug only a")
	assert.Contains(t, a.String(), "run_id=r1")
	assert.Contains(t, a.String(), "job.item=x")
	assert.NotContains(t, b.String(), "debug only a")
	assert.Contains(t, b.String(), "job.item=y")
}
