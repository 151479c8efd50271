package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetupLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := SetupLogger("info", "json", &buf)

	log.Debug("hidden")
	log.Info("visible", slog.String("module", "test"))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "visible", entry["msg"])
	require.Equal(t, "test", entry["module"])
}

func TestSetupLogger_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	log := SetupLogger("DEBUG", "text", &buf)

	log.Debug("debug line")
	require.Contains(t, buf.String(), "msg=\"debug line\"")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		require.Equal(t, want, parseLevel(in), in)
	}
}
