package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("info", "json", &buf)

	l.Info("task created", slog.Int("task_id", 7))
	l.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "task created", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, float64(7), entry["task_id"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New("debug", "text", &buf)

	l.Debug("connected", "driver", "sqlite")

	out := buf.String()
	assert.Contains(t, out, "connected")
	assert.Contains(t, out, "driver=sqlite")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("nonsense"))
}
