package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestInitializeToJSON(t *testing.T) {
	defer Initialize("info", false)

	var buf bytes.Buffer
	InitializeTo(&buf, "info", true)
	Component("store").Info("thread created", "thread_id", "t1")
	Log.Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "thread created", line["msg"])
	assert.Equal(t, "store", line["component"])
	assert.Equal(t, "t1", line["thread_id"])
}
