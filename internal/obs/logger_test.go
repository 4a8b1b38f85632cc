package obs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" warning "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNewLogger_ProdWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger("prod", "info", &buf)

	logger.Debug("hidden")
	logger.Info("store replaced", "hotels", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "store replaced", entry["msg"])
	assert.Equal(t, float64(2), entry["hotels"])
}

func TestNewLogger_DevIsHumanReadable(t *testing.T) {
	var buf bytes.Buffer
	NewLogger("dev", "debug", &buf).Debug("refresh scheduled")

	assert.Contains(t, buf.String(), "refresh scheduled")
	assert.False(t, json.Valid(buf.Bytes()))
}
