package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "production", "")

	logger.Debug("hidden")
	logger.Info("provider linked", "provider", "Google")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1, "debug is filtered in production")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "provider linked", entry["msg"])
	assert.Equal(t, "Google", entry["provider"])
}

func TestNew_DevelopmentText(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "development", "")

	logger.Debug("state saved")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), `msg="state saved"`)
}

func TestNew_LevelOverride(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "development", "warn")

	logger.Info("dropped")
	logger.Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestNew_InvalidLevelIgnored(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, "production", "loud")

	logger.Info("still info")
	assert.Contains(t, buf.String(), "still info")
}

func TestNewLogger(t *testing.T) {
	assert.NotNil(t, NewLogger("production"))
	assert.NotNil(t, NewLogger("development"))
}
