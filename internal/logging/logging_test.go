package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aloud.log")
	log, err := New(Options{Level: "debug", File: path})
	require.NoError(t, err)

	log.Debug("timer started")
	log.Info("llm request")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "timer started", entry["msg"])
}

func TestNew_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aloud.log")
	log, err := New(Options{Level: "WARN", File: path})
	require.NoError(t, err)

	log.Info("dropped")
	log.Warn("kept")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "dropped")
	assert.Contains(t, string(data), "kept")
}

func TestNew_VerboseOverridesLevel(t *testing.T) {
	log, err := New(Options{Level: "error", Verbose: true, File: filepath.Join(t.TempDir(), "x.log")})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(-1)) // debug
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(Options{Level: "loud"})
	assert.Error(t, err)
}
