package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runoshun/editflow/internal/domain"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"WARN", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"unknown", zerolog.InfoLevel}, // default
		{"", zerolog.InfoLevel},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func readEntries(t *testing.T, content string) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		if line == "" {
			continue
		}
		var e map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &e))
		entries = append(entries, e)
	}
	return entries
}

func TestLogger_WritesToDataDir(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, zerolog.InfoLevel)
	defer func() { _ = logger.Close() }()

	logger.Info("watch", "snapshot received")
	logger.Error("store", "connection lost")

	content, err := os.ReadFile(domain.LogPath(dataDir))
	require.NoError(t, err)

	entries := readEntries(t, string(content))
	require.Len(t, entries, 2)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "watch", entries[0]["mod"])
	assert.Equal(t, "snapshot received", entries[0]["message"])
	assert.Contains(t, entries[0], "time")
	assert.Equal(t, "error", entries[1]["level"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWriter(&buf, zerolog.WarnLevel)

	logger.Debug("x", "hidden")
	logger.Info("x", "hidden")
	logger.Warn("x", "shown")

	entries := readEntries(t, buf.String())
	require.Len(t, entries, 1)
	assert.Equal(t, "shown", entries[0]["message"])
}

func TestLogger_DisabledWithoutDataDir(t *testing.T) {
	logger := New("", zerolog.DebugLevel)

	logger.Info("x", "nothing happens")

	assert.NoError(t, logger.Close())
}

func TestLogger_NoFileUntilFirstEntry(t *testing.T) {
	dataDir := t.TempDir()
	logger := New(dataDir, zerolog.InfoLevel)
	defer func() { _ = logger.Close() }()

	logger.Debug("x", "below level")

	_, err := os.Stat(domain.LogPath(dataDir))
	assert.True(t, os.IsNotExist(err))
}
