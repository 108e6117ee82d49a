package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForComponentFollowsLaterHandler(t *testing.T) {
	log := ForComponent(CompTmux)

	var buf bytes.Buffer
	SetHandler(slog.NewJSONHandler(&buf, nil))
	t.Cleanup(func() { _, _ = Setup("", slog.LevelInfo) })

	log.Info("list_sessions", slog.Int("count", 3))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "list_sessions", rec["msg"])
	assert.Equal(t, "tmux", rec["component"])
	assert.EqualValues(t, 3, rec["count"])
}

func TestSetupWritesFileAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tsm.log")
	closer, err := Setup(path, slog.LevelWarn)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = Setup("", slog.LevelInfo) })

	log := ForComponent(CompConfig)
	log.Info("dropped")
	log.Warn("reload_failed", slog.String("error", "bad yaml"))
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"reload_failed"`)
	assert.Contains(t, lines[0], `"component":"config"`)
}

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}
