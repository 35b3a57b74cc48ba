// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zapcore.Level{
		"":      zapcore.InfoLevel,
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
	} {
		lvl, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, lvl, in)
	}
	_, err := ParseLevel("verbose")
	assert.Error(t, err)
}

func TestConsole(t *testing.T) {
	var buf bytes.Buffer
	log, err := New("warn", FileConfig{}, &buf)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown", zap.Int("n", 3))
	require.NoError(t, log.Sync())
	s := buf.String()
	assert.NotContains(t, s, "hidden")
	assert.Contains(t, s, "WARN shown")
	assert.Contains(t, s, `{"n": 3}`)
}

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paraforge.log")
	log, err := New("debug", DefaultFileConfig(path), nil)
	require.NoError(t, err)
	log.Debug("packed", zap.Int("vertices", 8))
	require.NoError(t, log.Sync())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 1)
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "packed", entry["msg"])
	assert.Equal(t, float64(8), entry["vertices"])
}

func TestNop(t *testing.T) {
	log, err := New("info", FileConfig{}, nil)
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
	_, err = New("loud", FileConfig{}, nil)
	assert.Error(t, err)
}
