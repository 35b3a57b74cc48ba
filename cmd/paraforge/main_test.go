// Copyright 2024 Gustavo C. Viegas. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gviegas/paraforge/gltf"
	"github.com/gviegas/paraforge/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	out, err := run(t, "list")
	require.NoError(t, err)
	for _, name := range []string{"first_model", "gear", "composite", "tooth_count=16"} {
		assert.Contains(t, out, name)
	}
}

func TestBuildInspect(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "gear.glb")
	_, err := run(t, "build", "gear", "10", "-o", path, "--log-level", "warn")
	require.NoError(t, err)

	out, err := run(t, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "nodes:       11")
	assert.Contains(t, out, "generator:   paraforge")
}

func TestBuildJSON(t *testing.T) {
	out, err := run(t, "build", "first_model", "--format", "json", "--pretty", "-o", "-")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Len(t, doc["materials"], 2)
}

func TestConfigPrecedence(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "paraforge.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte(`
output:
  format: json
asset:
  generator: castle-builder
`), 0o644))

	// The file selects JSON.
	out, err := run(t, "--config", cfg, "build", "cubes", "-o", "-")
	require.NoError(t, err)
	assert.Contains(t, out, `"generator":"castle-builder"`)

	// Flags win over the file.
	path := filepath.Join(dir, "cubes.glb")
	_, err = run(t, "--config", cfg, "build", "cubes", "--format", "glb", "-o", path)
	require.NoError(t, err)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "glTF", string(b[:4]))
	out, err = run(t, "--config", cfg, "inspect", path)
	require.NoError(t, err)
	assert.Contains(t, out, "castle-builder")
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "paraforge.toml")
	out, err := run(t, "config", path, "--log-level", "debug")
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	want := config.Default()
	assert.Equal(t, want.Output, cfg.Output)
}

func TestErrors(t *testing.T) {
	_, err := run(t, "build", "nope", "-o", "-")
	assert.Error(t, err)
	_, err = run(t, "build", "gear", "-o", "-", "--log-level", "loud")
	assert.Error(t, err)
	_, err = run(t, "build", "gear", "--pretty", "-o", "-")
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.glb")
	require.NoError(t, os.WriteFile(bad, []byte("not a glb file at all"), 0o644))
	_, err = run(t, "inspect", bad)
	assert.ErrorIs(t, err, gltf.ErrNotGLB)
}
