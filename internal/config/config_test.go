package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "table", c.OutputFormat)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 0, c.ParallelGroups)
	assert.Equal(t, filepath.Join(home, ".cohort", "reports"), c.ReportsDir)
	assert.NoError(t, c.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "config.yaml")
	in := &Global{DatasetPath: "data/students.json", OutputFormat: "markdown", ParallelGroups: 4, ReportsDir: "out", LogLevel: "debug"}
	require.NoError(t, Save(in, p))

	out, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestEnvOverridesFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("output_format: markdown\n"), 0o644))
	t.Setenv("COHORT_OUTPUT_FORMAT", "json")
	c, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "json", c.OutputFormat)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestDefaultFileUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, Save(&Global{OutputFormat: "yaml", LogLevel: "warn"}, ""))
	_, err := os.Stat(filepath.Join(home, ".cohort", "config.yaml"))
	require.NoError(t, err)

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "yaml", c.OutputFormat)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestValidate(t *testing.T) {
	ok := Global{OutputFormat: "json", LogLevel: "error"}
	assert.NoError(t, ok.Validate())

	bad := ok
	bad.OutputFormat = "html"
	assert.Error(t, bad.Validate())

	bad = ok
	bad.ParallelGroups = -1
	assert.Error(t, bad.Validate())

	bad = ok
	bad.LogLevel = "trace"
	assert.Error(t, bad.Validate())
}
