package cmdutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileIsNotAnError(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestForEngineOverridesTopLevelFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
format: text
log_level: warn
engines:
  ltl:
    format: json
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	ltl := cfg.ForEngine("ltl")
	assert.Equal(t, "json", ltl.Format)
	assert.Equal(t, "warn", ltl.LogLevel)

	bdd := cfg.ForEngine("bdd")
	assert.Equal(t, "text", bdd.Format)
}
