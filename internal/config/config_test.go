package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{"WORDBRAIN_DICTIONARY", "WORDBRAIN_MAX_NODES", "WORDBRAIN_BIGQUERY_PROJECT", "PORT", "LOCAL_ONLY"} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "wordbrain.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
dictionary: gs://puzzles/fr.tree
max_nodes: 2000
logging:
  level: debug
bigquery:
  project: xword-x
  table: words.fr
function:
  max_solutions: 5
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "gs://puzzles/fr.tree", cfg.Dictionary)
	assert.Equal(t, 2000, cfg.MaxNodes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "xword-x", cfg.BigQuery.Project)
	assert.Equal(t, "words.fr", cfg.BigQuery.Table)
	// Unset keys keep their defaults.
	assert.Equal(t, "word", cfg.BigQuery.Column)
	assert.Equal(t, "8080", cfg.Function.Port)
	assert.Equal(t, 5, cfg.Function.MaxSolutions)
}

func TestLoad_Invalid(t *testing.T) {
	clearEnv(t)
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "dictionary: [unterminated"},
		{"zero nodes", "max_nodes: 0"},
		{"nodes past int32", "max_nodes: 2147483648"},
		{"bad level", "logging:\n  level: loud"},
		{"no solutions", "function:\n  max_solutions: -1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "wordbrain.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))
			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("WORDBRAIN_DICTIONARY", "/tmp/en.tree")
	t.Setenv("WORDBRAIN_MAX_NODES", "42")
	t.Setenv("WORDBRAIN_BIGQUERY_PROJECT", "other")
	t.Setenv("PORT", "9090")
	t.Setenv("LOCAL_ONLY", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/en.tree", cfg.Dictionary)
	assert.Equal(t, 42, cfg.MaxNodes)
	assert.Equal(t, "other", cfg.BigQuery.Project)
	assert.Equal(t, "9090", cfg.Function.Port)
	assert.True(t, cfg.Function.LocalOnly)

	t.Run("bad max nodes", func(t *testing.T) {
		t.Setenv("WORDBRAIN_MAX_NODES", "lots")
		_, err := Load("")
		assert.Error(t, err)
	})
}
