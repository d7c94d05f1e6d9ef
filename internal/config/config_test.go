package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "classbridge.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.NoError(t, err)
	assert.Equal(t, ModeFlexible, cfg.Mode)
	assert.Equal(t, "generated", cfg.OutputDir)
	assert.Zero(t, cfg.Workers)
	assert.Empty(t, cfg.Include)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
mode = "strict"
output_dir = "out/java"
include = ["src/**/*.cpp", "include/**/*.hpp"]
exclude = ["**/test/**"]
workers = 4
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ModeStrict, cfg.Mode)
	assert.Equal(t, "out/java", cfg.OutputDir)
	assert.Equal(t, []string{"src/**/*.cpp", "include/**/*.hpp"}, cfg.Include)
	assert.Equal(t, []string{"**/test/**"}, cfg.Exclude)
	assert.Equal(t, 4, cfg.Workers)
}

func TestLoad_PartialFileKeepsRemainingDefaults(t *testing.T) {
	path := writeConfig(t, `workers = 2`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, ModeFlexible, cfg.Mode)
	assert.Equal(t, "generated", cfg.OutputDir)
}

func TestLoad_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown mode", content: `mode = "pedantic"`},
		{name: "negative workers", content: `workers = -1`},
		{name: "empty output dir", content: `output_dir = ""`},
		{name: "malformed toml", content: `mode = [`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))

			assert.Error(t, err)
		})
	}
}

func TestValidate_DefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}
