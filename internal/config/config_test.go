package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvSource, "")
	t.Setenv(EnvAudioEnabled, "")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(writeConfig(t, ""))

	require.NoError(t, err)
	assert.True(t, cfg.AudioEnabled)
	assert.Empty(t, cfg.Source)
	assert.Equal(t, 150, cfg.ProgressIntervalMs)
	assert.Equal(t, 150*time.Millisecond, cfg.ProgressInterval())
	assert.Equal(t, "unicode", cfg.Icons)
	assert.True(t, cfg.MPRIS)
	assert.False(t, cfg.Notifications)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileValues(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
audio_enabled = false
source = "/music/side-a.flac"
progress_interval_ms = 500
icons = "none"
mpris = false
notifications = true

[log]
level = "debug"
file = "/tmp/tapedeck.log"
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.False(t, cfg.AudioEnabled, "explicit false must survive defaults")
	assert.Equal(t, "/music/side-a.flac", cfg.Source)
	assert.Equal(t, 500*time.Millisecond, cfg.ProgressInterval())
	assert.Equal(t, "none", cfg.Icons)
	assert.False(t, cfg.MPRIS)
	assert.True(t, cfg.Notifications)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/tapedeck.log", cfg.Log.File)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
audio_enabled = true
source = "/music/a.mp3"
`)
	t.Setenv(EnvSource, "https://example.com/b.ogg")
	t.Setenv(EnvAudioEnabled, "false")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/b.ogg", cfg.Source)
	assert.False(t, cfg.AudioEnabled)
}

func TestLoad_InvalidEnvBool(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAudioEnabled, "maybe")

	_, err := Load(writeConfig(t, ""))

	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvAudioEnabled)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{"interval too small", "progress_interval_ms = 5", "ProgressIntervalMs"},
		{"interval too large", "progress_interval_ms = 60000", "ProgressIntervalMs"},
		{"unknown icons", `icons = "fancy"`, "Icons"},
		{"unknown log level", "[log]\nlevel = \"loud\"", "Level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)

			_, err := Load(writeConfig(t, tt.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "audio_enabled = = true"))

	require.Error(t, err)
}

func TestLoad_ExpandsHomeInSource(t *testing.T) {
	clearEnv(t)
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	cfg, err := Load(writeConfig(t, `source = "~/music/a.mp3"`))

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "music", "a.mp3"), cfg.Source)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"tilde expands to home", "~/music", filepath.Join(home, "music")},
		{"absolute path unchanged", "/usr/local/music", "/usr/local/music"},
		{"url unchanged", "https://example.com/a.mp3", "https://example.com/a.mp3"},
		{"empty string unchanged", "", ""},
		{"tilde only", "~", home},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := expandPath(tt.input); result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	require.Len(t, paths, 2)
	assert.Equal(t, "config.toml", paths[1], "local config.toml has the highest priority")
	assert.Equal(t, filepath.Join("tapedeck", "config.toml"), filepath.Join(filepath.Base(filepath.Dir(paths[0])), filepath.Base(paths[0])))
}
