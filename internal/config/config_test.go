package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tacticboard.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 1050.0, cfg.Board.Width)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"
format = "json"

[playback]
speed = 2.5
fps = 30

[history]
limit = 50
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 2.5, cfg.Playback.Speed)
	assert.Equal(t, 30, cfg.Playback.FPS)
	assert.Equal(t, 50, cfg.History.Limit)
	assert.Equal(t, 680.0, cfg.Board.Height)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "[playback]\nsped = 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown keys")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvSpeed, "0.5")
	t.Setenv(EnvFPS, "120")

	cfg, err := Load(writeConfig(t, "[playback]\nspeed = 2\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 0.5, cfg.Playback.Speed)
	assert.Equal(t, 120, cfg.Playback.FPS)
}

func TestEnvOverrideInvalid(t *testing.T) {
	t.Setenv(EnvFPS, "fast")
	_, err := Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvFPS)
}

func TestValidateClamps(t *testing.T) {
	cfg := Config{
		Playback: Playback{Speed: 9, FPS: -1},
		History:  History{Limit: -3},
	}
	cfg.Validate()
	assert.Equal(t, 3.0, cfg.Playback.Speed)
	assert.Equal(t, DefaultFPS, cfg.Playback.FPS)
	assert.Zero(t, cfg.History.Limit)
	assert.Equal(t, 1050.0, cfg.Board.Width)

	cfg.Playback.Speed = 0.01
	cfg.Validate()
	assert.Equal(t, 0.1, cfg.Playback.Speed)
}
