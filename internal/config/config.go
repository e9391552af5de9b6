package config

import (
	"fmt"
	"os"
	"strconv"

	"TacticBoard/internal/logger"
	"TacticBoard/internal/playback"
	"TacticBoard/internal/state"

	"github.com/BurntSushi/toml"
)

// Environment overrides, applied after the file.
const (
	EnvLogLevel  = "TACTICBOARD_LOG_LEVEL"
	EnvLogFormat = "TACTICBOARD_LOG_FORMAT"
	EnvSpeed     = "TACTICBOARD_SPEED"
	EnvFPS       = "TACTICBOARD_FPS"
)

const DefaultFPS = 60

type Playback struct {
	Speed float64 `toml:"speed"`
	FPS   int     `toml:"fps"`
}

type History struct {
	// Limit caps the undo stack; 0 keeps everything.
	Limit int `toml:"limit"`
}

type Board struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Config is the full runtime configuration.
type Config struct {
	Log      logger.Config `toml:"log"`
	Playback Playback      `toml:"playback"`
	History  History       `toml:"history"`
	Board    Board         `toml:"board"`
}

func Default() Config {
	return Config{
		Log:      logger.Config{Level: "info", Format: "text"},
		Playback: Playback{Speed: 1, FPS: DefaultFPS},
		Board:    Board{Width: state.BoardWidth, Height: state.BoardHeight},
	}
}

// Load returns the defaults overlaid with the TOML file at path (if any)
// and then the environment. Out-of-range values are clamped.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return Config{}, fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	cfg.Validate()
	return cfg, nil
}

// Validate clamps every field into its usable range.
func (c *Config) Validate() {
	c.Playback.Speed = playback.ClampSpeed(c.Playback.Speed)
	if c.Playback.FPS <= 0 {
		c.Playback.FPS = DefaultFPS
	}
	c.Playback.FPS = min(c.Playback.FPS, 240)
	if c.History.Limit < 0 {
		c.History.Limit = 0
	}
	if c.Board.Width <= 0 {
		c.Board.Width = state.BoardWidth
	}
	if c.Board.Height <= 0 {
		c.Board.Height = state.BoardHeight
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvSpeed); ok && v != "" {
		speed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSpeed, err)
		}
		c.Playback.Speed = speed
	}
	if v, ok := lookup(EnvFPS); ok && v != "" {
		fps, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvFPS, err)
		}
		c.Playback.FPS = fps
	}
	return nil
}
