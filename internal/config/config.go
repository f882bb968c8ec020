// Package config loads tapedeck settings from TOML files and the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "tapedeck"

// Environment overrides.
const (
	EnvSource       = "TAPEDECK_SOURCE"
	EnvAudioEnabled = "TAPEDECK_AUDIO_ENABLED"
)

type Config struct {
	AudioEnabled       bool   `koanf:"audio_enabled" default:"true"`
	Source             string `koanf:"source"`
	ProgressIntervalMs int    `koanf:"progress_interval_ms" default:"150" validate:"gte=10,lte=5000"`
	Icons              string `koanf:"icons" default:"unicode" validate:"oneof=nerd unicode none"`
	MPRIS              bool   `koanf:"mpris" default:"true"`
	Notifications      bool   `koanf:"notifications" default:"false"`

	Log LogConfig `koanf:"log"`
}

// LogConfig holds logger settings. An empty File means the default state file.
type LogConfig struct {
	Level string `koanf:"level" default:"info" validate:"oneof=debug info warn error"`
	File  string `koanf:"file"`
}

// Load reads the configuration. With an explicit path only that file is
// read and it must exist; otherwise the XDG config file and ./config.toml
// are read if present, the latter winning. Environment overrides apply last.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	// Defaults go in first so that explicit false values in the file survive.
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	k := koanf.New(".")
	paths := getConfigPaths()
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "config file %s", path)
		}
		paths = []string{path}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "failed to parse %s", p)
		}
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode config")
	}

	if err := cfg.overrideFromEnv(); err != nil {
		return nil, err
	}

	cfg.Source = expandPath(cfg.Source)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}
	return cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() error {
	if v := os.Getenv(EnvSource); v != "" {
		c.Source = v
	}
	if v := os.Getenv(EnvAudioEnabled); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "%s", EnvAudioEnabled)
		}
		c.AudioEnabled = b
	}
	return nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// ProgressInterval returns the status interval as a duration.
func (c *Config) ProgressInterval() time.Duration {
	return time.Duration(c.ProgressIntervalMs) * time.Millisecond
}

// DefaultLogFile returns the log path used when none is configured.
func DefaultLogFile() (string, error) {
	p, err := xdg.StateFile(filepath.Join(appName, appName+".log"))
	if err != nil {
		return "", errors.Wrap(err, "resolve log file")
	}
	return p, nil
}

func getConfigPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, appName, "config.toml"),
		// pwd, highest priority
		"config.toml",
	}
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
