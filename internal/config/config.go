// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/abhisek/examdesk/internal/countdown"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Timer TimerConfig `toml:"timer"`
	Store StoreConfig `toml:"store"`
}

// TimerConfig maps countdown presentation settings. Values are Go duration
// strings such as "30m" or "1s".
type TimerConfig struct {
	Low      *string `toml:"low"`
	Critical *string `toml:"critical"`
	Urgent   *string `toml:"urgent"`
}

// StoreConfig maps attempt log settings.
type StoreConfig struct {
	DB *string `toml:"db"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}
	return cfg, nil
}

// Thresholds returns the urgency thresholds, falling back to the defaults
// for unset or unparsable values.
func (c FileConfig) Thresholds() countdown.Thresholds {
	def := countdown.DefaultThresholds()
	return countdown.Thresholds{
		Low:      seconds(c.Timer.Low, def.Low),
		Critical: seconds(c.Timer.Critical, def.Critical),
		Urgent:   seconds(c.Timer.Urgent, def.Urgent),
	}
}

// DBPath returns the configured database path, or "" when unset.
func (c FileConfig) DBPath() string {
	if c.Store.DB == nil {
		return ""
	}
	return *c.Store.DB
}

// Duration parses a duration string or returns the fallback if unset or invalid.
func Duration(raw *string, fallback time.Duration) time.Duration {
	if raw == nil || *raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(*raw); err == nil {
		return d
	}
	return fallback
}

func seconds(raw *string, fallback int) int {
	return int(Duration(raw, time.Duration(fallback)*time.Second) / time.Second)
}
