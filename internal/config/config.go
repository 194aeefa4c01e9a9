// Package config provides YAML-based game configuration loading and
// difficulty presets.
package config

import (
	"fmt"
	"time"
)

// GameConfig contains all configuration for Ice Jumper.
type GameConfig struct {
	River   RiverConfig   `yaml:"river"`
	Floes   FloeConfig    `yaml:"floes"`
	Timing  TimingConfig  `yaml:"timing"`
	Session SessionConfig `yaml:"session"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// RiverConfig defines the river geometry.
type RiverConfig struct {
	Width      int `yaml:"width"`
	BaseHeight int `yaml:"base_height"` // Height of level 1; grows by 2 per level
}

// FloeConfig defines the random floe layout. Max values are exclusive.
type FloeConfig struct {
	MinGap    int `yaml:"min_gap"`
	MaxGap    int `yaml:"max_gap"`
	MinLength int `yaml:"min_length"`
	MaxLength int `yaml:"max_length"`
}

// TimingConfig defines the two simulation cadences and the level time budget.
type TimingConfig struct {
	FloeIntervalMS      int `yaml:"floe_interval_ms"`
	CountdownIntervalMS int `yaml:"countdown_interval_ms"`
	LevelSeconds        int `yaml:"level_seconds"`
}

// FloeInterval returns the floe advance period.
func (t TimingConfig) FloeInterval() time.Duration {
	return time.Duration(t.FloeIntervalMS) * time.Millisecond
}

// CountdownInterval returns the level clock period.
func (t TimingConfig) CountdownInterval() time.Duration {
	return time.Duration(t.CountdownIntervalMS) * time.Millisecond
}

// SessionConfig defines lives and the number of levels.
type SessionConfig struct {
	Lives     int `yaml:"lives"`
	LastLevel int `yaml:"last_level"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string `yaml:"backend"` // "file" or "sqlite"
	Dir     string `yaml:"dir"`
}

// LogConfig configures the rotating log file.
type LogConfig struct {
	File       string `yaml:"file"`
	Level      string `yaml:"level"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Validate checks the invariants the simulation relies on.
func (c GameConfig) Validate() error {
	switch {
	case c.River.Width < 10:
		return fmt.Errorf("config: river width %d is too small (min 10)", c.River.Width)
	case c.River.BaseHeight < 7 || c.River.BaseHeight%2 == 0:
		return fmt.Errorf("config: river base_height %d must be odd and at least 7", c.River.BaseHeight)
	case c.Floes.MinGap < 2 || c.Floes.MaxGap <= c.Floes.MinGap:
		return fmt.Errorf("config: floe gap range [%d,%d) is invalid", c.Floes.MinGap, c.Floes.MaxGap)
	case c.Floes.MinLength < 2 || c.Floes.MaxLength <= c.Floes.MinLength:
		return fmt.Errorf("config: floe length range [%d,%d) is invalid", c.Floes.MinLength, c.Floes.MaxLength)
	case c.Timing.FloeIntervalMS <= 0 || c.Timing.CountdownIntervalMS <= 0:
		return fmt.Errorf("config: timing intervals must be positive")
	case c.Timing.LevelSeconds <= 0:
		return fmt.Errorf("config: level_seconds must be positive")
	case c.Session.Lives <= 0:
		return fmt.Errorf("config: lives must be positive")
	case c.Session.LastLevel <= 0:
		return fmt.Errorf("config: last_level must be positive")
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // Config file values as written
)

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *GameConfig, preset DifficultyPreset) error {
	switch preset {
	case "", DifficultyNormal, DifficultyFixed:
	case DifficultyEasy:
		cfg.Session.Lives = 5
		cfg.Timing.LevelSeconds = 20
		cfg.Floes.MaxGap = cfg.Floes.MinGap + 1
	case DifficultyHard:
		cfg.Session.Lives = 2
		cfg.Timing.LevelSeconds = 12
		cfg.Timing.FloeIntervalMS = 80
	default:
		return fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", preset)
	}
	return nil
}
