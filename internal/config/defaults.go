package config

import (
	_ "embed"
)

//go:embed defaults/icejumper.yaml
var defaultYAML []byte

// Default returns the hardcoded default configuration.
// It matches defaults/icejumper.yaml and is used if the embedded file fails to parse.
func Default() GameConfig {
	return GameConfig{
		River: RiverConfig{
			Width:      70,
			BaseHeight: 7,
		},
		Floes: FloeConfig{
			MinGap:    3,
			MaxGap:    5,
			MinLength: 2,
			MaxLength: 8,
		},
		Timing: TimingConfig{
			FloeIntervalMS:      100,
			CountdownIntervalMS: 1000,
			LevelSeconds:        15,
		},
		Session: SessionConfig{
			Lives:     3,
			LastLevel: 10,
		},
		Storage: StorageConfig{
			Backend: "file",
			Dir:     "~/.icejumper",
		},
		Log: LogConfig{
			File:       "~/.icejumper/icejumper.log",
			Level:      "info",
			MaxSizeMB:  5,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
