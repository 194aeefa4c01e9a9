package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var fromYAML GameConfig
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if fromYAML != Default() {
		t.Errorf("embedded defaults differ from Default():\n%+v\n%+v", fromYAML, Default())
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("Default() should validate, got %v", err)
	}
}

func TestLoadCustomPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("session:\n  lives: 7\ntiming:\n  level_seconds: 30\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Session.Lives != 7 || cfg.Timing.LevelSeconds != 30 {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if cfg.River.Width != 70 || cfg.Session.LastLevel != 10 {
		t.Errorf("unspecified fields should keep defaults: %+v", cfg)
	}
}

func TestLoadCustomMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with a missing custom path should fail")
	}
}

func TestLoadCustomInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("river:\n  base_height: 8\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("even base_height should be rejected")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*GameConfig)
	}{
		{"narrow river", func(c *GameConfig) { c.River.Width = 5 }},
		{"short river", func(c *GameConfig) { c.River.BaseHeight = 5 }},
		{"empty gap range", func(c *GameConfig) { c.Floes.MaxGap = c.Floes.MinGap }},
		{"tiny floes", func(c *GameConfig) { c.Floes.MinLength = 1 }},
		{"zero floe interval", func(c *GameConfig) { c.Timing.FloeIntervalMS = 0 }},
		{"zero time", func(c *GameConfig) { c.Timing.LevelSeconds = 0 }},
		{"no lives", func(c *GameConfig) { c.Session.Lives = 0 }},
		{"no levels", func(c *GameConfig) { c.Session.LastLevel = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should fail")
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := Default()
	if err := ApplyPreset(&cfg, DifficultyEasy); err != nil {
		t.Fatal(err)
	}
	if cfg.Session.Lives != 5 || cfg.Timing.LevelSeconds != 20 {
		t.Errorf("easy preset not applied: %+v", cfg.Session)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("easy preset should stay valid: %v", err)
	}

	cfg = Default()
	if err := ApplyPreset(&cfg, DifficultyHard); err != nil {
		t.Fatal(err)
	}
	if cfg.Session.Lives != 2 || cfg.Timing.FloeIntervalMS != 80 {
		t.Errorf("hard preset not applied: %+v", cfg)
	}

	cfg = Default()
	if err := ApplyPreset(&cfg, DifficultyNormal); err != nil || cfg != Default() {
		t.Error("normal preset should keep defaults")
	}

	if err := ApplyPreset(&cfg, "insane"); err == nil {
		t.Error("unknown preset should fail")
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := ExpandHome("~/.icejumper"); got != filepath.Join(home, ".icejumper") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/tmp/x"); got != "/tmp/x" {
		t.Errorf("absolute paths should be unchanged, got %q", got)
	}
}
