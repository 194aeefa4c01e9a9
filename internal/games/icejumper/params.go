package icejumper

import (
	"time"

	"github.com/vovakirdan/ice-jumper/internal/config"
)

// Params holds every tunable of a session.
type Params struct {
	Width             int
	BaseHeight        int
	Floes             FloeParams
	FloeInterval      time.Duration
	CountdownInterval time.Duration
	LevelSeconds      int
	Lives             int
	LastLevel         int
}

// ParamsFromConfig converts the YAML configuration into simulation parameters.
func ParamsFromConfig(cfg config.GameConfig) Params {
	return Params{
		Width:      cfg.River.Width,
		BaseHeight: cfg.River.BaseHeight,
		Floes: FloeParams{
			MinGap:    cfg.Floes.MinGap,
			MaxGap:    cfg.Floes.MaxGap,
			MinLength: cfg.Floes.MinLength,
			MaxLength: cfg.Floes.MaxLength,
		},
		FloeInterval:      cfg.Timing.FloeInterval(),
		CountdownInterval: cfg.Timing.CountdownInterval(),
		LevelSeconds:      cfg.Timing.LevelSeconds,
		Lives:             cfg.Session.Lives,
		LastLevel:         cfg.Session.LastLevel,
	}
}

// DefaultParams returns the parameters of the default configuration.
func DefaultParams() Params {
	return ParamsFromConfig(config.Default())
}

// LevelParams returns the attempt parameters for a level number.
func (p Params) LevelParams(level int) LevelParams {
	return LevelParams{
		Number:            level,
		Layout:            NewLayout(level, p.Width, p.BaseHeight),
		TimeBudget:        p.LevelSeconds,
		FloeInterval:      p.FloeInterval,
		CountdownInterval: p.CountdownInterval,
	}
}
