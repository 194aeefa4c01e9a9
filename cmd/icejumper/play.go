package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ice-jumper/internal/core"
	"github.com/vovakirdan/ice-jumper/internal/games/icejumper"
	"github.com/vovakirdan/ice-jumper/internal/platform/tui"
)

var flagName string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Ice Jumper.

Controls:
  Arrows/WASD/HJKL - Hop (up/down moves two rows)
  Y/N              - Answer prompts
  Ctrl+S           - Save a screenshot of the board
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives, more time, denser ice
  normal - Config values
  hard   - Fewer lives, less time, faster floes
  fixed  - Config values, no preset applied

Examples:
  icejumper play
  icejumper play --name alice
  icejumper play --difficulty hard --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagName, "name", "", "Player name (skips name entry)")
}

func runPlay(_ *cobra.Command, _ []string) {
	e, err := setup(nil)
	exitOnError(err)
	defer e.Close()

	params := icejumper.ParamsFromConfig(e.cfg)
	cfg, err := runtimeConfig(params)
	exitOnError(err)

	e.logger.Info("game started", "backend", e.backend.Name(), "seed", cfg.Seed)
	if err := tui.Run(tui.Options{
		Params:  params,
		Backend: e.backend,
		Logger:  e.logger,
		Runtime: cfg,
		Name:    flagName,
	}); err != nil {
		e.logger.Error("game aborted", "err", err)
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		e.Close()
		os.Exit(1)
	}
}

// runtimeConfig reads the terminal size and rejects terminals too small for
// the last level of the session.
func runtimeConfig(p icejumper.Params) (core.RuntimeConfig, error) {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed

	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return cfg, fmt.Errorf("cannot read terminal size: %w", err)
	}
	cfg.ScreenW, cfg.ScreenH = w, h

	needW, needH := tui.RequiredSize(p)
	if w < needW || h < needH {
		return cfg, fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, needW, needH)
	}
	return cfg, nil
}
