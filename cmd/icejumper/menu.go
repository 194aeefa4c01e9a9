package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ice-jumper/internal/games/icejumper"
	"github.com/vovakirdan/ice-jumper/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Ice Jumper with a menu",
	Long: `Start Ice Jumper in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select.
After a game ends, you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Q            - Quit

Examples:
  icejumper menu
  icejumper menu --fps 30
  icejumper menu --backend sqlite --data-dir ./data`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	e, err := setup(nil)
	exitOnError(err)
	defer e.Close()

	params := icejumper.ParamsFromConfig(e.cfg)
	cfg, err := runtimeConfig(params)
	exitOnError(err)

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Update config with any size changes
		cfg = menuResult.Config

		switch menuResult.Choice {
		case tui.ChoicePlay:
			if err := tui.Run(tui.Options{
				Params:  params,
				Backend: e.backend,
				Logger:  e.logger,
				Runtime: cfg,
			}); err != nil {
				e.logger.Error("game aborted", "err", err)
				fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
				return
			}

		case tui.ChoiceScores:
			goBack, sbErr := tui.RunScoreboard(e.backend, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if !goBack {
				return // User quit from scoreboard
			}

		default:
			return
		}
	}
}
