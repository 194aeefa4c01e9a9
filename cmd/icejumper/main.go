// icejumper is a terminal game: cross a river by hopping over drifting ice floes.
//
// Usage:
//
//	icejumper play             - Play a game
//	icejumper menu             - Start menu with play and score views
//	icejumper scores           - Print high scores, saves and statistics
//	icejumper levels           - Print the river geometry of every level
//	icejumper simulate         - Run headless autopilot games
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible floes
//	--config <path>       - Custom game config YAML
//	--data-dir <path>     - Directory for scores and saves (default: ~/.icejumper)
//	--backend <name>      - Storage backend: file or sqlite
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ice-jumper/internal/config"
	"github.com/vovakirdan/ice-jumper/internal/logging"
	"github.com/vovakirdan/ice-jumper/internal/registry"
	"github.com/vovakirdan/ice-jumper/internal/storage"

	// Import backends to register them
	_ "github.com/vovakirdan/ice-jumper/internal/storage/sqlite"
	_ "github.com/vovakirdan/ice-jumper/internal/storage/textfile"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagConfig     string
	flagDataDir    string
	flagBackend    string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "icejumper",
	Short: "Ice Jumper - cross the river on drifting ice",
	Long: `Ice Jumper is a terminal game. Hop from floe to floe to reach the far
bank before the level clock runs out. Every level adds two rows of river.

Available commands:
  play      - Play a game
  menu      - Interactive menu
  scores    - Print high scores and saved games
  levels    - Print the geometry of every level
  simulate  - Run headless autopilot games

Examples:
  icejumper play
  icejumper play --name alice --difficulty easy
  icejumper menu --backend sqlite
  icejumper scores --watch
  icejumper simulate --games 20 --seed 7`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "Directory for scores and saves (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagBackend, "backend", "", "Storage backend: file or sqlite (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig loads the config file and applies the global flags.
func loadConfig() (config.GameConfig, error) {
	if err := checkFPS(flagFPS); err != nil {
		return config.GameConfig{}, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if err := config.ApplyPreset(&cfg, config.DifficultyPreset(flagDifficulty)); err != nil {
		return cfg, err
	}
	if flagDataDir != "" {
		cfg.Storage.Dir = flagDataDir
	}
	if flagBackend != "" {
		cfg.Storage.Backend = flagBackend
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if !registry.Exists(cfg.Storage.Backend) {
		return cfg, fmt.Errorf("unknown storage backend %q (available: %v)", cfg.Storage.Backend, registry.List())
	}
	return cfg, nil
}

const maxFPS = 240

// checkFPS rejects tick rates outside 1..maxFPS.
func checkFPS(fps int) error {
	if fps < 1 || fps > maxFPS {
		return fmt.Errorf("invalid --fps %d: must be between 1 and %d", fps, maxFPS)
	}
	return nil
}

// env is the state shared by every command.
type env struct {
	cfg     config.GameConfig
	logger  *log.Logger
	logs    io.Closer
	backend storage.Backend
}

// setup loads the config, opens the log and the storage backend.
// console receives a copy of the log; pass nil while a TUI owns the terminal.
func setup(console io.Writer) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger, logs, err := logging.New(cfg.Log, console)
	if err != nil {
		return nil, err
	}

	backend, err := registry.Open(cfg.Storage.Backend, storage.Options{
		Dir:    cfg.Storage.Dir,
		Logger: logger,
	})
	if err != nil {
		logs.Close()
		return nil, err
	}
	logger.Debug("storage opened", "backend", backend.Name(), "paths", backend.Paths())

	return &env{cfg: cfg, logger: logger, logs: logs, backend: backend}, nil
}

// Close releases the backend and the log file.
func (e *env) Close() {
	if err := e.backend.Close(); err != nil {
		e.logger.Error("closing storage", "err", err)
	}
	e.logs.Close()
}

// exitOnError prints err and exits with status 1.
func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
