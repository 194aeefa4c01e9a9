package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ice-jumper/internal/games/icejumper"
	"github.com/vovakirdan/ice-jumper/internal/storage"
)

var (
	flagGames  int
	flagLevels int
	flagRecord bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless autopilot games",
	Long: `Play games without a terminal UI. The autopilot hops only when the
landing cell is ice now and stays ice after the next floe step, and waits
otherwise. The clock is simulated, so games finish instantly.

Results are printed as a table. With --record, wins and high scores are
written to the storage backend like normal games.

Examples:
  icejumper simulate
  icejumper simulate --games 50 --seed 7
  icejumper simulate --levels 3 --record`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagGames, "games", 10, "Number of games to play")
	simulateCmd.Flags().IntVar(&flagLevels, "levels", 0, "Levels per game (0 = config value)")
	simulateCmd.Flags().BoolVar(&flagRecord, "record", false, "Write results to the storage backend")
}

func runSimulate(_ *cobra.Command, _ []string) {
	e, err := setup(os.Stderr)
	exitOnError(err)
	defer e.Close()

	params := icejumper.ParamsFromConfig(e.cfg)
	if flagLevels > 0 {
		params.LastLevel = flagLevels
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}
	frame := time.Second / time.Duration(fps)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rows := make([][]string, 0, flagGames)
	wins := 0
	for g := 0; g < flagGames; g++ {
		gameSeed := seed + int64(g)
		opts := []icejumper.SessionOption{icejumper.WithLogger(e.logger)}
		if flagRecord {
			opts = append(opts, icejumper.WithScores(e.backend), icejumper.WithSaves(e.backend))
			if h, ok := e.backend.(storage.HistoryRepository); ok {
				opts = append(opts, icejumper.WithHistory(h))
			}
		}

		snap, err := simulateGame(ctx, params, fmt.Sprintf("BOT%d", g+1), gameSeed, frame, opts...)
		if err != nil {
			e.logger.Warn("simulation interrupted", "game", g+1, "err", err)
			break
		}
		if snap.State == icejumper.SessionWon {
			wins++
		}
		e.logger.Info("game finished", "game", g+1, "state", snap.State, "level", snap.Level, "score", snap.Player.Score)

		rows = append(rows, []string{
			strconv.Itoa(g + 1),
			strconv.FormatInt(gameSeed, 10),
			snap.State.String(),
			strconv.Itoa(snap.Level),
			strconv.Itoa(snap.Player.Score),
			strconv.Itoa(snap.Player.Lives),
			strconv.Itoa(snap.Attempts),
		})
	}

	fmt.Println(renderTable([]string{"Game", "Seed", "Result", "Level", "Score", "Lives", "Attempts"}, rows))
	fmt.Printf("Won %d of %d games.\n", wins, len(rows))
}

// simulateGame plays one session with the autopilot on a manual clock.
func simulateGame(ctx context.Context, p icejumper.Params, name string, seed int64, frame time.Duration, opts ...icejumper.SessionOption) (icejumper.SessionSnapshot, error) {
	sess := icejumper.NewSession(p, name, seed, opts...)
	clk := icejumper.NewManualClock(time.Unix(0, 0))

	for sess.State() == icejumper.SessionPlaying {
		sim := sess.NewAttempt(icejumper.NopRenderer{})
		out, err := icejumper.Run(ctx, sim, icejumper.NewAutopilot(sim), clk, frame)
		if err != nil {
			return sess.Snapshot(), err
		}
		sess.Record(out)
	}
	return sess.Snapshot(), nil
}
