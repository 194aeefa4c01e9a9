package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ice-jumper/internal/storage"
)

var flagWatch bool

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores and saved games",
	Long: `Display the top 10 high scores, the saved games and, for backends that
keep a play history, the statistics.

With --watch the tables are printed again whenever the storage files change.

Examples:
  icejumper scores
  icejumper scores --backend sqlite
  icejumper scores --watch`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reprint when the storage files change")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

func runScores(_ *cobra.Command, _ []string) {
	e, err := setup(nil)
	exitOnError(err)
	defer e.Close()

	if err := printScores(os.Stdout, e.backend); err != nil {
		e.Close()
		exitOnError(err)
	}
	if !flagWatch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = watchFiles(ctx, e.backend.Paths(), func() {
		fmt.Fprintf(os.Stdout, "\n%s\n", time.Now().Format("15:04:05"))
		if err := printScores(os.Stdout, e.backend); err != nil {
			e.logger.Warn("cannot reload scores", "err", err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		e.Close()
		exitOnError(err)
	}
}

// printScores writes the high-score table, the saves and the statistics to w.
func printScores(w io.Writer, backend storage.Backend) error {
	entries, err := backend.LoadTop10()
	if err != nil && !storage.IsMissing(err) {
		return err
	}

	fmt.Fprintln(w, titleStyle.Render("High Scores"))
	if len(entries) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
	} else {
		rows := make([][]string, 0, len(entries))
		for i, e := range entries {
			rows = append(rows, []string{strconv.Itoa(i + 1), e.PlayerName, strconv.Itoa(e.Score)})
		}
		fmt.Fprintln(w, renderTable([]string{"Rank", "Name", "Score"}, rows))
	}

	saves, err := backend.Saves()
	if err != nil && !storage.IsMissing(err) {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Saved Games"))
	if len(saves) == 0 {
		fmt.Fprintln(w, "No saved games.")
	} else {
		rows := make([][]string, 0, len(saves))
		for _, s := range saves {
			rows = append(rows, []string{s.PlayerName, strconv.Itoa(s.Level), strconv.Itoa(s.Lives), strconv.Itoa(s.Score)})
		}
		fmt.Fprintln(w, renderTable([]string{"Name", "Level", "Lives", "Score"}, rows))
	}

	history, ok := backend.(storage.HistoryRepository)
	if !ok {
		return nil
	}
	stats, err := history.Stats()
	if err != nil {
		return err
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, titleStyle.Render("Statistics"))
	last := "-"
	if !stats.LastPlayed.IsZero() {
		last = stats.LastPlayed.Format("2006-01-02 15:04")
	}
	fmt.Fprintln(w, renderTable([]string{"Games", "Wins", "Best", "Average", "Last Played"}, [][]string{{
		strconv.Itoa(stats.Games),
		strconv.Itoa(stats.Wins),
		strconv.Itoa(stats.HighScore),
		fmt.Sprintf("%.1f", stats.AvgScore),
		last,
	}}))
	return nil
}

func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderHeader(true).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
	return t.Render()
}

// watchFiles calls onChange after one of paths is written, created, renamed
// or removed. It blocks until ctx is done.
func watchFiles(ctx context.Context, paths []string, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dirs := make(map[string]bool)
	for _, p := range paths {
		dir := filepath.Dir(p)
		if dirs[dir] {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := w.Add(dir); err != nil {
			return err
		}
		dirs[dir] = true
	}

	// Changes are reported once the files have been quiet for settle.
	const settle = 100 * time.Millisecond
	var pending <-chan time.Time
	for {
		select {
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if !watched(paths, event.Name) {
				continue
			}
			pending = time.After(settle)
		case <-pending:
			pending = nil
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return err
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// watched reports whether name is one of paths or a sidecar file of one
// (such as a SQLite journal).
func watched(paths []string, name string) bool {
	name = filepath.Clean(name)
	for _, p := range paths {
		if strings.HasPrefix(name, filepath.Clean(p)) {
			return true
		}
	}
	return false
}
