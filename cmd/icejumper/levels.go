package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ice-jumper/internal/games/icejumper"
	"github.com/vovakirdan/ice-jumper/internal/platform/tui"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the levels of a game",
	Long: `Shows the river size, ice rows and time budget of every level, using the
loaded config and difficulty preset.`,
	Args: cobra.NoArgs,
	Run:  runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	cfg, err := loadConfig()
	exitOnError(err)

	p := icejumper.ParamsFromConfig(cfg)
	fmt.Println(renderTable([]string{"Level", "Width", "Height", "Ice Rows", "Time", "Max Bonus"}, levelRows(p)))

	w, h := tui.RequiredSize(p)
	fmt.Printf("\nLives: %d. Terminal needed: %dx%d.\n", p.Lives, w, h)
	fmt.Println("Run 'icejumper play' to start.")
}

// levelRows describes each level of p. The bonus is the square of the time left.
func levelRows(p icejumper.Params) [][]string {
	rows := make([][]string, 0, p.LastLevel)
	for level := 1; level <= p.LastLevel; level++ {
		lp := p.LevelParams(level)
		rows = append(rows, []string{
			strconv.Itoa(level),
			strconv.Itoa(lp.Layout.Width),
			strconv.Itoa(lp.Layout.Height),
			strconv.Itoa(lp.Layout.FloeRows()),
			fmt.Sprintf("%ds", lp.TimeBudget),
			strconv.Itoa(lp.TimeBudget * lp.TimeBudget),
		})
	}
	return rows
}
