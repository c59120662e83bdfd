package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-racer/internal/platform/tui"
	"github.com/vovakirdan/tui-racer/internal/registry"
	"github.com/vovakirdan/tui-racer/internal/storage"
)

var (
	flagPlain bool
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Browse the high score tables. Without --plain an interactive
scoreboard opens; left/right switch between modes.

Examples:
  racer scores
  racer scores timetrial --plain
  racer scores arcade --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print the top 10 instead of opening the scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs of the mode")
}

func runScores(_ *cobra.Command, args []string) error {
	mode := flagMode
	if len(args) == 1 {
		mode = args[0]
	}
	if !registry.Exists(mode) {
		return fmt.Errorf("unknown mode %q (run 'racer list' to see available modes)", mode)
	}

	cfg, logger, closeLog, err := loadConfig()
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(cfg, logger)
	if store == nil {
		return errors.New("scores database unavailable, see the log for details")
	}
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(mode); err != nil {
			return err
		}
		fmt.Printf("Cleared all %s runs.\n", mode)
		return nil
	case flagPlain:
		return printScores(store, mode)
	}

	w, h := terminalSize()
	return tui.RunScoreboard(store, mode, w, h)
}

func printScores(store *storage.Store, mode string) error {
	runs, err := store.TopRuns(mode, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", mode)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'racer --mode %s' to set the first high score!\n", mode)
		return nil
	}

	fmt.Printf("  %-4s  %-12s  %-9s  %-5s  %-4s  %s\n", "Rank", "Player", "Score", "Stage", "km/h", "Date")
	fmt.Printf("  %-4s  %-12s  %-9s  %-5s  %-4s  %s\n", "----", "------", "-----", "-----", "----", "----")
	for i, r := range runs {
		fmt.Printf("  %-4d  %-12s  %-9d  %-5d  %-4d  %s\n",
			i+1, r.Player, r.Score, r.Stage, r.TopSpeed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.Stats(mode); err == nil {
		fmt.Println()
		fmt.Printf("Runs: %d  Best: %d  Average: %.0f  Top speed: %d km/h\n",
			stats.Runs, stats.BestScore, stats.AvgScore, stats.TopSpeed)
	}
	return nil
}
