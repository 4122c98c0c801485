package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-world/internal/platform/tui"
	"github.com/vovakirdan/snake-world/internal/storage"
	"github.com/vovakirdan/snake-world/internal/world"
)

var (
	flagLimit int
	flagTUI   bool
	flagRunID string
	flagClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded spawn runs",
	Long: `Display the most recent runs from the ledger, newest first, followed by
per-kind totals across every recorded run.

Examples:
  snakeworld runs
  snakeworld runs --limit 5
  snakeworld runs --tui
  snakeworld runs --id 01J9Z3K4XG5T8Q2W7E6R1Y0M4N
  snakeworld runs --clear`,
	Args: cobra.NoArgs,
	Run:  runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagTUI, "tui", false, "Browse runs in an interactive table")
	runsCmd.Flags().StringVar(&flagRunID, "id", "", "Show a single run by ID")
	runsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every recorded run")
}

func runRuns(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	exitOnError("opening run ledger", err)
	defer store.Close()

	switch {
	case flagClear:
		if err := store.ClearRuns(); err != nil {
			store.Close()
			exitOnError("clearing runs", err)
		}
		logger.Info("ledger cleared", "db", flagDBPath)
		fmt.Println("All runs deleted.")

	case flagRunID != "":
		run, err := store.RunByID(flagRunID)
		if err != nil {
			store.Close()
			exitOnError("retrieving run", err)
		}
		if run == nil {
			store.Close()
			exitOnError("retrieving run", fmt.Errorf("no run with id %q", flagRunID))
		}
		printRun(os.Stdout, *run)

	case flagTUI:
		width, height := terminalSize()
		if err := tui.RunLedger(store, flagLimit, width, height); err != nil {
			store.Close()
			exitOnError("running ledger view", err)
		}

	default:
		runs, err := store.RecentRuns(flagLimit)
		if err != nil {
			store.Close()
			exitOnError("retrieving runs", err)
		}
		totals, err := store.KindTotals()
		if err != nil {
			store.Close()
			exitOnError("retrieving totals", err)
		}
		printRuns(os.Stdout, runs, totals)
	}
}

// printRuns writes the ledger table and per-kind totals.
func printRuns(w io.Writer, runs []storage.RunSummary, totals map[world.FoodKind]int) {
	fmt.Fprintln(w, "Spawn Runs")
	fmt.Fprintln(w)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'snakeworld spawn --record' to record the first one!")
		return
	}

	// Print header
	fmt.Fprintf(w, "  %-26s  %-20s  %-7s  %7s  %5s  %16s\n", "Run", "Seed", "Size", "Spawned", "Net", "Date")
	fmt.Fprintf(w, "  %-26s  %-20s  %-7s  %7s  %5s  %16s\n", "---", "----", "----", "-------", "---", "----")

	for _, r := range runs {
		fmt.Fprintf(w, "  %-26s  %-20d  %-7s  %7d  %+5d  %16s\n",
			r.RunID, r.Seed, fmt.Sprintf("%dx%d", r.Width, r.Height),
			r.Spawned, r.NetMeals, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Fprintln(w)
	fmt.Fprint(w, "Totals:")
	for _, k := range world.AllFoodKinds() {
		fmt.Fprintf(w, "  %s %d", k, totals[k])
	}
	fmt.Fprintln(w)
}

// printRun writes every field of one run.
func printRun(w io.Writer, r storage.RunSummary) {
	fmt.Fprintf(w, "Run      %s\n", r.RunID)
	fmt.Fprintf(w, "Recorded %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Seed     %d\n", r.Seed)
	fmt.Fprintf(w, "Level    %dx%d, offset %d\n", r.Width, r.Height, r.Offset)
	fmt.Fprintf(w, "Spawned  %d (cherry %d, mouse %d, bomb %d)\n", r.Spawned, r.Cherries, r.Mice, r.Bombs)
	fmt.Fprintf(w, "Net      %+d meals\n", r.NetMeals)
}
