package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/snake-world/internal/config"
	"github.com/vovakirdan/snake-world/internal/core"
	"github.com/vovakirdan/snake-world/internal/platform/tui"
	"github.com/vovakirdan/snake-world/internal/storage"
)

var flagPickTheme bool

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Interactive spawn preview",
	Long: `Open a live preview of a generated level. Food spawns every
interval_ticks and expires after lifetime_ticks; the level never holds more
than max_food items. The session tally is saved to the run ledger on quit.

Controls:
  Space      - Spawn now
  C          - Clear food
  G          - Regenerate level
  T          - Next theme
  P          - Pause
  ?          - More keys
  Q/Ctrl+C   - Quit

Examples:
  snakeworld play
  snakeworld play --theme ocean --fps 30
  snakeworld play --pick-theme
  snakeworld play --config ./my-world.yaml --seed 42`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagPickTheme, "pick-theme", false, "Choose a theme from a menu before starting")
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := loadWorld()
	exitOnError("loading config", err)

	width, height := terminalSize()

	if flagPickTheme {
		preset, ok, err := tui.RunMenu(width, height)
		exitOnError("running theme menu", err)
		if !ok {
			return
		}
		config.ApplyThemePreset(&cfg, preset)
	}

	// Open run ledger
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run ledger", "error", err)
		// Continue without storage - preview still works
		store = nil
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	final, runErr := tui.Run(tui.Options{World: cfg, Runtime: rt, Store: store})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	exitOnError("running preview", runErr)

	if err := final.Err(); err != nil {
		logger.Warn("preview reported an error", "error", err)
	}
	logger.Info("preview finished",
		"seed", final.Seed(),
		"spawned", final.Tally().Total,
		"run", final.RunID(),
	)
	if id := final.RunID(); id != "" {
		fmt.Printf("Recorded run %s (%d foods, seed %d)\n", id, final.Tally().Total, final.Seed())
	}
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}
