// snakeworld generates terminal snake levels and spawns food into them.
//
// Usage:
//
//	snakeworld render            - Draw a generated level to the terminal
//	snakeworld spawn             - Spawn food and print a tally
//	snakeworld play              - Interactive spawn preview
//	snakeworld snake             - Play snake on a generated level
//	snakeworld runs              - Show recorded spawn runs
//	snakeworld themes            - List theme presets
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible spawns
//	--config <path>      - Use a custom world config YAML
//	--theme <name>       - Apply a theme preset
//	--db <path>          - Set database path (default: ~/.snakeworld/runs.db)
//	--log-level <level>  - debug, info, warn or error
//	--fps <rate>         - Set tick rate for the preview (default: 60)
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-world/internal/config"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagTheme    string
	flagLogLevel string

	logger = newLogger(os.Stderr, log.WarnLevel)
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "snakeworld",
	Short: "Snake World - generate snake levels and spawn food in your terminal",
	Long: `Snake World draws bordered snake levels with a vertical color gradient
and spawns cherries, mice and bombs into them.

Available commands:
  render   - Draw a generated level to the terminal
  spawn    - Spawn food and print statistics
  play     - Interactive spawn preview
  snake    - Play snake on a generated level
  runs     - Show recorded spawn runs
  themes   - List theme presets

Examples:
  snakeworld render --width 31 --height 11
  snakeworld spawn --count 1000 --seed 7
  snakeworld play --theme ocean
  snakeworld snake --speed 4
  snakeworld runs --limit 5`,
	SilenceUsage:     true,
	PersistentPreRun: setupLogging,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.snakeworld/runs.db", "Path to run ledger database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom world config YAML")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "", "Theme preset: classic, mono, ocean")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(spawnCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(snakeCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(themesCmd)
}

func setupLogging(_ *cobra.Command, _ []string) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(level)
}

// loadWorld loads the world config, applies --theme and validates the result.
func loadWorld() (config.WorldConfig, error) {
	cfg, err := config.LoadWorld(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagTheme != "" {
		preset, err := config.ParseThemePreset(flagTheme)
		if err != nil {
			return cfg, err
		}
		config.ApplyThemePreset(&cfg, preset)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	logger.Debug("world config loaded",
		"path", flagConfig,
		"theme", flagTheme,
		"width", cfg.Level.Width,
		"height", cfg.Level.Height,
	)
	return cfg, nil
}

// resolveSeed returns --seed, or a time-based seed when it is 0.
func resolveSeed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	seed := time.Now().UnixNano()
	logger.Info("using time-based seed", "seed", seed)
	return seed
}

// exitOnError prints err to stderr and exits when it is non-nil.
func exitOnError(context string, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error %s: %v\n", context, err)
	os.Exit(1)
}
