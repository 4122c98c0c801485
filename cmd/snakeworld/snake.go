package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-world/internal/core"
	"github.com/vovakirdan/snake-world/internal/platform/tui"
	"github.com/vovakirdan/snake-world/internal/snake"
	"github.com/vovakirdan/snake-world/internal/storage"
)

var (
	flagSpeed       int
	flagStartLength int
	flagScores      bool
	flagClearScores bool
)

var snakeCmd = &cobra.Command{
	Use:   "snake",
	Short: "Play snake on a generated level",
	Long: `Play snake on a generated level. Cherries grow the snake by one, mice
by two, and bombs cut ten segments off the tail. A bomb eaten by a snake of
ten segments or fewer ends the game, as does hitting the border or itself.

Controls:
  Arrows/WASD - Steer
  P/Esc       - Pause
  R           - Restart (after game over)
  Ctrl+S      - Save screenshot
  Q/Ctrl+C    - Quit

Examples:
  snakeworld snake
  snakeworld snake --speed 4 --theme ocean
  snakeworld snake --scores`,
	Args: cobra.NoArgs,
	Run:  runSnake,
}

func init() {
	snakeCmd.Flags().IntVar(&flagSpeed, "speed", 0, "Ticks between moves, lower is faster (0 = config value)")
	snakeCmd.Flags().IntVar(&flagStartLength, "length", 0, "Starting length (0 = config value)")
	snakeCmd.Flags().BoolVar(&flagScores, "scores", false, "Print the best recorded games and exit")
	snakeCmd.Flags().BoolVar(&flagClearScores, "clear-scores", false, "Delete every recorded game and exit")
}

func runSnake(_ *cobra.Command, _ []string) {
	if flagScores || flagClearScores {
		runScores()
		return
	}

	cfg, err := loadWorld()
	exitOnError("loading config", err)
	if flagSpeed > 0 {
		cfg.Snake.MoveEveryTicks = flagSpeed
	}
	if flagStartLength > 0 {
		cfg.Snake.StartLength = flagStartLength
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run ledger", "error", err)
		// Continue without storage - scores are not recorded
		store = nil
	}

	width, height := terminalSize()
	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	final, runErr := tui.RunGame(tui.GameOptions{World: cfg, Runtime: rt, Store: store})

	if store != nil {
		store.Close()
	}

	exitOnError("running game", runErr)

	if err := final.Err(); err != nil {
		logger.Warn("game reported an error", "error", err)
	}
	logGameResult(logger, final.Seed(), final.Game())
}

// logGameResult logs the outcome of a game, with the full state at debug level.
func logGameResult(l *log.Logger, seed int64, game *snake.Game) {
	l.Info("game finished",
		"seed", seed,
		"score", game.Score(),
		"length", len(game.Body()),
		"over", game.IsOver(),
	)
	l.Debug("final game state", "state", game.DebugState())
}

func runScores() {
	store, err := storage.Open(flagDBPath)
	exitOnError("opening run ledger", err)
	defer store.Close()

	if flagClearScores {
		if err := store.ClearScores(); err != nil {
			store.Close()
			exitOnError("clearing scores", err)
		}
		fmt.Println("All scores deleted.")
		return
	}

	scores, err := store.TopScores(scoresLimit)
	if err != nil {
		store.Close()
		exitOnError("retrieving scores", err)
	}
	printScores(os.Stdout, scores)
}

// scoresLimit is the number of games --scores prints.
const scoresLimit = 10

// printScores writes the best games, highest first.
func printScores(w io.Writer, scores []storage.ScoreEntry) {
	fmt.Fprintln(w, "Snake High Scores")
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No games recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Run 'snakeworld snake' to play!")
		return
	}

	fmt.Fprintf(w, "  %-4s  %6s  %6s  %5s  %-20s  %16s\n", "Rank", "Score", "Length", "Eaten", "Seed", "Date")
	fmt.Fprintf(w, "  %-4s  %6s  %6s  %5s  %-20s  %16s\n", "----", "-----", "------", "-----", "----", "----")

	for i, s := range scores {
		fmt.Fprintf(w, "  %-4d  %6d  %6d  %5d  %-20d  %16s\n",
			i+1, s.Score, s.Length, s.Eaten, s.Seed, s.CreatedAt.Format("2006-01-02 15:04"))
	}
}
