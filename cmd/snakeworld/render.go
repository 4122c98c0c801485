package main

import (
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-world/internal/config"
	"github.com/vovakirdan/snake-world/internal/core"
	"github.com/vovakirdan/snake-world/internal/platform/canvas"
	"github.com/vovakirdan/snake-world/internal/world"
)

var (
	flagWidth  uint16
	flagHeight uint16
	flagFood   int
	flagPlain  bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Draw a generated level to the terminal",
	Long: `Generate a level and draw it to stdout with true-color escape codes.

Even dimensions are bumped to the next odd number. --food spawns that many
random foods (respecting max_food) on top of the terrain. --plain prints
the glyphs only, without colors or cursor movement.

Examples:
  snakeworld render
  snakeworld render --width 21 --height 9 --food 4 --seed 3
  snakeworld render --theme mono --plain > level.txt`,
	Args: cobra.NoArgs,
	Run:  runRender,
}

func init() {
	renderCmd.Flags().Uint16Var(&flagWidth, "width", 0, "Interior width (default from config)")
	renderCmd.Flags().Uint16Var(&flagHeight, "height", 0, "Interior height (default from config)")
	renderCmd.Flags().IntVar(&flagFood, "food", 0, "Number of foods to spawn onto the level")
	renderCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print glyphs without colors")
}

func runRender(cmd *cobra.Command, _ []string) {
	cfg, err := loadWorld()
	exitOnError("loading config", err)

	if cmd.Flags().Changed("width") {
		cfg.Level.Width = flagWidth
	}
	if cmd.Flags().Changed("height") {
		cfg.Level.Height = flagHeight
	}

	seed := resolveSeed()
	level, err := buildLevel(cfg, rand.New(rand.NewSource(seed)))
	exitOnError("building level", err)

	placed := placeFoods(level, cfg.Level.SpawnOffset, flagFood)
	logger.Info("level generated",
		"seed", seed,
		"width", level.Width,
		"height", level.Height,
		"foods", placed,
	)

	if flagPlain {
		exitOnError("rendering level", renderPlain(os.Stdout, level))
		return
	}
	exitOnError("rendering level", renderANSI(os.Stdout, level))
}

// buildLevel creates a level from the config's geometry and style.
func buildLevel(cfg config.WorldConfig, rng world.RandSource) (*world.Level, error) {
	style, err := cfg.WorldStyle()
	if err != nil {
		return nil, err
	}
	return world.NewWithStyle(cfg.Level.Width, cfg.Level.Height, style, rng), nil
}

// placeFoods tries n spawns and returns how many the level accepted.
func placeFoods(level *world.Level, offset uint16, n int) int {
	placed := 0
	for i := 0; i < n; i++ {
		f, err := level.RandomFoodInset(offset)
		if err != nil {
			logger.Warn("spawn failed", "error", err)
			return placed
		}
		if level.AddFood(f) {
			placed++
			logger.Debug("food placed", "food", f)
		}
	}
	return placed
}

// renderANSI draws terrain and food as escape sequences, then parks the
// cursor below the level.
func renderANSI(w io.Writer, level *world.Level) error {
	c := canvas.NewANSICanvas(w)
	if err := level.Generate(c); err != nil {
		return err
	}
	if err := level.DrawFoods(c); err != nil {
		return err
	}
	_, err := fmt.Fprint(w, ansi.CursorPosition(1, level.TotalHeight()+1))
	return err
}

// renderPlain draws the level into a screen buffer and prints its glyphs.
func renderPlain(w io.Writer, level *world.Level) error {
	screen := core.NewScreen(level.TotalWidth(), level.TotalHeight())
	c := canvas.NewScreenCanvas(screen, 0, 0)
	if err := level.Generate(c); err != nil {
		return err
	}
	if err := level.DrawFoods(c); err != nil {
		return err
	}

	for y := range screen.Height() {
		if _, err := fmt.Fprintln(w, plainRow(screen, y)); err != nil {
			return err
		}
	}
	return nil
}

// plainRow returns row y without the continuation cells of wide glyphs.
func plainRow(s *core.Screen, y int) string {
	runes := make([]rune, 0, s.Width())
	for x := range s.Width() {
		if r := s.Get(x, y); r != 0 {
			runes = append(runes, r)
		}
	}
	return string(runes)
}
