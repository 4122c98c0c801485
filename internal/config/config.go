// Package config provides YAML-based world configuration loading and
// theme presets for the snake world.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/snake-world/internal/core"
	"github.com/vovakirdan/snake-world/internal/world"
)

// WorldConfig contains all configuration for a generated level and the
// preview loop that spawns food into it.
type WorldConfig struct {
	Level LevelConfig `yaml:"level"`
	Style StyleConfig `yaml:"style"`
	Spawn SpawnConfig `yaml:"spawn"`
	Snake SnakeConfig `yaml:"snake"`
}

// LevelConfig defines the requested level geometry.
type LevelConfig struct {
	Width       uint16 `yaml:"width"`  // Bumped to odd
	Height      uint16 `yaml:"height"` // Bumped to odd
	MaxFood     int    `yaml:"max_food"`
	SpawnOffset uint16 `yaml:"spawn_offset"`
}

// StyleConfig defines glyphs and colors. Colors are "#rrggbb".
type StyleConfig struct {
	Background     string `yaml:"background"`
	Border         string `yaml:"border"`
	BorderWidth    uint16 `yaml:"border_width"`
	BorderHeight   uint16 `yaml:"border_height"`
	Foreground     string `yaml:"foreground"`
	BaseBackground string `yaml:"base_background"`
	GradientStep   int    `yaml:"gradient_step"`
}

// SpawnConfig defines the preview spawn cadence, in simulation ticks.
type SpawnConfig struct {
	IntervalTicks int `yaml:"interval_ticks"`
	LifetimeTicks int `yaml:"lifetime_ticks"` // 0 = food never expires
}

// SnakeConfig defines the snake game's speed and starting size.
type SnakeConfig struct {
	MoveEveryTicks int `yaml:"move_every_ticks"`
	StartLength    int `yaml:"start_length"`
}

// Validate checks the configuration for values the world cannot use.
func (c WorldConfig) Validate() error {
	var errs []error

	if _, err := c.Style.toStyle(); err != nil {
		errs = append(errs, err)
	}
	if c.Style.BorderWidth == 0 || c.Style.BorderHeight == 0 {
		errs = append(errs, errors.New("style: border thickness must be positive"))
	}
	if c.Style.GradientStep < 0 {
		errs = append(errs, fmt.Errorf("style: gradient_step must not be negative, got %d", c.Style.GradientStep))
	}
	if c.Level.MaxFood < 0 {
		errs = append(errs, fmt.Errorf("level: max_food must not be negative, got %d", c.Level.MaxFood))
	}

	// Dimensions are normalized to odd before the offset applies.
	w, h := int(c.Level.Width|1), int(c.Level.Height|1)
	off := int(c.Level.SpawnOffset)
	if w <= 2*off || h <= 2*off {
		errs = append(errs, fmt.Errorf("level: spawn_offset %d leaves no room in a %dx%d interior: %w",
			off, w, h, world.ErrInvalidSpawnRegion))
	}

	if c.Spawn.IntervalTicks <= 0 {
		errs = append(errs, fmt.Errorf("spawn: interval_ticks must be positive, got %d", c.Spawn.IntervalTicks))
	}
	if c.Spawn.LifetimeTicks < 0 {
		errs = append(errs, fmt.Errorf("spawn: lifetime_ticks must not be negative, got %d", c.Spawn.LifetimeTicks))
	}

	if c.Snake.MoveEveryTicks <= 0 {
		errs = append(errs, fmt.Errorf("snake: move_every_ticks must be positive, got %d", c.Snake.MoveEveryTicks))
	}
	if c.Snake.StartLength <= 0 {
		errs = append(errs, fmt.Errorf("snake: start_length must be positive, got %d", c.Snake.StartLength))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// WorldStyle converts the style and level settings into a world.Style.
func (c WorldConfig) WorldStyle() (world.Style, error) {
	s, err := c.Style.toStyle()
	if err != nil {
		return world.Style{}, fmt.Errorf("config: %w", err)
	}
	s.MaxFood = c.Level.MaxFood
	return s, nil
}

func (s StyleConfig) toStyle() (world.Style, error) {
	bgGlyph, err := singleRune("background", s.Background)
	if err != nil {
		return world.Style{}, err
	}
	borderGlyph, err := singleRune("border", s.Border)
	if err != nil {
		return world.Style{}, err
	}
	fg, err := core.ParseRGB(s.Foreground)
	if err != nil {
		return world.Style{}, fmt.Errorf("style: foreground: %w", err)
	}
	bg, err := core.ParseRGB(s.BaseBackground)
	if err != nil {
		return world.Style{}, fmt.Errorf("style: base_background: %w", err)
	}

	return world.Style{
		Background:   bgGlyph,
		Border:       borderGlyph,
		BorderWidth:  s.BorderWidth,
		BorderHeight: s.BorderHeight,
		Fg:           fg,
		Bg:           bg,
		GradientStep: s.GradientStep,
	}, nil
}

func singleRune(field, s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("style: %s must be exactly one glyph, got %q", field, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}
