package config

import (
	_ "embed"
)

//go:embed defaults/world.yaml
var defaultWorldYAML []byte

// DefaultWorldConfig returns the hard-coded default configuration.
// It matches defaults/world.yaml.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Level: LevelConfig{
			Width:       41,
			Height:      17,
			MaxFood:     4,
			SpawnOffset: 1,
		},
		Style: StyleConfig{
			Background:     " ",
			Border:         "█",
			BorderWidth:    2,
			BorderHeight:   1,
			Foreground:     "#0a6478",
			BaseBackground: "#e62882",
			GradientStep:   10,
		},
		Spawn: SpawnConfig{
			IntervalTicks: 45,
			LifetimeTicks: 600,
		},
		Snake: SnakeConfig{
			MoveEveryTicks: 6,
			StartLength:    3,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultWorldYAML
}
