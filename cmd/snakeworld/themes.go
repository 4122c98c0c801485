package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/snake-world/internal/config"
)

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List theme presets",
	Long:  `Shows the theme presets accepted by --theme.`,
	Args:  cobra.NoArgs,
	Run:   runThemes,
}

func runThemes(_ *cobra.Command, _ []string) {
	names := config.ThemeNames()

	fmt.Println("Available themes:")
	fmt.Println()

	// Calculate column widths
	maxLen := 4 // "Name" header
	for _, n := range names {
		maxLen = max(maxLen, len(n))
	}

	fmt.Printf("  %-*s  %s\n", maxLen, "Name", "Description")
	fmt.Printf("  %-*s  %s\n", maxLen, "----", "-----------")
	for _, n := range names {
		fmt.Printf("  %-*s  %s\n", maxLen, n, config.ThemeDescription(config.ThemePreset(n)))
	}

	fmt.Println()
	fmt.Println("Run 'snakeworld play --theme <name>' to use one.")
}
