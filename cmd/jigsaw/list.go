package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/artwork"
	"github.com/vovakirdan/tui-jigsaw/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available puzzles",
	Long:  `Shows the registered puzzles and the built-in pictures.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No puzzles available.")
		return
	}

	fmt.Println("Available puzzles:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")
	for _, g := range games {
		fmt.Printf("  %-*s  %s\n", maxIDLen, g.ID, g.Title)
	}

	fmt.Println()
	fmt.Println("Pictures:")
	for _, id := range artwork.BuiltinIDs() {
		pic, err := artwork.Builtin(id)
		if err != nil {
			continue
		}
		fmt.Printf("  %-*s  %s (%dx%d)\n", maxIDLen, id, pic.Title, pic.Width, pic.Height)
	}

	fmt.Println()
	fmt.Println("Run 'jigsaw play <id> --picture <name>' to play.")
}
