package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/games/jigsaw"
	"github.com/vovakirdan/tui-jigsaw/internal/registry"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <puzzle>",
	Short: "Show the fastest completions for a puzzle",
	Long: `Display the fastest completions for the specified puzzle,
ordered by time and then by moves.

Examples:
  jigsaw scores jigsaw
  jigsaw scores jigsaw_mini --limit 20
  jigsaw scores jigsaw --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of completions to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all completions for the puzzle")
}

func runScores(cmd *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown puzzle %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'jigsaw list' to see available puzzles.")
		os.Exit(1)
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating puzzle: %v\n", err)
		os.Exit(1)
	}
	title := game.Title()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening completions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagScoresClear {
		if err := store.ClearCompletions(gameID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing completions: %v\n", err)
			return
		}
		fmt.Printf("Cleared completions for %s.\n", title)
		return
	}

	entries, err := store.TopCompletions(gameID, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving completions: %v\n", err)
		return
	}

	fmt.Printf("Fastest Completions - %s\n", title)
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No completions recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'jigsaw play %s' to set the first time!\n", gameID)
		return
	}

	fmt.Printf("  %-4s  %-12s  %-6s  %-5s  %s\n", "Rank", "Name", "Time", "Moves", "Date")
	fmt.Printf("  %-4s  %-12s  %-6s  %-5s  %s\n", "----", "----", "----", "-----", "----")
	for i, e := range entries {
		fmt.Printf("  %-4d  %-12s  %-6s  %-5d  %s\n",
			i+1, e.Nickname, jigsaw.FormatClock(e.Seconds), e.Moves, e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if total, err := store.CountCompletions(gameID); err == nil {
		fmt.Printf("%d completions recorded.\n", total)
	}
}
