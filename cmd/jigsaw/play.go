package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/platform/tui"
	"github.com/vovakirdan/tui-jigsaw/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <puzzle>",
	Short: "Play a puzzle",
	Long: `Start the specified puzzle.

Controls:
  Mouse drag          - Move a piece and its group
  Tab / Shift+Tab     - Select next / previous group
  Arrows / WASD       - Move the selected group one cell
  Space / Enter       - Drop the selected group
  H                   - Toggle the picture hint on the board
  R                   - Play again (after completion)
  B / Esc             - Back
  Q / Ctrl+C          - Quit

Difficulty options:
  easy   - 4x3 pieces
  normal - 8x6 pieces
  hard   - 10x8 narrower pieces

Examples:
  jigsaw play jigsaw
  jigsaw play jigsaw --difficulty easy --picture mountains
  jigsaw play jigsaw_mini --nickname alice
  jigsaw play jigsaw --config ./my-jigsaw.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	addPuzzleFlags(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) {
	gameID := args[0]

	// Check if puzzle exists
	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown puzzle %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'jigsaw list' to see available puzzles.")
		os.Exit(1)
	}
	if err := applyPuzzleFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cfg := runtimeConfig()

	// Open completions storage
	store := openStore()

	nickname, err := resolveNickname(store, cfg)
	if err != nil || nickname == "" {
		if store != nil {
			store.Close()
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	cfg.Nickname = nickname

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating puzzle: %v\n", err)
		os.Exit(1)
	}

	backend := tui.Backend{Store: store, Scorer: scoreClient()}
	runErr := tui.Run(game, backend, cfg)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running puzzle: %v\n", runErr)
		os.Exit(1)
	}
}
