package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/platform/tui"
	"github.com/vovakirdan/tui-jigsaw/internal/profile"
	"github.com/vovakirdan/tui-jigsaw/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a puzzle picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a puzzle.
After a puzzle you return to the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select puzzle
  Tab          - Fastest completions
  N            - Change nickname
  Q            - Quit

Examples:
  jigsaw menu
  jigsaw menu --difficulty hard
  jigsaw menu --db ./jigsaw.db`,
	Run: runMenu,
}

func init() {
	addPuzzleFlags(menuCmd)
}

func runMenu(_ *cobra.Command, _ []string) {
	if err := applyPuzzleFlags(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := openStore()
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	nickname, err := resolveNickname(store, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	if nickname == "" {
		return
	}
	cfg.Nickname = nickname

	backend := tui.Backend{Store: store, Scorer: scoreClient()}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			break
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			break
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue // Back to menu
			}
			break // User quit from scoreboard
		}

		if menuResult.WantsNickname {
			name, promptErr := tui.RunNicknamePrompt(cfg.Nickname, cfg.ScreenW, cfg.ScreenH)
			if promptErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", promptErr)
				continue
			}
			if name != "" {
				cfg.Nickname = name
				//nolint:errcheck // Best-effort save, session keeps the name regardless
				profile.Save(profileStore(store), name)
			}
			continue
		}

		if menuResult.GameID == "" {
			break
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating puzzle: %v\n", err)
			continue
		}

		// Fresh scatter for each puzzle unless a seed was given
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		if err := tui.Run(game, backend, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running puzzle: %v\n", err)
		}
		// Loop back to menu
	}
}
