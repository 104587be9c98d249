package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-jigsaw/internal/config"
	"github.com/vovakirdan/tui-jigsaw/internal/core"
	"github.com/vovakirdan/tui-jigsaw/internal/games/jigsaw"
	"github.com/vovakirdan/tui-jigsaw/internal/platform/tui"
	"github.com/vovakirdan/tui-jigsaw/internal/profile"
	"github.com/vovakirdan/tui-jigsaw/internal/score"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

// Puzzle flags shared by play and menu.
var (
	flagConfig     string
	flagDifficulty string
	flagPicture    string
)

// openStore opens the completions database, or returns nil with a warning.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open completions database: %v\n", err)
		return nil
	}
	return store
}

// profileStore avoids handing a typed nil to profile.
func profileStore(store *storage.Store) profile.Store {
	if store == nil {
		return nil
	}
	return store
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// applyPuzzleFlags hands --config, --difficulty and --picture to the game.
func applyPuzzleFlags() error {
	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		return err
	}
	jigsaw.SetConfigPath(flagConfig)
	jigsaw.SetDifficultyPreset(flagDifficulty)
	jigsaw.SetPicture(flagPicture)
	return nil
}

// scoreClient builds the submission client. The TUI owns the terminal, so
// its logger discards output.
func scoreClient() *score.Client {
	cfg, err := config.LoadClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	url := cfg.URL
	if flagScoreURL != "" {
		url = flagScoreURL
	}
	return score.NewClient(url, cfg.Timeout, log.New(io.Discard))
}

// resolveNickname returns the session nickname, prompting when neither the
// flag nor the database has one. Returns empty if the user quit the prompt.
func resolveNickname(store *storage.Store, cfg core.RuntimeConfig) (string, error) {
	ps := profileStore(store)
	name, err := profile.Resolve(ps, flagNickname)
	if err == nil {
		return name, nil
	}
	if !errors.Is(err, profile.ErrNoNickname) {
		if flagNickname != "" {
			return "", fmt.Errorf("invalid --nickname: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not load nickname: %v\n", err)
	}

	name, err = tui.RunNicknamePrompt("", cfg.ScreenW, cfg.ScreenH)
	if err != nil || name == "" {
		return "", err
	}
	if _, err := profile.Save(ps, name); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save nickname: %v\n", err)
	}
	return name, nil
}

// addPuzzleFlags registers the puzzle flags on cmd.
func addPuzzleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom puzzle config YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	cmd.Flags().StringVar(&flagPicture, "picture", "", "Built-in picture name or path to a picture file")
}
