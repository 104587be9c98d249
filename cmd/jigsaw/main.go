// jigsaw is a terminal jigsaw puzzle with a companion scoring service.
//
// Usage:
//
//	jigsaw list              - List available puzzles
//	jigsaw play <puzzle>     - Play a puzzle
//	jigsaw menu              - Pick puzzles interactively
//	jigsaw serve             - Start SSH server for remote play
//	jigsaw scores <puzzle>   - Show the fastest completions
//	jigsaw score-server      - Run the HTTP scoring endpoint
//	jigsaw nickname [name]   - Show or set the saved nickname
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for a reproducible scatter
//	--db <path>           - Set database path (default: ~/.jigsaw/jigsaw.db)
//	--nickname <name>     - Play under this nickname (saved for next time)
//	--score-url <url>     - Submit completions to this endpoint
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import puzzles to register them
	_ "github.com/vovakirdan/tui-jigsaw/internal/games/jigsaw"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagNickname string
	flagScoreURL string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "jigsaw",
	Short: "Jigsaw - assemble pixel-art puzzles in your terminal",
	Long: `Jigsaw is a terminal puzzle game. Pieces are scattered beside the
board; drag them with the mouse (or move them with the keyboard) until
neighbors click together and groups lock onto the board.

Available commands:
  list          - Show all available puzzles
  play          - Play a specific puzzle directly
  menu          - Interactive puzzle picker
  serve         - Start SSH server for remote play
  scores        - View the fastest completions
  score-server  - Run the HTTP scoring endpoint
  nickname      - Show or change your nickname

Examples:
  jigsaw list
  jigsaw play jigsaw --difficulty easy
  jigsaw menu --nickname alice
  jigsaw serve --ssh :2222
  jigsaw scores jigsaw_mini
  jigsaw score-server`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.jigsaw/jigsaw.db", "Path to completions database")
	rootCmd.PersistentFlags().StringVar(&flagNickname, "nickname", "", "Nickname for this session (3-12 characters)")
	rootCmd.PersistentFlags().StringVar(&flagScoreURL, "score-url", "", "Scoring endpoint (overrides JIGSAW_SCORE_URL)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(scoreServerCmd)
	rootCmd.AddCommand(nicknameCmd)
}
