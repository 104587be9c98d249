package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-jigsaw/internal/profile"
	"github.com/vovakirdan/tui-jigsaw/internal/storage"
)

var nicknameCmd = &cobra.Command{
	Use:   "nickname [name]",
	Short: "Show or set the saved nickname",
	Long: `Without an argument, print the saved nickname.
With an argument, validate it (3-12 ASCII characters) and save it.

Examples:
  jigsaw nickname
  jigsaw nickname alice`,
	Args: cobra.MaximumNArgs(1),
	Run:  runNickname,
}

func runNickname(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		name, ok, err := store.Nickname()
		switch {
		case err != nil:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		case !ok:
			fmt.Println("No nickname saved yet.")
		default:
			fmt.Println(name)
		}
		return
	}

	name, err := profile.Save(store, args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Nickname saved: %s\n", name)
}
