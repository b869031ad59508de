// invaders is a terminal Space Invaders game.
//
// Usage:
//
//	invaders play            - Play with the classic rules or a difficulty preset
//	invaders menu            - Pick a difficulty interactively
//	invaders scores          - Show the best finished games
//	invaders serve           - Start SSH server for remote play
//	invaders check <layout>  - Validate a layout file
//	invaders list            - List registered games
//	invaders config          - Print the default tuning config
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--db <path>     - Set database path (default: ~/.invaders/results.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	// Global flags
	flagFPS    int
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "invaders",
	Short: "Space Invaders in your terminal",
	Long: `Defend the Earth from rows of descending aliens, right in your terminal.

Available commands:
  play     - Start a game directly
  menu     - Interactive difficulty picker
  scores   - View finished games
  serve    - Start SSH server for remote play
  check    - Validate a layout file
  list     - Show registered games
  config   - Print the default tuning config

Examples:
  invaders play
  invaders play --layout ./levels/wide.txt
  invaders menu
  invaders serve --ssh :2222
  invaders scores`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to results database")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(configCmd)
}
