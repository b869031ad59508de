package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/games/invaders/layout"
)

var checkCmd = &cobra.Command{
	Use:   "check <layout>",
	Short: "Validate a layout file",
	Long: `Parse a layout file and print what it places and the score needed to win.

Exits with status 1 when the file is missing or malformed.

Examples:
  invaders check ./levels/classic.txt`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	l, err := layout.Load(args[0])
	if err != nil {
		var cfgErr *layout.StartupConfigError
		if errors.As(err, &cfgErr) && cfgErr.Key != "" {
			fmt.Fprintf(os.Stderr, "Invalid layout (key %q): %v\n", cfgErr.Key, err)
		} else {
			fmt.Fprintf(os.Stderr, "Invalid layout: %v\n", err)
		}
		os.Exit(1)
	}

	fmt.Printf("Layout %s\n\n", l.Source)
	fmt.Printf("  Player:   %d, %d\n", l.Player.X, l.Player.Y)
	fmt.Printf("  Bulwarks: %d (lives %d)\n", len(l.Bulwarks), l.BulwarkLives)
	for i, row := range l.Rows {
		fmt.Printf("  %-8s  %2d ships x %2d points\n", layout.RowKey(i)+":", len(row), l.RowPoints(i))
	}
	fmt.Println()
	fmt.Printf("Enemies: %d\n", l.EnemyCount())
	fmt.Printf("Points to win: %d\n", l.TotalPoints())
}
