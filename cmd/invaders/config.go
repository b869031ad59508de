package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default tuning configuration",
	Long: `Print the built-in invaders.yaml. Save it as
~/.invaders/configs/invaders.yaml or pass it with --config to tune the game.

Examples:
  invaders config > ~/.invaders/configs/invaders.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func runConfig(_ *cobra.Command, _ []string) {
	data := config.GetDefaultYAML(invaders.ID)
	if data == nil {
		fmt.Fprintln(os.Stderr, "Error: no default config")
		os.Exit(1)
	}
	//nolint:errcheck // Nothing useful to do if stdout is gone
	os.Stdout.Write(data)
}
