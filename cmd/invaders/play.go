package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/core"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders"
	"github.com/vovakirdan/tui-invaders/internal/games/invaders/sim"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagConfig     string
	flagLayout     string
	flagResults    string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start a game of Space Invaders.

Controls:
  Enter/Click  - Begin
  A/D, Arrows  - Move
  W/Space/Up   - Shoot
  P/Esc        - Pause
  R            - Restart (after the game ends)
  Q/Ctrl+C     - Quit

Difficulty options (omit for the classic game):
  easy   - 5 lives, slower enemy fire, invaders speed up gently
  normal - Invaders speed up as you score
  hard   - 2 lives, faster enemy fire
  fixed  - No progression, stays at config's initial level

When a game ends the result is written to the results file and stored in
the results database.

Examples:
  invaders play
  invaders play --difficulty hard
  invaders play --layout ./my-layout.txt
  invaders play --config ./my-invaders.yaml --results ./out.txt`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// addGameFlags registers the flags shared by play and menu.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom invaders config YAML")
	cmd.Flags().StringVar(&flagLayout, "layout", "", "Path to layout file (built-in layout if empty)")
	cmd.Flags().StringVar(&flagResults, "results", sim.DefaultResultFile, "Result file written when a game ends (empty disables)")
}

// runtimeConfig builds the platform config from the terminal size and flags.
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
	}
}

// openLogger logs to ~/.invaders/invaders.log so the alt screen stays clean.
// Falls back to discarding output when the file cannot be opened.
func openLogger() (*log.Logger, func()) {
	discard := func() {}

	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), discard
	}
	dir := filepath.Join(home, ".invaders")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), discard
	}
	f, err := os.OpenFile(filepath.Join(dir, "invaders.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), discard
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders",
	})
	return logger, func() { f.Close() }
}

// configureGame hands the CLI flags to the invaders package.
func configureGame(preset string, logger *log.Logger) {
	invaders.SetConfigPath(flagConfig)
	invaders.SetLayoutPath(flagLayout)
	invaders.SetDifficultyPreset(preset)
	invaders.SetResultsPath(flagResults)
	invaders.SetLogger(logger)
}

// newCheckedGame creates a game and reports startup configuration errors
// before any UI is shown.
func newCheckedGame(cfg core.RuntimeConfig) (*invaders.Game, error) {
	game := invaders.New()
	game.Reset(cfg)
	if err := game.Err(); err != nil {
		return nil, err
	}
	return game, nil
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagDifficulty != "" {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	logger, closeLog := openLogger()
	defer closeLog()

	cfg := runtimeConfig()
	configureGame(flagDifficulty, logger)

	game, err := newCheckedGame(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		closeLog()
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open results database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(game, store, cfg, logger)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		closeLog()
		os.Exit(1)
	}
}
