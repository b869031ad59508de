package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagBoard bool
	flagClear bool
	flagLimit int
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best finished games",
	Long: `Display the best finished games, ranked by points and then lives left.

Examples:
  invaders scores
  invaders scores --limit 25
  invaders scores --board
  invaders scores --clear`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagBoard, "board", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all stored results")
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of results to show")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening results database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearResults(); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing results: %v\n", err)
			store.Close()
			os.Exit(1)
		}
		fmt.Println("All results deleted.")
		return
	}

	if flagBoard {
		cfg := runtimeConfig()
		if _, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	results, err := store.TopResults(flagLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving results: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Println("High Scores - Space Invaders")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No games recorded yet.")
		fmt.Println()
		fmt.Println("Play 'invaders play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-5s  %s\n", "Rank", "Result", "Points", "Lives", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-5s  %s\n", "----", "------", "------", "-----", "----")

	for i, r := range results {
		outcome := "lost"
		if r.Won() {
			outcome = "won"
		}
		fmt.Printf("  %-4d  %-6s  %-6d  %-5d  %s\n", i+1, outcome, r.Points, r.Lives, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetStats()
	if err == nil {
		fmt.Println()
		fmt.Printf("Games: %d  Wins: %d  Losses: %d  Best: %d\n", stats.Games, stats.Wins, stats.Losses(), stats.HighScore)
	}
}
