package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruitdrop/internal/platform/tui"
	"github.com/vovakirdan/fruitdrop/internal/registry"
	"github.com/vovakirdan/fruitdrop/internal/storage"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagClear       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show the leaderboard",
	Long: `Without a mode, list every mode with its stats. With a mode, show its
top rounds.

Examples:
  fruitdrop scores
  fruitdrop scores fruitdrop
  fruitdrop scores fruitdrop_hardcore --limit 25
  fruitdrop scores -i
  fruitdrop scores fruitdrop --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of rounds to show")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the leaderboard of the given mode")
}

func runScores(_ *cobra.Command, args []string) {
	if len(args) == 1 && !registry.Exists(args[0]) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", args[0])
		os.Exit(1)
	}

	cfg, _, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	names := rankNames(cfg)

	if flagClear {
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a mode")
			os.Exit(1)
		}
		if err := store.ClearScores(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing scores: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared the %s leaderboard.\n", args[0])
		return
	}

	if flagInteractive {
		rt := runtimeConfig()
		if _, err := tui.RunScoreboard(store, names, rt.ScreenW, rt.ScreenH); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return
	}

	if len(args) == 0 {
		printModes(store)
		return
	}
	if err := printTop(store, args[0], names); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}
}

// printModes lists every mode with its aggregate stats.
func printModes(store *storage.Store) {
	games := registry.List()
	stats, err := store.GetAllGamesStats()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: stats unavailable: %v\n", err)
	}

	fmt.Println("Modes:")
	fmt.Println()
	fmt.Printf("  %-20s  %-24s  %6s  %8s  %8s\n", "ID", "Title", "Games", "Best", "Average")
	fmt.Printf("  %-20s  %-24s  %6s  %8s  %8s\n", "--", "-----", "-----", "----", "-------")
	for _, g := range games {
		s := stats[g.ID]
		if s == nil {
			s = &storage.GameStats{}
		}
		fmt.Printf("  %-20s  %-24s  %6d  %8d  %8.0f\n", g.ID, g.Title, s.GamesCount, s.HighScore, s.AvgScore)
	}
	fmt.Println()
	fmt.Println("Run 'fruitdrop scores <id>' for the top rounds of a mode.")
}

// printTop prints the best rounds of one mode.
func printTop(store *storage.Store, gameID string, names []string) error {
	info, _ := registry.Info(gameID)

	scores, err := store.TopScores(gameID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", info.Title)
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'fruitdrop play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-6s  %-12s  %-5s  %-9s  %s\n", "Rank", "Score", "Merges", "Top fruit", "Combo", "Continues", "Date")
	fmt.Printf("  %-4s  %-8s  %-6s  %-12s  %-5s  %-9s  %s\n", "----", "-----", "------", "---------", "-----", "---------", "----")
	for i, r := range scores {
		fmt.Printf("  %-4d  %-8d  %-6d  %-12s  x%-4d  %-9d  %s\n",
			i+1, r.Score, r.Merges, nameOf(names, r.TopRank), r.MaxCombo, r.Continues,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetGameStats(gameID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %d  Games: %d  Average: %.0f  Best combo: x%d  Top fruit: %s\n",
			stats.HighScore, stats.GamesCount, stats.AvgScore, stats.BestCombo, nameOf(names, stats.TopRank))
	}
	return nil
}

// nameOf returns the fruit name of rank, "-" when none was reached.
func nameOf(names []string, rank int) string {
	if rank < 0 || rank >= len(names) {
		return "-"
	}
	return names[rank]
}
