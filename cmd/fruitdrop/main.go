// fruitdrop is a physics merge game for the terminal: drop fruit into a
// container, merge equal pairs into bigger fruit and keep the pile below
// the danger line.
//
// Usage:
//
//	fruitdrop play [mode]    - Play a mode, or pick one from the menu
//	fruitdrop scores [mode]  - Show the leaderboard and stats
//	fruitdrop ranks          - Show the fruit table of the active config
//	fruitdrop serve          - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible rounds
//	--db <path>           - Set database path (default: ~/.fruitdrop/scores.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - easy, normal or hard
//	--log <path>          - Log file for interactive play
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruitdrop/internal/logging"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fruitdrop",
	Short: "Fruit Drop - a merge puzzle in your terminal",
	Long: `Fruit Drop is a physics merge game. Fruit falls into a container;
two fruit of the same kind that touch merge into the next bigger one.
The round ends when the pile stays above the danger line.

Available commands:
  play     - Play a mode directly, or pick one from the menu
  scores   - View the leaderboard
  ranks    - Show the fruit table
  serve    - Start SSH server for remote play

Examples:
  fruitdrop play
  fruitdrop play fruitdrop_hardcore --difficulty hard
  fruitdrop play --sound --spectate :8080
  fruitdrop scores
  fruitdrop serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.fruitdrop/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", logging.DefaultFile, "Log file for interactive play")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(ranksCmd)
	rootCmd.AddCommand(serveCmd)
}
