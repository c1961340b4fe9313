package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fruitdrop/internal/config"
	"github.com/vovakirdan/fruitdrop/internal/games/fruitdrop/rules"
)

var ranksCmd = &cobra.Command{
	Use:   "ranks",
	Short: "Show the fruit table",
	Long: `Print the merge tiers of the active config (after --config and
--difficulty): name, radius, merge score and drop weight.

Examples:
  fruitdrop ranks
  fruitdrop ranks --config ./my-fruitdrop.yaml --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runRanks,
}

func runRanks(_ *cobra.Command, _ []string) {
	base, preset, err := loadGameConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg := withPreset(base, preset)

	spawner := rules.NewSpawner(cfg.Spawn.Weights, nil)

	fmt.Printf("Fruit table (%s)\n", preset)
	fmt.Println()
	fmt.Printf("  %-4s  %-12s  %-5s  %6s  %6s  %s\n", "Rank", "Name", "Glyph", "Radius", "Score", "Drop")
	fmt.Printf("  %-4s  %-12s  %-5s  %6s  %6s  %s\n", "----", "----", "-----", "------", "-----", "----")
	for i, r := range cfg.Ranks {
		drop := "-"
		if p := spawner.Probability(i); p > 0 {
			drop = fmt.Sprintf("%.0f%%", p*100)
		}
		fmt.Printf("  %-4d  %-12s  %-5s  %6.0f  %6d  %s\n", i, r.Name, r.Glyph, r.Radius, r.Score, drop)
	}

	fmt.Println()
	fmt.Printf("Merging two %s: %s\n", cfg.Ranks[len(cfg.Ranks)-1].Name, terminalRule(cfg.Merge.Terminal))
	fmt.Printf("Continues: %d (sponsor break %ds)\n", cfg.Recovery.MaxContinues, cfg.Recovery.SponsorSeconds)
}

func terminalRule(mode string) string {
	if mode == config.TerminalKeep {
		return "they stay in play"
	}
	return "both vanish for the score"
}
