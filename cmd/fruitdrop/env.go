package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/fruitdrop/internal/config"
	"github.com/vovakirdan/fruitdrop/internal/core"
	"github.com/vovakirdan/fruitdrop/internal/storage"
)

// loadGameConfig reads the config named by --config (or the search path)
// and resolves --difficulty. The preset is applied per round.
func loadGameConfig() (config.FruitDropConfig, config.DifficultyPreset, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.FruitDropConfig{}, "", err
	}
	cfg, err := config.LoadFruitDrop(flagConfig)
	if err != nil {
		return config.FruitDropConfig{}, "", err
	}
	if err := cfg.Validate(); err != nil {
		return config.FruitDropConfig{}, "", err
	}
	return cfg, preset, nil
}

// withPreset returns a copy of cfg with preset applied.
func withPreset(cfg config.FruitDropConfig, preset config.DifficultyPreset) config.FruitDropConfig {
	cfg.Spawn.Weights = append([]int(nil), cfg.Spawn.Weights...)
	config.ApplyFruitDropPreset(&cfg, preset)
	return cfg
}

// openStore opens the scores database. Play goes on without it.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("could not open scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// runtimeConfig sizes the round to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// rankNames lists the fruit names of cfg by rank.
func rankNames(cfg config.FruitDropConfig) []string {
	names := make([]string, len(cfg.Ranks))
	for i, r := range cfg.Ranks {
		names[i] = r.Name
	}
	return names
}
