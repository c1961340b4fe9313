package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets lists the known presets in order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}

// ParsePreset returns the preset named s. An empty name means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	if s == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// ApplyFruitDropPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyFruitDropPreset(cfg *FruitDropConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Recovery.MaxContinues = 3
		cfg.Drop.CooldownMs = 350
		cfg.Loss.GraceMs = 1500
		cfg.Loss.SettleSpeed = 1.0
		setWeights(cfg, []int{36, 30, 20, 10, 4})
	case DifficultyHard:
		cfg.Recovery.MaxContinues = 1
		cfg.Drop.CooldownMs = 550
		cfg.Loss.GraceMs = 1000
		cfg.Loss.SettleSpeed = 2.0
		setWeights(cfg, []int{26, 24, 22, 16, 12})
	}
}

// setWeights only replaces weights of the same length, so a custom rank
// table keeps its own distribution.
func setWeights(cfg *FruitDropConfig, w []int) {
	if len(cfg.Spawn.Weights) == len(w) {
		cfg.Spawn.Weights = w
	}
}
