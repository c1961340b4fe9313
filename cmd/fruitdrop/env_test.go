package main

import (
	"slices"
	"testing"

	"github.com/vovakirdan/fruitdrop/internal/config"
)

func TestWithPresetLeavesBaseIntact(t *testing.T) {
	base := config.DefaultFruitDropConfig()
	weights := slices.Clone(base.Spawn.Weights)

	hard := withPreset(base, config.DifficultyHard)

	if !slices.Equal(base.Spawn.Weights, weights) {
		t.Errorf("base weights changed: %v, want %v", base.Spawn.Weights, weights)
	}
	if hard.Recovery.MaxContinues != 1 {
		t.Errorf("hard continues = %d, want 1", hard.Recovery.MaxContinues)
	}
	if err := hard.Validate(); err != nil {
		t.Errorf("hard config invalid: %v", err)
	}
}

func TestNameOf(t *testing.T) {
	names := rankNames(config.DefaultFruitDropConfig())

	tests := []struct {
		rank int
		want string
	}{
		{-1, "-"},
		{0, names[0]},
		{len(names) - 1, names[len(names)-1]},
		{len(names), "-"},
	}
	for _, tt := range tests {
		if got := nameOf(names, tt.rank); got != tt.want {
			t.Errorf("nameOf(%d) = %q, want %q", tt.rank, got, tt.want)
		}
	}
}
