package config

import (
	_ "embed"
)

//go:embed defaults/fruitdrop.yaml
var defaultFruitDropYAML []byte

// DefaultFruitDropConfig returns the built-in configuration. It mirrors
// defaults/fruitdrop.yaml and is used when the embedded file cannot be
// parsed.
func DefaultFruitDropConfig() FruitDropConfig {
	return FruitDropConfig{
		Container: ContainerConfig{
			Width:  400,
			Height: 650,
			Wall:   12,
		},
		Drop: DropConfig{
			Height:     80,
			CooldownMs: 450,
			Nudge:      10,
		},
		Loss: LossConfig{
			DangerY:     110,
			WarnMargin:  40,
			GraceMs:     1200,
			SettleSpeed: 1.5,
		},
		Combo: ComboConfig{
			WindowMs: 600,
		},
		Merge: MergeConfig{
			PopVelocity:     2,
			HeavyHapticRank: 5,
			Terminal:        TerminalAnnihilate,
		},
		Recovery: RecoveryConfig{
			MaxContinues:   2,
			ClearCount:     2,
			SponsorSeconds: 5,
		},
		Physics: PhysicsConfig{
			Gravity:         0.5,
			Iterations:      8,
			AirFriction:     0.01,
			Restitution:     0.15,
			Friction:        0.4,
			Density:         0.0015,
			WallRestitution: 0.1,
			WallFriction:    0.3,
		},
		Spawn: SpawnConfig{
			Weights: []int{32, 28, 22, 12, 6},
		},
		Ranks: []RankConfig{
			{Name: "Cherry", Radius: 16, Score: 1, Glyph: "c", Color: "red"},
			{Name: "Grape", Radius: 24, Score: 3, Glyph: "g", Color: "purple"},
			{Name: "Orange", Radius: 32, Score: 6, Glyph: "o", Color: "orange"},
			{Name: "Apple", Radius: 40, Score: 10, Glyph: "a", Color: "bright_red"},
			{Name: "Pear", Radius: 50, Score: 15, Glyph: "p", Color: "bright_green"},
			{Name: "Lemon", Radius: 58, Score: 21, Glyph: "l", Color: "yellow"},
			{Name: "Peach", Radius: 68, Score: 28, Glyph: "h", Color: "pink"},
			{Name: "Mango", Radius: 80, Score: 36, Glyph: "m", Color: "bright_yellow"},
			{Name: "Melon", Radius: 92, Score: 45, Glyph: "n", Color: "cyan"},
			{Name: "Watermelon", Radius: 106, Score: 55, Glyph: "W", Color: "green"},
		},
	}
}
