package rules

import (
	"errors"
	"fmt"
)

// TerminalMerge selects what happens when two terminal-rank pieces touch.
type TerminalMerge int

const (
	// TerminalAnnihilate removes both pieces and scores the terminal rank.
	TerminalAnnihilate TerminalMerge = iota
	// TerminalKeep ignores terminal contacts; the pieces stay in play.
	TerminalKeep
)

func (m TerminalMerge) String() string {
	if m == TerminalKeep {
		return "keep"
	}
	return "annihilate"
}

// StepMs is the fixed simulation timestep (60 frames per second).
const StepMs = 1000.0 / 60.0

// Settings are the tunables of a round. Distances are playfield units,
// durations are milliseconds of logical time.
type Settings struct {
	Width         float64
	Height        float64
	WallThickness float64

	DropY          float64
	DropCooldownMs float64

	DangerY      float64
	DangerMargin float64 // warning highlight distance below DangerY
	GraceMs      float64
	SettleSpeed  float64

	ComboWindowMs   float64
	PopVelocity     float64 // upward speed given to merge results
	HeavyHapticRank int

	MaxContinues  int
	RecoveryClear int

	SpawnWeights []int
	Terminal     TerminalMerge
	Fruit        BodyProps
}

// DefaultSettings returns the reference tunables.
func DefaultSettings() Settings {
	return Settings{
		Width:           400,
		Height:          650,
		WallThickness:   12,
		DropY:           80,
		DropCooldownMs:  450,
		DangerY:         110,
		DangerMargin:    40,
		GraceMs:         1200,
		SettleSpeed:     1.5,
		ComboWindowMs:   600,
		PopVelocity:     2,
		HeavyHapticRank: 5,
		MaxContinues:    2,
		RecoveryClear:   2,
		SpawnWeights:    append([]int(nil), DefaultSpawnWeights...),
		Terminal:        TerminalAnnihilate,
		Fruit: BodyProps{
			Restitution: 0.15,
			Friction:    0.4,
			AirFriction: 0.01,
			Density:     0.0015,
		},
	}
}

// Validate checks the settings against the rank table they will run with.
func (s Settings) Validate(t Table) error {
	if len(s.SpawnWeights) != t.Drawable() {
		return fmt.Errorf("rules: %d spawn weights for %d drawable ranks", len(s.SpawnWeights), t.Drawable())
	}
	for i, w := range s.SpawnWeights {
		if w <= 0 {
			return fmt.Errorf("rules: spawn weight %d must be positive", i)
		}
		if i > 0 && w >= s.SpawnWeights[i-1] {
			return fmt.Errorf("rules: spawn weights must be strictly decreasing (index %d)", i)
		}
	}

	largest := t.At(t.Drawable() - 1).Radius
	if s.Width-2*s.WallThickness-2 < 2*largest {
		return fmt.Errorf("rules: container width %.0f too narrow for rank radius %.0f", s.Width, largest)
	}
	if s.DangerY <= s.DropY {
		return errors.New("rules: danger line must sit below the drop height")
	}
	if s.DangerY >= s.Height-s.WallThickness {
		return errors.New("rules: danger line must sit above the floor")
	}
	if s.MaxContinues < 0 || s.RecoveryClear < 0 {
		return errors.New("rules: continue budget must not be negative")
	}
	if s.DropCooldownMs < 0 || s.GraceMs < 0 || s.ComboWindowMs <= 0 {
		return errors.New("rules: durations must not be negative")
	}
	if s.SettleSpeed <= 0 {
		return errors.New("rules: settle speed must be positive")
	}
	return nil
}
