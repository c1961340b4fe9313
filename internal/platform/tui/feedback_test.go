package tui

import (
	"testing"

	"github.com/vovakirdan/fruitdrop/internal/core"
	"github.com/vovakirdan/fruitdrop/internal/games/fruitdrop/rules"
)

func TestFeedbackHaptic(t *testing.T) {
	tests := []struct {
		level  rules.Intensity
		color  core.Color
		frames int
		bell   bool
	}{
		{rules.HapticLight, core.ColorGray, 3, false},
		{rules.HapticHeavy, core.ColorBrightYellow, 8, true},
		{rules.HapticError, core.ColorBrightRed, 30, true},
		{rules.HapticSuccess, core.ColorBrightGreen, 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.level.String(), func(t *testing.T) {
			f := NewFeedback(nil)
			f.Haptic(tt.level)

			if f.Flash() != tt.color {
				t.Errorf("Flash() = %v, want %v", f.Flash(), tt.color)
			}
			if f.TakeBell() != tt.bell {
				t.Errorf("bell = %v, want %v", !tt.bell, tt.bell)
			}
			if f.TakeBell() {
				t.Error("bell should clear after TakeBell")
			}

			for i := 0; i < tt.frames-1; i++ {
				f.Tick()
			}
			if f.Flash() != tt.color {
				t.Error("flash ended early")
			}
			f.Tick()
			if f.Flash() != core.ColorDefault {
				t.Errorf("flash still %v after %d frames", f.Flash(), tt.frames)
			}
		})
	}
}

func TestFeedbackLongerPulseWins(t *testing.T) {
	f := NewFeedback(nil)
	f.Haptic(rules.HapticError)
	f.Haptic(rules.HapticLight)

	if f.Flash() != core.ColorBrightRed {
		t.Errorf("Flash() = %v, want bright red", f.Flash())
	}
}

func TestFeedbackWithoutPlayer(t *testing.T) {
	f := NewFeedback(nil)

	// Sounds are no-ops without a player.
	f.DropSound()
	f.MergeSound(3)
	f.GameOverSound()

	if !f.ToggleMute() {
		t.Error("feedback without a player is always muted")
	}
}
