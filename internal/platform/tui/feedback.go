package tui

import (
	"github.com/vovakirdan/fruitdrop/internal/audio"
	"github.com/vovakirdan/fruitdrop/internal/core"
	"github.com/vovakirdan/fruitdrop/internal/games/fruitdrop/rules"
)

// Feedback implements rules.Feedback for a terminal. Sounds go to an
// optional audio player; haptic pulses become a colored flash of the frame
// border, and the strong ones ring the terminal bell.
type Feedback struct {
	player *audio.Player
	flash  core.Color
	frames int
	bell   bool
}

var _ rules.Feedback = (*Feedback)(nil)

// NewFeedback creates terminal feedback. player may be nil.
func NewFeedback(player *audio.Player) *Feedback {
	return &Feedback{player: player}
}

func (f *Feedback) DropSound() {
	if f.player != nil {
		f.player.DropSound()
	}
}

func (f *Feedback) MergeSound(rank int) {
	if f.player != nil {
		f.player.MergeSound(rank)
	}
}

func (f *Feedback) GameOverSound() {
	if f.player != nil {
		f.player.GameOverSound()
	}
}

// Haptic starts a border flash sized by the pulse.
func (f *Feedback) Haptic(level rules.Intensity) {
	switch level {
	case rules.HapticLight:
		f.pulse(core.ColorGray, 3)
	case rules.HapticHeavy:
		f.pulse(core.ColorBrightYellow, 8)
		f.bell = true
	case rules.HapticError:
		f.pulse(core.ColorBrightRed, 30)
		f.bell = true
	case rules.HapticSuccess:
		f.pulse(core.ColorBrightGreen, 20)
	}
}

// pulse replaces the current flash unless a longer one is still running.
func (f *Feedback) pulse(c core.Color, frames int) {
	if f.frames > frames {
		return
	}
	f.flash = c
	f.frames = frames
}

// Tick ages the flash by one frame.
func (f *Feedback) Tick() {
	if f.frames == 0 {
		return
	}
	f.frames--
	if f.frames == 0 {
		f.flash = core.ColorDefault
	}
}

// Flash returns the current border color, ColorDefault when idle.
func (f *Feedback) Flash() core.Color {
	return f.flash
}

// TakeBell reports and clears a pending bell.
func (f *Feedback) TakeBell() bool {
	b := f.bell
	f.bell = false
	return b
}

// ToggleMute flips the audio mute. It returns the new state; without a
// player the game is always muted.
func (f *Feedback) ToggleMute() bool {
	if f.player == nil {
		return true
	}
	muted := !f.player.Muted()
	f.player.SetMuted(muted)
	return muted
}
