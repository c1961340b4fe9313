package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/fruitdrop/internal/games/fruitdrop/rules"
)

// Sponsor authorizes continues with a short countdown break. It is driven
// by the model's tick, so the resolve callback always runs on the Bubble
// Tea update goroutine. Esc cancels the break and denies the continue.
type Sponsor struct {
	duration time.Duration
	elapsed  time.Duration
	resolve  func(rules.Outcome)
	disabled bool
	bar      progress.Model
}

var _ rules.Authorizer = (*Sponsor)(nil)

// NewSponsor creates a sponsor break of the given length. Zero grants
// continues immediately; a negative length disables continues.
func NewSponsor(seconds int) *Sponsor {
	s := &Sponsor{
		bar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
	s.SetSeconds(seconds)
	return s
}

// SetSeconds changes the break length for later requests.
func (s *Sponsor) SetSeconds(seconds int) {
	s.disabled = seconds < 0
	s.duration = time.Duration(max(seconds, 0)) * time.Second
}

// Available reports whether a break can start now.
func (s *Sponsor) Available() bool {
	return !s.disabled && s.resolve == nil
}

// RequestPlayback starts the break. resolve fires once, from Advance or
// Cancel, or right away for a zero-length break.
func (s *Sponsor) RequestPlayback(resolve func(rules.Outcome)) {
	if s.disabled || s.resolve != nil {
		resolve(rules.OutcomeFailure)
		return
	}
	if s.duration <= 0 {
		resolve(rules.OutcomeSuccess)
		return
	}
	s.resolve = resolve
	s.elapsed = 0
}

// Active reports whether a break is running.
func (s *Sponsor) Active() bool {
	return s.resolve != nil
}

// Advance moves the countdown and grants the continue when it completes.
func (s *Sponsor) Advance(dt time.Duration) {
	if s.resolve == nil {
		return
	}
	s.elapsed += dt
	if s.elapsed >= s.duration {
		s.finish(rules.OutcomeSuccess)
	}
}

// Cancel aborts a running break without granting the continue.
func (s *Sponsor) Cancel() {
	if s.resolve != nil {
		s.finish(rules.OutcomeFailure)
	}
}

func (s *Sponsor) finish(o rules.Outcome) {
	resolve := s.resolve
	s.resolve = nil
	resolve(o)
}

// Percent returns the completed fraction of the running break.
func (s *Sponsor) Percent() float64 {
	if s.duration <= 0 {
		return 1
	}
	return min(1, float64(s.elapsed)/float64(s.duration))
}

// Remaining returns the time left in the running break.
func (s *Sponsor) Remaining() time.Duration {
	return max(0, s.duration-s.elapsed)
}

// View renders the break panel.
func (s *Sponsor) View(width int) string {
	s.bar.Width = max(10, min(40, width-8))

	title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Render("Sponsor break")
	secs := int((s.Remaining() + time.Second - 1) / time.Second)
	body := fmt.Sprintf("%s\n\n%s\n\nYour continue starts in %ds\n", title, s.bar.ViewAs(s.Percent()), secs)
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("esc to skip (no continue)")

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("57")).
		Padding(1, 3).
		Render(body + hint)
}
