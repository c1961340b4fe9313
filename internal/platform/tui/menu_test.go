package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/fruitdrop/internal/config"
)

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(nil, testRuntime(), config.DifficultyNormal)
	if len(m.items) < 2 {
		t.Fatalf("menu has %d items, want both modes", len(m.items))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(MenuModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)

	if m.Selected() == nil || m.Selected().GameID != "fruitdrop_hardcore" {
		t.Errorf("Selected() = %+v, want fruitdrop_hardcore", m.Selected())
	}
}

func TestMenuPresetCycles(t *testing.T) {
	tests := []struct {
		key  tea.KeyType
		want config.DifficultyPreset
	}{
		{tea.KeyRight, config.DifficultyHard},
		{tea.KeyLeft, config.DifficultyEasy},
	}

	for _, tt := range tests {
		m := NewMenuModel(nil, testRuntime(), config.DifficultyNormal)
		next, _ := m.Update(tea.KeyMsg{Type: tt.key})
		if got := next.(MenuModel).Preset(); got != tt.want {
			t.Errorf("after %v preset = %s, want %s", tt.key, got, tt.want)
		}
	}

	// Right from hard wraps to easy.
	m := NewMenuModel(nil, testRuntime(), config.DifficultyHard)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := next.(MenuModel).Preset(); got != config.DifficultyEasy {
		t.Errorf("preset = %s, want easy", got)
	}
}

func TestSessionFlow(t *testing.T) {
	s := NewSessionModel(SessionOptions{
		Runtime: testRuntime(),
		Game:    config.DefaultFruitDropConfig(),
		Preset:  config.DifficultyNormal,
	})

	step := func(msg tea.Msg) {
		t.Helper()
		next, _ := s.Update(msg)
		s = next.(SessionModel)
	}

	step(tea.KeyMsg{Type: tea.KeyTab})
	if s.scoreboard == nil {
		t.Fatal("tab should open the scoreboard")
	}
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.scoreboard != nil {
		t.Fatal("esc should close the scoreboard")
	}

	step(tea.KeyMsg{Type: tea.KeyEnter})
	if s.gameModel == nil {
		t.Fatal("enter should start a game")
	}
	if s.quitting {
		t.Fatal("starting a game must not end the session")
	}

	// Pause, then leave to the menu.
	step(tea.KeyMsg{Type: tea.KeyEsc})
	step(TickMsg{})
	step(tea.KeyMsg{Type: tea.KeyEsc})
	if s.gameModel != nil {
		t.Fatal("esc on a paused game should return to the menu")
	}

	step(runeKey("q"))
	if !s.quitting {
		t.Error("q in the menu should end the session")
	}
}
