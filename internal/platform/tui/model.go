package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruitdrop/internal/audio"
	"github.com/vovakirdan/fruitdrop/internal/config"
	"github.com/vovakirdan/fruitdrop/internal/core"
	"github.com/vovakirdan/fruitdrop/internal/games/fruitdrop"
	"github.com/vovakirdan/fruitdrop/internal/games/fruitdrop/rules"
	"github.com/vovakirdan/fruitdrop/internal/logging"
	"github.com/vovakirdan/fruitdrop/internal/registry"
	"github.com/vovakirdan/fruitdrop/internal/spectate"
	"github.com/vovakirdan/fruitdrop/internal/storage"
)

// The frame border takes one cell on every side and the help line one row.
const (
	chromeW = 2
	chromeH = 3
)

// roundGame is the extra surface of games that plug into the platform's
// storage, feedback and continue flow.
type roundGame interface {
	registry.Game
	Use(env fruitdrop.Env) error
	Resize(w, h int)
	Snapshot() rules.Snapshot
	Summary() fruitdrop.Summary
	SponsorSeconds() int
}

// Options configure a game model. Zero values disable the matching feature.
type Options struct {
	Store   *storage.Store
	Runtime core.RuntimeConfig
	Config  *config.FruitDropConfig
	Logger  *log.Logger
	Audio   *audio.Player
	Hub     *spectate.Hub
	Bell    io.Writer // terminal bell output
	Scope   string    // counter scope, defaults to the game ID
	InMenu  bool      // back returns to a menu instead of quitting
}

// Model is the Bubble Tea model for running a game.
type Model struct {
	game       registry.Game
	round      roundGame
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	feedback   *Feedback
	sponsor    *Sponsor
	logger     *log.Logger
	inputFrame core.InputFrame
	gameState  core.GameState
	width      int
	height     int
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether the current game over has been saved
}

// NewModel creates a model for game and wires the platform collaborators
// into it.
func NewModel(game registry.Game, opts Options) (Model, error) {
	cfg := opts.Runtime
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	m := Model{
		game:       game,
		opts:       opts,
		config:     cfg,
		keys:       DefaultKeyMap(),
		help:       help.New(),
		feedback:   NewFeedback(opts.Audio),
		sponsor:    NewSponsor(0),
		logger:     logger,
		inputFrame: core.NewInputFrame(),
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
	}
	m.help.Width = cfg.ScreenW

	if rg, ok := game.(roundGame); ok {
		scope := opts.Scope
		if scope == "" {
			scope = game.ID()
		}
		env := fruitdrop.Env{
			Config:     opts.Config,
			Feedback:   m.feedback,
			Authorizer: m.sponsor,
			Logger:     logger,
		}
		if opts.Store != nil {
			env.Counters = storage.NewCounters(opts.Store, scope, logger)
		}
		if err := rg.Use(env); err != nil {
			return Model{}, fmt.Errorf("tui: %s: %w", game.ID(), err)
		}
		m.sponsor.SetSeconds(rg.SponsorSeconds())
		m.round = rg
	}

	gc := m.gameConfig()
	m.screen = core.NewScreen(gc.ScreenW, gc.ScreenH)
	return m, nil
}

// gameConfig is the runtime config with the chrome subtracted.
func (m Model) gameConfig() core.RuntimeConfig {
	gc := m.config
	gc.ScreenW = max(1, m.width-chromeW)
	gc.ScreenH = max(1, m.height-chromeH)
	return gc
}

// Init starts the round and the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		MouseToFrame(msg, 1, 1, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keys.Action(msg)

	if action == core.ActionQuit {
		m.sponsor.Cancel()
		m.quitting = true
		return m, tea.Quit
	}

	// A running break only listens for its cancel key.
	if m.sponsor.Active() {
		if action == core.ActionBack {
			m.sponsor.Cancel()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		muted := m.feedback.ToggleMute()
		m.logger.Debug("sound toggled", "muted", muted)
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if action == core.ActionBack {
		if !m.gameState.GameOver && !m.gameState.Paused {
			m.inputFrame.Set(core.ActionPause)
			return m, nil
		}
		if m.opts.InMenu {
			m.backToMenu = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	}

	if action != core.ActionNone {
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize adapts the screen to the new window size. Games that can
// relayout keep their round; others restart as before.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	gc := m.gameConfig()
	m.screen.Resize(gc.ScreenW, gc.ScreenH)

	if m.round != nil {
		m.round.Resize(gc.ScreenW, gc.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(gc)
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	m.sponsor.Advance(time.Second / time.Duration(m.config.TickRate))
	m.feedback.Tick()

	if m.inputFrame.Has(core.ActionRestart) {
		m.sponsor.Cancel()
		if m.opts.Runtime.Seed == 0 {
			m.config.Seed = time.Now().UnixNano()
		}
		m.game.Reset(m.gameConfig())
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	// Save once per game over; a continue re-arms it and the round id keeps
	// the leaderboard to a single row.
	switch {
	case m.gameState.GameOver && !m.scoreSaved:
		m.saveScore()
		m.scoreSaved = true
	case !m.gameState.GameOver:
		m.scoreSaved = false
	}

	if result.Redraw {
		m.publish()
	}

	m.inputFrame.Clear()

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.feedback.TakeBell() && m.opts.Bell != nil {
		cmds = append(cmds, bellCmd(m.opts.Bell))
	}
	return m, tea.Batch(cmds...)
}

// saveScore stores the finished round. Best effort: the game goes on if the
// database is unavailable.
func (m Model) saveScore() {
	if m.opts.Store == nil || m.round == nil || m.gameState.Score <= 0 {
		return
	}

	s := m.round.Summary()
	_, err := m.opts.Store.SaveResult(storage.RoundResult{
		RoundID:   s.RoundID,
		GameID:    m.game.ID(),
		Score:     s.Score,
		Merges:    s.Merges,
		TopRank:   s.TopRank,
		MaxCombo:  s.MaxCombo,
		Continues: s.Continues,
	})
	if err != nil {
		m.logger.Warn("could not save score", "game", m.game.ID(), "error", err)
	}
}

// publish sends the current snapshot to spectators.
func (m Model) publish() {
	if m.opts.Hub == nil || m.round == nil {
		return
	}
	m.opts.Hub.Publish(spectate.Message{
		Type: "snapshot",
		Mode: m.game.ID(),
		Data: m.round.Snapshot(),
	})
}

// bellCmd rings the terminal bell.
func bellCmd(w io.Writer) tea.Cmd {
	return func() tea.Msg {
		//nolint:errcheck // Best-effort bell
		io.WriteString(w, "\a")
		return nil
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".fruitdrop", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	gc := m.gameConfig()
	var body string
	if m.sponsor.Active() {
		body = lipgloss.Place(gc.ScreenW, gc.ScreenH, lipgloss.Center, lipgloss.Center, m.sponsor.View(gc.ScreenW))
	} else {
		m.screen.Clear()
		m.game.Render(m.screen)
		body = RenderScreen(m.screen)
	}

	framed := frameStyle(m.feedback.Flash()).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left, framed, m.help.View(m.keys))
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run starts the Bubble Tea program for game.
func Run(game registry.Game, opts Options) error {
	model, err := NewModel(game, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err = p.Run()
	return err
}
