// Package fruitdrop adapts the merge game rules to the terminal platform:
// it owns the physics world, maps platform input onto drops and continues,
// and draws the round into a character screen.
package fruitdrop

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/fruitdrop/internal/config"
	"github.com/vovakirdan/fruitdrop/internal/core"
	"github.com/vovakirdan/fruitdrop/internal/games/fruitdrop/rules"
	"github.com/vovakirdan/fruitdrop/internal/physics"
	"github.com/vovakirdan/fruitdrop/internal/registry"
)

// Mode selects a rule variant registered in the game registry.
type Mode struct {
	ID       string
	Title    string
	Hardcore bool // no continues
}

var (
	Classic  = Mode{ID: "fruitdrop", Title: "Fruit Drop"}
	Hardcore = Mode{ID: "fruitdrop_hardcore", Title: "Fruit Drop (Hardcore)", Hardcore: true}
)

func init() {
	registry.Register(Classic.ID, func() registry.Game {
		return New(Classic)
	})
	registry.Register(Hardcore.ID, func() registry.Game {
		return New(Hardcore)
	})
}

// Env carries the collaborators a platform plugs into the game.
// Zero fields fall back to in-memory or no-op implementations.
type Env struct {
	Config     *config.FruitDropConfig
	Counters   rules.Counters
	Feedback   rules.Feedback
	Authorizer rules.Authorizer
	Logger     *log.Logger
}

// Summary describes a round for the leaderboard.
type Summary struct {
	RoundID   string
	Mode      string
	Score     int
	Best      int
	NewBest   bool
	Merges    int
	Drops     int
	TopRank   int
	MaxCombo  int
	Continues int
}

// Game implements registry.Game for one mode.
type Game struct {
	mode   Mode
	env    Env
	setup  setup
	logger *log.Logger

	world   *physics.World
	round   *rules.Round
	roundID string

	screenW int
	screenH int
	view    viewport

	paused    bool
	lastPhase rules.Phase
	awaiting  bool
}

// New creates a game for mode with the built-in configuration.
func New(mode Mode) *Game {
	s, err := buildSetup(config.DefaultFruitDropConfig(), mode)
	if err != nil {
		panic("fruitdrop: built-in config is invalid: " + err.Error())
	}
	return &Game{
		mode:   mode,
		setup:  s,
		logger: log.New(io.Discard),
	}
}

// Use installs collaborators and, when env.Config is set, a new
// configuration. It takes effect on the next Reset. An invalid config is
// rejected and the previous one kept.
func (g *Game) Use(env Env) error {
	if env.Config != nil {
		s, err := buildSetup(*env.Config, g.mode)
		if err != nil {
			return err
		}
		g.setup = s
	}
	g.env = env
	g.logger = env.Logger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}
	return nil
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	return g.mode.Title
}

// Description returns a one-line summary for listings.
func (g *Game) Description() string {
	if g.mode.Hardcore {
		return "Merge equal fruit, no continues"
	}
	return "Merge equal fruit into a watermelon"
}

// Reset retires the current round and starts a fresh one.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	if g.round != nil {
		g.round.Retire()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g.world = physics.NewWorld(g.setup.physics, g.setup.container)
	g.round = rules.NewRound(g.setup.table, g.setup.settings, rules.Deps{
		Engine:     g.world,
		Feedback:   g.env.Feedback,
		Counters:   g.env.Counters,
		Authorizer: g.env.Authorizer,
		Rand:       rand.New(rand.NewSource(seed)),
	})
	g.round.Start()
	g.roundID = uuid.NewString()
	g.paused = false
	g.awaiting = false
	g.lastPhase = g.round.Phase()

	g.screenW, g.screenH = cfg.ScreenW, cfg.ScreenH
	g.fit()

	g.logger.Info("round started",
		"mode", g.mode.ID,
		"round", g.roundID,
		"best", g.round.Best(),
		"games", g.round.GamesPlayed(),
	)
}

// Resize adapts the layout to a new terminal size without touching the round.
func (g *Game) Resize(w, h int) {
	g.screenW, g.screenH = w, h
	g.fit()
	if g.round != nil {
		g.round.RequestRedraw()
	}
}

// fit lays the world's container out on the current screen.
func (g *Game) fit() {
	box := g.setup.container
	if g.world != nil {
		box = g.world.Container()
	}
	g.view = layout(g.screenW, g.screenH, box.Width, box.Height)
}

// Step applies one frame of input and advances the round by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.round == nil {
		return core.StepResult{}
	}

	toggled := false
	if in.Has(core.ActionPause) && g.round.Phase() == rules.PhaseRunning {
		g.paused = !g.paused
		toggled = true
	}
	if g.paused {
		return core.StepResult{State: g.State(), Redraw: toggled}
	}

	if in.Has(core.ActionLeft) {
		g.round.NudgePendingX(-g.setup.nudge)
	}
	if in.Has(core.ActionRight) {
		g.round.NudgePendingX(g.setup.nudge)
	}
	if in.Pointer.Valid {
		if x, ok := g.view.worldX(in.Pointer.Col); ok {
			g.round.SetPendingX(g.round.ClampDropX(x))
		}
	}
	if in.Has(core.ActionDrop) {
		g.round.CommitDrop()
	}
	if in.Has(core.ActionContinue) && g.round.RequestContinue() {
		// The authorizer may resolve synchronously; observe must still see the request.
		g.awaiting = true
		g.logger.Info("continue requested", "round", g.roundID, "used", g.round.ContinuesUsed())
	}

	redraw := g.round.Frame()
	g.observe()

	return core.StepResult{State: g.State(), Redraw: redraw || toggled}
}

// observe logs phase transitions and continue outcomes.
func (g *Game) observe() {
	phase := g.round.Phase()
	awaiting := g.round.AwaitingAuth()

	switch {
	case phase == rules.PhaseGameOver && g.lastPhase != rules.PhaseGameOver:
		g.logger.Info("game over",
			"mode", g.mode.ID,
			"round", g.roundID,
			"score", g.round.Score(),
			"best", g.round.Best(),
			"merges", g.round.Merges(),
		)
	case phase == rules.PhaseRunning && g.lastPhase == rules.PhaseGameOver:
		g.logger.Info("continue granted", "round", g.roundID, "used", g.round.ContinuesUsed())
	case g.awaiting && !awaiting && phase == rules.PhaseGameOver:
		g.logger.Info("continue denied", "round", g.roundID)
	}

	g.lastPhase = phase
	g.awaiting = awaiting
}

// State returns the platform-facing status.
func (g *Game) State() core.GameState {
	if g.round == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:       g.round.Score(),
		GameOver:    g.round.IsGameOver(),
		Paused:      g.paused,
		CanContinue: g.round.CanContinue(),
	}
}

// Snapshot returns the round state for spectators and tests.
func (g *Game) Snapshot() rules.Snapshot {
	if g.round == nil {
		return rules.Snapshot{}
	}
	return g.round.Snapshot()
}

// RoundID returns the identifier of the current round.
func (g *Game) RoundID() string {
	return g.roundID
}

// Round exposes the current round.
func (g *Game) Round() *rules.Round {
	return g.round
}

// SponsorSeconds returns how long a continue break lasts.
func (g *Game) SponsorSeconds() int {
	return g.setup.sponsor
}

// Summary returns the leaderboard view of the current round.
func (g *Game) Summary() Summary {
	if g.round == nil {
		return Summary{Mode: g.mode.ID}
	}
	return Summary{
		RoundID:   g.roundID,
		Mode:      g.mode.ID,
		Score:     g.round.Score(),
		Best:      g.round.Best(),
		NewBest:   g.round.NewBest(),
		Merges:    g.round.Merges(),
		Drops:     g.round.Drops(),
		TopRank:   g.round.TopRank(),
		MaxCombo:  g.round.MaxCombo(),
		Continues: g.round.ContinuesUsed(),
	}
}

// RankName returns the display name of a rank, or "-" for none.
func (g *Game) RankName(rank int) string {
	if rank < 0 || rank >= g.setup.table.Len() {
		return "-"
	}
	return g.setup.table.At(rank).Name
}
