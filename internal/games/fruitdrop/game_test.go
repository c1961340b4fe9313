package fruitdrop

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/fruitdrop/internal/config"
	"github.com/vovakirdan/fruitdrop/internal/core"
	"github.com/vovakirdan/fruitdrop/internal/games/fruitdrop/rules"
	"github.com/vovakirdan/fruitdrop/internal/registry"
)

type instantAuthorizer struct {
	outcome rules.Outcome
	calls   int
}

func (a *instantAuthorizer) Available() bool { return true }

func (a *instantAuthorizer) RequestPlayback(resolve func(rules.Outcome)) {
	a.calls++
	resolve(a.outcome)
}

func testRuntime() core.RuntimeConfig {
	return core.RuntimeConfig{ScreenW: 80, ScreenH: 40, TickRate: 60, Seed: 42}
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// instantLossConfig ends a round on the first frame after a drop.
func instantLossConfig() *config.FruitDropConfig {
	cfg := config.DefaultFruitDropConfig()
	cfg.Loss.DangerY = 630
	cfg.Loss.GraceMs = 0
	return &cfg
}

func TestModesRegistered(t *testing.T) {
	tests := []struct {
		id    string
		title string
	}{
		{"fruitdrop", "Fruit Drop"},
		{"fruitdrop_hardcore", "Fruit Drop (Hardcore)"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			g, err := registry.Create(tt.id)
			if err != nil {
				t.Fatalf("Create(%q): %v", tt.id, err)
			}
			if g.ID() != tt.id || g.Title() != tt.title {
				t.Errorf("got %q/%q, want %q/%q", g.ID(), g.Title(), tt.id, tt.title)
			}
			info, ok := registry.Info(tt.id)
			if !ok || info.Description == "" {
				t.Errorf("missing description for %q", tt.id)
			}
		})
	}
}

func TestDeterminism(t *testing.T) {
	g1 := New(Classic)
	g1.Reset(testRuntime())
	g2 := New(Classic)
	g2.Reset(testRuntime())

	for i := 0; i < 600; i++ {
		in := core.NewInputFrame()
		if i%30 == 0 {
			in.Set(core.ActionDrop)
		}
		if i%45 == 0 {
			in.Set(core.ActionLeft)
		}
		g1.Step(in)
		g2.Step(in)
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Score != s2.Score || s1.Current != s2.Current || s1.Next != s2.Next {
		t.Fatalf("state mismatch: %+v vs %+v", s1.Score, s2.Score)
	}
	if len(s1.Pieces) != len(s2.Pieces) {
		t.Fatalf("piece count mismatch: %d vs %d", len(s1.Pieces), len(s2.Pieces))
	}
	for i := range s1.Pieces {
		if s1.Pieces[i] != s2.Pieces[i] {
			t.Errorf("piece %d differs: %+v vs %+v", i, s1.Pieces[i], s2.Pieces[i])
		}
	}
}

func TestHardcoreHasNoContinues(t *testing.T) {
	g := New(Hardcore)
	if err := g.Use(Env{Config: instantLossConfig(), Authorizer: &instantAuthorizer{outcome: rules.OutcomeSuccess}}); err != nil {
		t.Fatalf("Use: %v", err)
	}
	g.Reset(testRuntime())

	if got := g.Round().Settings().MaxContinues; got != 0 {
		t.Fatalf("MaxContinues = %d, want 0", got)
	}

	res := g.Step(input(core.ActionDrop))
	if !res.State.GameOver {
		t.Fatal("expected game over after the drop")
	}
	if res.State.CanContinue {
		t.Error("hardcore round must not offer a continue")
	}
}

func TestUseRejectsInvalidConfig(t *testing.T) {
	g := New(Classic)
	bad := config.DefaultFruitDropConfig()
	bad.Spawn.Weights = []int{1, 2, 3}

	if err := g.Use(Env{Config: &bad}); err == nil {
		t.Fatal("expected error for increasing weights")
	}

	g.Reset(testRuntime())
	if got := g.Round().Settings().SpawnWeights; len(got) != 5 || got[0] != 32 {
		t.Errorf("previous setup not kept: weights %v", got)
	}
}

func TestUseAppliesConfig(t *testing.T) {
	cfg := config.DefaultFruitDropConfig()
	cfg.Recovery.MaxContinues = 1
	cfg.Merge.Terminal = config.TerminalKeep

	g := New(Classic)
	if err := g.Use(Env{Config: &cfg}); err != nil {
		t.Fatalf("Use: %v", err)
	}
	g.Reset(testRuntime())

	s := g.Round().Settings()
	if s.MaxContinues != 1 {
		t.Errorf("MaxContinues = %d, want 1", s.MaxContinues)
	}
	if s.Terminal != rules.TerminalKeep {
		t.Errorf("Terminal = %v, want keep", s.Terminal)
	}
}

func TestStepInput(t *testing.T) {
	g := New(Classic)
	g.Reset(testRuntime())
	r := g.Round()

	if r.PendingX() != 200 {
		t.Fatalf("initial pending x = %v, want 200", r.PendingX())
	}

	g.Step(input(core.ActionLeft))
	if r.PendingX() != 190 {
		t.Errorf("after left: %v, want 190", r.PendingX())
	}
	g.Step(input(core.ActionRight))
	g.Step(input(core.ActionRight))
	if r.PendingX() != 210 {
		t.Errorf("after two rights: %v, want 210", r.PendingX())
	}

	g.Step(input(core.ActionDrop))
	if r.Drops() != 1 || r.PieceCount() != 1 {
		t.Errorf("drops=%d pieces=%d, want 1/1", r.Drops(), r.PieceCount())
	}

	// Dropping again inside the cooldown is ignored.
	g.Step(input(core.ActionDrop))
	if r.Drops() != 1 {
		t.Errorf("drop during cooldown accepted: drops=%d", r.Drops())
	}
}

func TestPointerMapsColumns(t *testing.T) {
	g := New(Classic)
	g.Reset(testRuntime())
	r := g.Round()
	lo, hi := r.DropBand(r.CurrentRank())

	tests := []struct {
		name string
		col  int
		want float64
	}{
		{"left edge", g.view.ox, lo},
		{"right edge", g.view.ox + g.view.cols - 1, hi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := core.NewInputFrame()
			in.PointAt(tt.col, g.view.oy)
			g.Step(in)
			if r.PendingX() != tt.want {
				t.Errorf("pending x = %v, want %v", r.PendingX(), tt.want)
			}
		})
	}

	// Columns outside the field leave the pending x alone.
	before := r.PendingX()
	in := core.NewInputFrame()
	in.PointAt(g.view.hudX()+3, g.view.oy)
	g.Step(in)
	if r.PendingX() != before {
		t.Errorf("HUD column moved pending x to %v", r.PendingX())
	}
}

func TestPauseFreezesRound(t *testing.T) {
	g := New(Classic)
	g.Reset(testRuntime())

	g.Step(input())
	frames := g.Round().Frames()

	res := g.Step(input(core.ActionPause))
	if !res.State.Paused || !res.Redraw {
		t.Fatalf("pause toggle: %+v", res)
	}
	for i := 0; i < 10; i++ {
		g.Step(input(core.ActionDrop))
	}
	if g.Round().Frames() != frames || g.Round().Drops() != 0 {
		t.Errorf("round advanced while paused: frames %d drops %d", g.Round().Frames(), g.Round().Drops())
	}

	g.Step(input(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
	if g.Round().Frames() != frames+1 {
		t.Errorf("frames = %d, want %d", g.Round().Frames(), frames+1)
	}
}

func TestGameOverAndContinue(t *testing.T) {
	var buf bytes.Buffer
	auth := &instantAuthorizer{outcome: rules.OutcomeSuccess}
	counters := rules.NewMemoryCounters()

	g := New(Classic)
	err := g.Use(Env{
		Config:     instantLossConfig(),
		Counters:   counters,
		Authorizer: auth,
		Logger:     log.New(&buf),
	})
	if err != nil {
		t.Fatalf("Use: %v", err)
	}
	g.Reset(testRuntime())

	res := g.Step(input(core.ActionDrop))
	if !res.State.GameOver || !res.State.CanContinue {
		t.Fatalf("after drop: %+v", res.State)
	}
	if counters.ReadInt(rules.KeyGamesPlayed) != 1 {
		t.Errorf("games played = %d, want 1", counters.ReadInt(rules.KeyGamesPlayed))
	}

	screen := core.NewScreen(80, 40)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"GAME OVER", "c continue (2 left)", "I scored 0 in", "I just got 0 points in"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	res = g.Step(input(core.ActionContinue))
	if auth.calls != 1 {
		t.Fatalf("authorizer calls = %d, want 1", auth.calls)
	}
	if res.State.GameOver {
		t.Fatal("continue should resume the round")
	}
	if g.Round().ContinuesUsed() != 1 || g.Round().PieceCount() != 0 {
		t.Errorf("used=%d pieces=%d, want 1/0", g.Round().ContinuesUsed(), g.Round().PieceCount())
	}

	logs := buf.String()
	for _, want := range []string{"round started", "game over", "continue granted"} {
		if !strings.Contains(logs, want) {
			t.Errorf("log missing %q:\n%s", want, logs)
		}
	}
}

func TestContinueDeniedKeepsGameOver(t *testing.T) {
	var buf bytes.Buffer
	auth := &instantAuthorizer{outcome: rules.OutcomeFailure}

	g := New(Classic)
	if err := g.Use(Env{Config: instantLossConfig(), Authorizer: auth, Logger: log.New(&buf)}); err != nil {
		t.Fatalf("Use: %v", err)
	}
	g.Reset(testRuntime())
	g.Step(input(core.ActionDrop))

	res := g.Step(input(core.ActionContinue))
	if !res.State.GameOver || g.Round().ContinuesUsed() != 0 {
		t.Errorf("failed continue changed state: %+v used=%d", res.State, g.Round().ContinuesUsed())
	}
	if !strings.Contains(buf.String(), "continue denied") {
		t.Errorf("log missing denial:\n%s", buf.String())
	}
}

func TestResetStartsFreshRound(t *testing.T) {
	g := New(Classic)
	if err := g.Use(Env{Config: instantLossConfig()}); err != nil {
		t.Fatalf("Use: %v", err)
	}
	g.Reset(testRuntime())
	g.Step(input(core.ActionDrop))
	old := g.Round()
	oldID := g.RoundID()

	g.Reset(testRuntime())
	if g.Round() == old || g.RoundID() == oldID || g.RoundID() == "" {
		t.Fatal("Reset should create a new round with a new id")
	}
	if g.State().GameOver || g.Round().PieceCount() != 0 {
		t.Errorf("fresh round not clean: %+v pieces=%d", g.State(), g.Round().PieceCount())
	}
	// The retired round ignores input.
	if old.Drop(200) {
		t.Error("retired round accepted a drop")
	}
}

func TestSummary(t *testing.T) {
	g := New(Classic)
	g.Reset(testRuntime())
	g.Step(input(core.ActionDrop))

	s := g.Summary()
	if s.Mode != "fruitdrop" || s.RoundID != g.RoundID() {
		t.Errorf("unexpected summary ids %+v", s)
	}
	if s.Drops != 1 || s.TopRank != -1 {
		t.Errorf("drops=%d topRank=%d, want 1/-1", s.Drops, s.TopRank)
	}
}

func TestRender(t *testing.T) {
	g := New(Classic)
	g.Reset(testRuntime())
	g.Step(input(core.ActionDrop))

	screen := core.NewScreen(80, 40)
	g.Render(screen)
	out := screen.String()

	for _, want := range []string{"Fruit Drop", "Score   0", "Next", "Continues 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
	if !strings.ContainsRune(out, fillRune) {
		t.Error("expected the dropped piece to be drawn")
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := New(Classic)
	g.Reset(core.RuntimeConfig{ScreenW: 30, ScreenH: 10, Seed: 1})

	screen := core.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Terminal too small") {
		t.Error("expected the too-small notice")
	}
	if _, ok := g.view.worldX(5); ok {
		t.Error("pointer should not map on a too-small screen")
	}

	g.Resize(80, 40)
	if g.view.tooSmall {
		t.Error("Resize should recompute the layout")
	}
}

func TestLayout(t *testing.T) {
	v := layout(80, 40, 400, 650)
	if v.tooSmall {
		t.Fatal("80x40 should fit")
	}
	if v.rows != 38 || v.cols != 47 {
		t.Errorf("rows=%d cols=%d, want 38/47", v.rows, v.cols)
	}
	if v.hudX()+hudWidth > 80+1 {
		t.Errorf("HUD overflows: starts at %d", v.hudX())
	}

	col, row := v.cell(0, 0)
	if col != v.ox || row != v.oy {
		t.Errorf("origin maps to (%d,%d)", col, row)
	}
	x, ok := v.worldX(v.ox)
	if !ok || x <= 0 || x >= v.upc {
		t.Errorf("first column x = %v ok=%v", x, ok)
	}
}

func TestWrap(t *testing.T) {
	got := wrap("I scored 10 in Fruit Drop! Can you beat my score?", 12)
	for _, line := range got {
		if len(line) > 12 {
			t.Errorf("line %q longer than 12", line)
		}
	}
	if strings.Join(got, " ") != "I scored 10 in Fruit Drop! Can you beat my score?" {
		t.Errorf("wrap lost words: %q", got)
	}
}

func TestShareTexts(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"share", ShareText(120, "Fruit Drop"), "I scored 120 in Fruit Drop! Can you beat my score?"},
		{"challenge", ChallengeText(120, "Fruit Drop"), "I just got 120 points in Fruit Drop! I bet you can't beat that."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}
