package rules

import (
	"math/rand"
	"testing"
)

func (r *Round) scheduler() *Scheduler { return &r.sched }

func TestRoundStart(t *testing.T) {
	engine := newFakeEngine()
	counters := NewMemoryCounters()
	counters.WriteInt(KeyBestScore, 77)
	counters.WriteInt(KeyGamesPlayed, 3)

	r := NewRound(DefaultTable(), DefaultSettings(), Deps{
		Engine:   engine,
		Counters: counters,
		Rand:     rand.New(rand.NewSource(1)),
	})
	if r.Phase() != PhaseIdle {
		t.Fatalf("Phase() = %v before Start, expected idle", r.Phase())
	}
	if r.Drop(200) {
		t.Error("Drop() succeeded on an idle round")
	}

	if !r.Start() {
		t.Fatal("Start() = false, expected true")
	}
	if r.Start() {
		t.Error("second Start() = true, expected false")
	}
	if engine.clears != 1 {
		t.Errorf("engine cleared %d times, expected 1", engine.clears)
	}
	if r.Best() != 77 || r.GamesPlayed() != 3 {
		t.Errorf("Best(), GamesPlayed() = %d, %d, expected 77, 3", r.Best(), r.GamesPlayed())
	}
	if r.Score() != 0 || r.Combo() != 0 || r.ContinuesUsed() != 0 {
		t.Error("transient fields not reset on start")
	}
	for _, rank := range []int{r.CurrentRank(), r.NextRank()} {
		if rank < 0 || rank >= DefaultTable().Drawable() {
			t.Errorf("initial rank %d outside drawable ranks", rank)
		}
	}
	if !r.CanDrop() {
		t.Error("CanDrop() = false after start")
	}
}

func TestDropClamps(t *testing.T) {
	tests := []struct {
		name      string
		requested float64
		upper     bool
	}{
		{"far left", -1000, false},
		{"on left wall", 0, false},
		{"far right", 10000, true},
		{"on right wall", 400, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(DefaultSettings())
			rank := h.round.CurrentRank()
			lo, hi := h.round.DropBand(rank)

			if !h.round.Drop(tt.requested) {
				t.Fatal("Drop() = false, expected true")
			}
			want := lo
			if tt.upper {
				want = hi
			}
			got := h.engine.created[0]
			if got.Pos.X != want {
				t.Errorf("dropped at x = %v, expected %v", got.Pos.X, want)
			}
			if got.Pos.Y != DefaultSettings().DropY {
				t.Errorf("dropped at y = %v, expected %v", got.Pos.Y, DefaultSettings().DropY)
			}
			if got.Radius != DefaultTable().At(rank).Radius {
				t.Errorf("dropped radius = %v, expected rank %d radius", got.Radius, rank)
			}
		})
	}
}

func TestDropBand(t *testing.T) {
	h := newHarness(DefaultSettings())
	lo, hi := h.round.DropBand(0)
	if lo != 12+16+1 || hi != 400-12-16-1 {
		t.Errorf("DropBand(0) = %v, %v, expected 29, 371", lo, hi)
	}

	inside := 200.0
	h.round.SetPendingX(inside)
	h.round.CommitDrop()
	if got := h.engine.created[0].Pos.X; got != inside {
		t.Errorf("in-band drop moved to %v", got)
	}
}

func TestDropAdvancesRanks(t *testing.T) {
	h := newHarness(DefaultSettings())
	next := h.round.NextRank()

	h.round.Drop(200)

	if h.round.CurrentRank() != next {
		t.Errorf("CurrentRank() = %d, expected previous next %d", h.round.CurrentRank(), next)
	}
	if h.round.PieceCount() != 1 {
		t.Errorf("PieceCount() = %d, expected 1", h.round.PieceCount())
	}
	if h.feedback.drops != 1 {
		t.Errorf("drop sounds = %d, expected 1", h.feedback.drops)
	}
	if len(h.feedback.haptics) != 1 || h.feedback.haptics[0] != HapticLight {
		t.Errorf("haptics = %v, expected [light]", h.feedback.haptics)
	}
}

func TestDropCooldown(t *testing.T) {
	h := newHarness(DefaultSettings())

	if !h.round.Drop(200) {
		t.Fatal("first Drop() = false")
	}
	if h.round.Drop(200) {
		t.Fatal("second Drop() succeeded during cooldown")
	}
	if h.feedback.drops != 1 || len(h.engine.created) != 1 {
		t.Error("gated drop produced side effects")
	}

	h.frames(26)
	if h.round.CanDrop() {
		t.Errorf("CanDrop() = true after %.0f ms", h.round.Now())
	}
	h.frames(2)
	if !h.round.CanDrop() {
		t.Errorf("CanDrop() = false after %.0f ms", h.round.Now())
	}
	if !h.round.Drop(200) {
		t.Error("Drop() after cooldown = false")
	}
}

func TestRetireDiscardsTimers(t *testing.T) {
	h := newHarness(DefaultSettings())
	h.round.Drop(200)
	steps := h.engine.steps

	h.round.Retire()
	h.frames(60)

	if h.engine.steps != steps {
		t.Error("retired round kept stepping the engine")
	}
	if h.round.scheduler().Len() != 0 {
		t.Errorf("retired round has %d pending records", h.round.scheduler().Len())
	}
	if h.round.CanDrop() {
		t.Error("retired round re-enabled dropping")
	}
}

func TestSnapshot(t *testing.T) {
	h := newHarness(DefaultSettings())
	h.round.SetPendingX(-50)
	h.round.CommitDrop()

	s := h.round.Snapshot()
	if s.Phase != PhaseRunning {
		t.Errorf("Phase = %v, expected running", s.Phase)
	}
	if len(s.Pieces) != 1 {
		t.Fatalf("len(Pieces) = %d, expected 1 (static bodies excluded)", len(s.Pieces))
	}
	lo, _ := h.round.DropBand(h.round.CurrentRank())
	if s.DropX != lo {
		t.Errorf("DropX = %v, expected clamped %v", s.DropX, lo)
	}
	if s.CanDrop {
		t.Error("CanDrop = true during cooldown")
	}
	if s.Next != h.round.NextRank() {
		t.Errorf("Next = %d, expected %d", s.Next, h.round.NextRank())
	}
}

func TestFrameRedraw(t *testing.T) {
	h := newHarness(DefaultSettings())
	if !h.round.Frame() {
		t.Error("running Frame() = false, expected redraw")
	}

	idle := NewRound(DefaultTable(), DefaultSettings(), Deps{Engine: newFakeEngine()})
	if idle.Frame() {
		t.Error("idle Frame() requested redraw")
	}
	idle.RequestRedraw()
	if !idle.Frame() || idle.Frame() {
		t.Error("RequestRedraw() should produce exactly one redraw while frozen")
	}
}
