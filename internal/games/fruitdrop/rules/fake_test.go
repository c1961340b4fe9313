package rules

import (
	"math"
	"math/rand"
	"sort"

	"github.com/vovakirdan/fruitdrop/internal/core"
)

// fakeEngine is a scriptable Engine: bodies never move unless a test moves
// them, and contacts are injected with touch and delivered on the next Step.
type fakeEngine struct {
	bodies   map[BodyID]*BodyState
	nextID   BodyID
	handler  func(a, b BodyID)
	contacts [][2]BodyID
	steps    int
	created  []BodyState
	removed  []BodyID
	clears   int
}

func newFakeEngine() *fakeEngine {
	e := &fakeEngine{bodies: make(map[BodyID]*BodyState), nextID: 1}
	// a static floor, present in every snapshot like real walls
	e.bodies[0] = &BodyState{ID: 0, Pos: core.V(200, 640), Radius: 0, Static: true}
	return e
}

func (e *fakeEngine) CreateBody(x, y, radius float64, _ BodyProps) BodyID {
	id := e.nextID
	e.nextID++
	b := &BodyState{ID: id, Pos: core.V(x, y), Radius: radius}
	e.bodies[id] = b
	e.created = append(e.created, *b)
	return id
}

func (e *fakeEngine) RemoveBody(id BodyID) {
	delete(e.bodies, id)
	e.removed = append(e.removed, id)
}

func (e *fakeEngine) SetVelocity(id BodyID, vx, vy float64) {
	if b, ok := e.bodies[id]; ok {
		b.Vel = core.V(vx, vy)
	}
}

func (e *fakeEngine) Step(float64) {
	e.steps++
	contacts := e.contacts
	e.contacts = nil
	for _, c := range contacts {
		if e.handler != nil {
			e.handler(c[0], c[1])
		}
	}
}

func (e *fakeEngine) Body(id BodyID) (BodyState, bool) {
	b, ok := e.bodies[id]
	if !ok {
		return BodyState{}, false
	}
	return *b, true
}

func (e *fakeEngine) Bodies() []BodyState {
	out := make([]BodyState, 0, len(e.bodies))
	for _, b := range e.bodies {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (e *fakeEngine) OnCollisionStart(fn func(a, b BodyID)) {
	e.handler = fn
}

func (e *fakeEngine) Clear() {
	e.clears++
	for id, b := range e.bodies {
		if !b.Static {
			delete(e.bodies, id)
		}
	}
}

func (e *fakeEngine) touch(a, b BodyID) {
	e.contacts = append(e.contacts, [2]BodyID{a, b})
}

func (e *fakeEngine) place(id BodyID, x, y float64) {
	e.bodies[id].Pos = core.V(x, y)
}

// recordingFeedback counts every request.
type recordingFeedback struct {
	drops    int
	merges   []int
	gameOver int
	haptics  []Intensity
}

func (f *recordingFeedback) DropSound()             { f.drops++ }
func (f *recordingFeedback) MergeSound(rank int)    { f.merges = append(f.merges, rank) }
func (f *recordingFeedback) GameOverSound()         { f.gameOver++ }
func (f *recordingFeedback) Haptic(level Intensity) { f.haptics = append(f.haptics, level) }

// manualAuthorizer holds the resolve callback until the test decides.
type manualAuthorizer struct {
	available bool
	requests  int
	pending   func(Outcome)
}

func (a *manualAuthorizer) Available() bool { return a.available }

func (a *manualAuthorizer) RequestPlayback(resolve func(Outcome)) {
	a.requests++
	a.pending = resolve
}

func (a *manualAuthorizer) resolve(o Outcome) {
	fn := a.pending
	a.pending = nil
	fn(o)
}

type harness struct {
	round    *Round
	engine   *fakeEngine
	feedback *recordingFeedback
	counters *MemoryCounters
	auth     *manualAuthorizer
}

func newHarness(settings Settings) *harness {
	return newHarnessWithTable(DefaultTable(), settings)
}

func newHarnessWithTable(table Table, settings Settings) *harness {
	h := &harness{
		engine:   newFakeEngine(),
		feedback: &recordingFeedback{},
		counters: NewMemoryCounters(),
		auth:     &manualAuthorizer{available: true},
	}
	h.round = NewRound(table, settings, Deps{
		Engine:     h.engine,
		Feedback:   h.feedback,
		Counters:   h.counters,
		Authorizer: h.auth,
		Rand:       rand.New(rand.NewSource(42)),
	})
	h.round.Start()
	return h
}

// frames runs n frames.
func (h *harness) frames(n int) {
	for i := 0; i < n; i++ {
		h.round.Frame()
	}
}

// framesFor returns a frame count that safely passes ms of logical time.
func framesFor(ms float64) int {
	return int(math.Ceil(ms/StepMs)) + 1
}
