package rules

import "math/rand"

// Phase is the round's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// PieceState tracks a piece through the merge pipeline.
type PieceState int

const (
	PieceAlive PieceState = iota
	PiecePendingMerge
	PieceRemoved
)

// Piece is the rules-side record of a fruit body.
type Piece struct {
	ID        BodyID
	Rank      int
	SpawnedAt float64
	State     PieceState
}

// Deps are the collaborators of a round. Engine is required; the others
// default to no-ops.
type Deps struct {
	Engine     Engine
	Feedback   Feedback
	Counters   Counters
	Authorizer Authorizer
	Rand       *rand.Rand
}

type candidate struct {
	a, b BodyID
}

// Round is one play session from start to discard. A restart replaces the
// Round; nothing carries over except what Counters persisted.
//
// A Round is not safe for concurrent use. Every method, the engine callback
// and the authorizer resolve must run on the goroutine that calls Frame.
type Round struct {
	table    Table
	settings Settings

	engine     Engine
	feedback   Feedback
	counters   Counters
	authorizer Authorizer

	spawner *Spawner
	sched   Scheduler
	fx      Effects

	phase   Phase
	now     float64
	frame   uint64
	retired bool

	score       int
	best        int
	gamesPlayed int
	newBest     bool
	countedLoss bool

	current  int
	next     int
	canDrop  bool
	pendingX float64
	drops    int

	combo    int
	maxCombo int
	merges   int
	topRank  int

	continuesUsed int
	awaitingAuth  bool

	pieces map[BodyID]*Piece
	queue  []candidate

	redraw bool
}

// NewRound creates an idle round. Settings are assumed validated against
// the table.
func NewRound(table Table, settings Settings, deps Deps) *Round {
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	fb := deps.Feedback
	if fb == nil {
		fb = NopFeedback{}
	}
	counters := deps.Counters
	if counters == nil {
		counters = NewMemoryCounters()
	}

	return &Round{
		table:      table,
		settings:   settings,
		engine:     deps.Engine,
		feedback:   fb,
		counters:   counters,
		authorizer: deps.Authorizer,
		spawner:    NewSpawner(settings.SpawnWeights, rng),
		fx:         newEffects(rand.New(rand.NewSource(rng.Int63()))),
		pieces:     make(map[BodyID]*Piece),
		pendingX:   settings.Width / 2,
		topRank:    -1,
	}
}

// Start moves an idle round to Running: clears the engine, subscribes to
// contacts, reads the persisted counters and fills the current and next
// ranks. It returns false if the round was already started.
func (r *Round) Start() bool {
	if r.phase != PhaseIdle || r.retired {
		return false
	}

	r.engine.Clear()
	r.engine.OnCollisionStart(r.onCollisionStart)

	r.best = r.counters.ReadInt(KeyBestScore)
	r.gamesPlayed = r.counters.ReadInt(KeyGamesPlayed)

	r.current = r.spawner.Next()
	r.next = r.spawner.Next()
	r.canDrop = true
	r.phase = PhaseRunning
	r.redraw = true
	return true
}

// Retire detaches the round so late callbacks (a pending continue) become
// no-ops. Called when the round is discarded by a restart.
func (r *Round) Retire() {
	r.retired = true
	r.canDrop = false
	r.sched.Reset()
	r.queue = nil
}

func (r *Round) Phase() Phase       { return r.phase }
func (r *Round) IsGameOver() bool   { return r.phase == PhaseGameOver }
func (r *Round) Score() int         { return r.score }
func (r *Round) Best() int          { return r.best }
func (r *Round) GamesPlayed() int   { return r.gamesPlayed }
func (r *Round) NewBest() bool      { return r.newBest }
func (r *Round) CurrentRank() int   { return r.current }
func (r *Round) NextRank() int      { return r.next }
func (r *Round) CanDrop() bool      { return r.canDrop && r.phase == PhaseRunning }
func (r *Round) Combo() int         { return r.combo }
func (r *Round) MaxCombo() int      { return r.maxCombo }
func (r *Round) Merges() int        { return r.merges }
func (r *Round) Drops() int         { return r.drops }
func (r *Round) ContinuesUsed() int { return r.continuesUsed }
func (r *Round) Now() float64       { return r.now }
func (r *Round) Frames() uint64     { return r.frame }
func (r *Round) Table() Table       { return r.table }
func (r *Round) Settings() Settings { return r.settings }
func (r *Round) AwaitingAuth() bool { return r.awaitingAuth }
func (r *Round) Effects() *Effects  { return &r.fx }
func (r *Round) PendingX() float64  { return r.pendingX }

// TopRank returns the highest rank reached by a merge, or -1.
func (r *Round) TopRank() int { return r.topRank }

// Piece returns the live record for id.
func (r *Round) Piece(id BodyID) (*Piece, bool) {
	p, ok := r.pieces[id]
	return p, ok
}

// PieceCount returns the number of pieces in play.
func (r *Round) PieceCount() int {
	return len(r.pieces)
}

// RequestRedraw marks the next frame dirty even while frozen.
func (r *Round) RequestRedraw() {
	r.redraw = true
}

// spawnPiece creates a body and registers it as an Alive piece.
func (r *Round) spawnPiece(rank int, x, y float64) BodyID {
	id := r.engine.CreateBody(x, y, r.table.At(rank).Radius, r.settings.Fruit)
	r.pieces[id] = &Piece{ID: id, Rank: rank, SpawnedAt: r.now, State: PieceAlive}
	return id
}

func (r *Round) removePiece(p *Piece) {
	p.State = PieceRemoved
	r.engine.RemoveBody(p.ID)
	delete(r.pieces, p.ID)
}
