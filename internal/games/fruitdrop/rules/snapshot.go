package rules

import (
	"sort"

	"github.com/vovakirdan/fruitdrop/internal/core"
)

// PieceView is a piece as seen by a renderer.
type PieceView struct {
	ID     BodyID    `json:"id"`
	Rank   int       `json:"rank"`
	Pos    core.Vec2 `json:"pos"`
	Angle  float64   `json:"angle"`
	Radius float64   `json:"r"`
}

// Snapshot is a read-only copy of everything a view needs for one frame.
type Snapshot struct {
	Frame         uint64      `json:"frame"`
	Phase         Phase       `json:"phase"`
	Score         int         `json:"score"`
	Best          int         `json:"best"`
	NewBest       bool        `json:"newBest"`
	GamesPlayed   int         `json:"gamesPlayed"`
	Current       int         `json:"current"`
	Next          int         `json:"next"`
	CanDrop       bool        `json:"canDrop"`
	DropX         float64     `json:"dropX"`
	Combo         int         `json:"combo"`
	Merges        int         `json:"merges"`
	ContinuesUsed int         `json:"continuesUsed"`
	ContinuesLeft int         `json:"continuesLeft"`
	CanContinue   bool        `json:"canContinue"`
	AwaitingAuth  bool        `json:"awaitingAuth"`
	Danger        bool        `json:"danger"`
	Pieces        []PieceView `json:"pieces"`
	Particles     []Particle  `json:"particles,omitempty"`
	Popups        []Popup     `json:"popups,omitempty"`
}

// Snapshot copies the current round state. Pieces are ordered by id.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		Frame:         r.frame,
		Phase:         r.phase,
		Score:         r.score,
		Best:          r.best,
		NewBest:       r.newBest,
		GamesPlayed:   r.gamesPlayed,
		Current:       r.current,
		Next:          r.next,
		CanDrop:       r.CanDrop(),
		DropX:         r.ClampDropX(r.pendingX),
		Combo:         r.combo,
		Merges:        r.merges,
		ContinuesUsed: r.continuesUsed,
		ContinuesLeft: r.ContinuesLeft(),
		CanContinue:   r.CanContinue(),
		AwaitingAuth:  r.awaitingAuth,
		Danger:        r.phase == PhaseRunning && r.InDanger(),
		Particles:     append([]Particle(nil), r.fx.Particles...),
		Popups:        append([]Popup(nil), r.fx.Popups...),
	}

	for _, b := range r.engine.Bodies() {
		p, ok := r.pieces[b.ID]
		if b.Static || !ok || p.State != PieceAlive {
			continue
		}
		s.Pieces = append(s.Pieces, PieceView{
			ID:     b.ID,
			Rank:   p.Rank,
			Pos:    b.Pos,
			Angle:  b.Angle,
			Radius: b.Radius,
		})
	}
	sort.Slice(s.Pieces, func(i, j int) bool { return s.Pieces[i].ID < s.Pieces[j].ID })
	return s
}
