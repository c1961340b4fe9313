package rules

import "sort"

// CanContinue reports whether a continue may be requested right now.
func (r *Round) CanContinue() bool {
	return r.phase == PhaseGameOver &&
		!r.retired &&
		!r.awaitingAuth &&
		r.continuesUsed < r.settings.MaxContinues &&
		r.authorizer != nil &&
		r.authorizer.Available()
}

// ContinuesLeft returns the remaining continue budget.
func (r *Round) ContinuesLeft() int {
	return max(0, r.settings.MaxContinues-r.continuesUsed)
}

// RequestContinue asks the authorizer for a playback and, on success,
// resumes the round with the highest pieces cleared. It returns false when
// the round is not eligible; the state is then unchanged.
func (r *Round) RequestContinue() bool {
	if !r.CanContinue() {
		return false
	}
	r.awaitingAuth = true
	r.authorizer.RequestPlayback(r.resolveContinue)
	return true
}

func (r *Round) resolveContinue(outcome Outcome) {
	r.awaitingAuth = false
	if outcome != OutcomeSuccess {
		return
	}
	if r.retired || r.phase != PhaseGameOver || r.continuesUsed >= r.settings.MaxContinues {
		return
	}

	r.continuesUsed++
	r.clearTopmost(r.settings.RecoveryClear)

	r.phase = PhaseRunning
	r.canDrop = true
	r.sched.Cancel(EventDropReady)

	r.feedback.Haptic(HapticSuccess)
	r.redraw = true
}

// clearTopmost removes the n live pieces with the smallest y.
func (r *Round) clearTopmost(n int) {
	type placed struct {
		piece *Piece
		body  BodyState
	}

	var live []placed
	for _, b := range r.engine.Bodies() {
		p, ok := r.pieces[b.ID]
		if b.Static || !ok || p.State != PieceAlive {
			continue
		}
		live = append(live, placed{piece: p, body: b})
	}
	sort.SliceStable(live, func(i, j int) bool { return live[i].body.Pos.Y < live[j].body.Pos.Y })

	for i := 0; i < n && i < len(live); i++ {
		r.fx.Burst(live[i].body.Pos, live[i].piece.Rank)
		r.removePiece(live[i].piece)
	}
}
