package rules

// onCollisionStart is the engine contact handler. It only enqueues; all
// mutation happens in DrainMerges.
func (r *Round) onCollisionStart(a, b BodyID) {
	if r.retired || r.phase != PhaseRunning {
		return
	}
	pa, okA := r.pieces[a]
	pb, okB := r.pieces[b]
	if !okA || !okB {
		return
	}
	if pa.Rank != pb.Rank || pa.State != PieceAlive || pb.State != PieceAlive {
		return
	}
	if r.table.IsTerminal(pa.Rank) && r.settings.Terminal == TerminalKeep {
		return
	}
	r.queue = append(r.queue, candidate{a: a, b: b})
}

// QueueLen returns the number of merge candidates waiting for the next drain.
func (r *Round) QueueLen() int {
	return len(r.queue)
}

// DrainMerges resolves queued candidates in enqueue order and returns the
// number of merges performed. A piece takes part in at most one merge per
// drain; later pairs that reference a claimed piece are skipped.
func (r *Round) DrainMerges() int {
	queue := r.queue
	r.queue = nil

	merged := 0
	for _, c := range queue {
		pa, okA := r.pieces[c.a]
		pb, okB := r.pieces[c.b]
		if !okA || !okB || pa.State != PieceAlive || pb.State != PieceAlive {
			continue
		}
		if r.mergePair(pa, pb) {
			merged++
		}
	}
	return merged
}

func (r *Round) mergePair(pa, pb *Piece) bool {
	ba, okA := r.engine.Body(pa.ID)
	bb, okB := r.engine.Body(pb.ID)
	if !okA || !okB {
		return false
	}

	pa.State = PiecePendingMerge
	pb.State = PiecePendingMerge

	mid := ba.Pos.Mid(bb.Pos)
	src := pa.Rank
	result := r.table.Promote(src)

	r.removePiece(pa)
	r.removePiece(pb)

	if !r.table.IsTerminal(src) {
		id := r.spawnPiece(result, mid.X, mid.Y)
		r.engine.SetVelocity(id, 0, -r.settings.PopVelocity)
	}

	combo := r.bumpCombo()
	points := r.table.At(result).Score * max(1, combo)
	r.score += points
	r.merges++
	r.topRank = max(r.topRank, result)

	r.fx.Burst(mid, result)
	r.fx.Popup(mid, points, combo)
	r.feedback.MergeSound(result)
	if result >= r.settings.HeavyHapticRank {
		r.feedback.Haptic(HapticHeavy)
	} else {
		r.feedback.Haptic(HapticLight)
	}
	r.redraw = true
	return true
}

// bumpCombo expires a stale combo, increments the counter and restarts the
// window.
func (r *Round) bumpCombo() int {
	r.expireCombo()
	r.combo++
	r.maxCombo = max(r.maxCombo, r.combo)
	r.sched.Schedule(EventComboExpired, r.now+r.settings.ComboWindowMs)
	return r.combo
}

func (r *Round) expireCombo() {
	at, ok := r.sched.Pending(EventComboExpired)
	if ok && r.now >= at {
		r.sched.Cancel(EventComboExpired)
		r.combo = 0
	}
}
