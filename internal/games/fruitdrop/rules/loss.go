package rules

// DetectLoss checks every aged piece for a settled overflow above the danger
// line and ends the round on the first offender. It returns true when the
// round transitioned to GameOver.
func (r *Round) DetectLoss() bool {
	if r.phase != PhaseRunning {
		return false
	}
	for _, b := range r.engine.Bodies() {
		if !r.aged(b) {
			continue
		}
		if b.Pos.Y-b.Radius < r.settings.DangerY && b.Speed() < r.settings.SettleSpeed {
			r.enterGameOver()
			return true
		}
	}
	return false
}

// InDanger reports whether any aged piece reaches within the warning margin
// of the danger line, moving or not.
func (r *Round) InDanger() bool {
	for _, b := range r.engine.Bodies() {
		if r.aged(b) && b.Pos.Y-b.Radius < r.settings.DangerY+r.settings.DangerMargin {
			return true
		}
	}
	return false
}

// aged reports whether b is a live piece past its grace period.
func (r *Round) aged(b BodyState) bool {
	if b.Static {
		return false
	}
	p, ok := r.pieces[b.ID]
	if !ok || p.State != PieceAlive {
		return false
	}
	return r.now-p.SpawnedAt >= r.settings.GraceMs
}

func (r *Round) enterGameOver() {
	r.phase = PhaseGameOver
	r.canDrop = false

	r.feedback.GameOverSound()
	r.feedback.Haptic(HapticError)

	// Counted once per round: a loss after a continue is the same game.
	if !r.countedLoss {
		r.countedLoss = true
		r.gamesPlayed++
		r.counters.WriteInt(KeyGamesPlayed, r.gamesPlayed)
	}
	if r.score > r.best {
		r.best = r.score
		r.newBest = true
		r.counters.WriteInt(KeyBestScore, r.best)
	}
	r.redraw = true
}
