package rules

// DropBand returns the legal x interval for a piece of the given rank.
func (r *Round) DropBand(rank int) (lo, hi float64) {
	radius := r.table.At(rank).Radius
	lo = r.settings.WallThickness + radius + 1
	hi = r.settings.Width - r.settings.WallThickness - radius - 1
	return lo, hi
}

// ClampDropX clamps x into the legal band of the current rank.
func (r *Round) ClampDropX(x float64) float64 {
	lo, hi := r.DropBand(r.current)
	return max(lo, min(hi, x))
}

// SetPendingX records where the next drop should happen. The stored value is
// clamped for the current rank at commit time, since the rank may change in
// between.
func (r *Round) SetPendingX(x float64) {
	if r.pendingX == x {
		return
	}
	r.pendingX = x
	r.redraw = true
}

// NudgePendingX shifts the pending x by dx and clamps it.
func (r *Round) NudgePendingX(dx float64) {
	r.SetPendingX(r.ClampDropX(r.ClampDropX(r.pendingX) + dx))
}

// CommitDrop drops the current piece at the pending x.
func (r *Round) CommitDrop() bool {
	return r.Drop(r.pendingX)
}

// Drop places the current piece at x (clamped) and the drop height. It is a
// no-op returning false while dropping is gated or the round is not running.
func (r *Round) Drop(x float64) bool {
	if !r.CanDrop() || r.retired {
		return false
	}

	x = r.ClampDropX(x)
	r.spawnPiece(r.current, x, r.settings.DropY)
	r.drops++

	r.canDrop = false
	r.current = r.next
	r.next = r.spawner.Next()
	r.sched.Schedule(EventDropReady, r.now+r.settings.DropCooldownMs)

	r.feedback.DropSound()
	r.feedback.Haptic(HapticLight)
	r.redraw = true
	return true
}
