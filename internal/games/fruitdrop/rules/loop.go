package rules

// Frame advances the round by one fixed timestep and reports whether the
// view needs a redraw. While not running the simulation is frozen and the
// call only flushes pending redraw requests.
//
// Order within a frame: due timers, physics step, merge drain, effect decay,
// loss check.
func (r *Round) Frame() bool {
	if r.phase != PhaseRunning || r.retired {
		redraw := r.redraw
		r.redraw = false
		return redraw
	}

	r.frame++
	r.now += StepMs

	for _, kind := range r.sched.Due(r.now) {
		r.fire(kind)
	}

	r.engine.Step(StepMs)
	r.DrainMerges()
	r.fx.Update()
	r.DetectLoss()

	r.redraw = false
	return true
}

func (r *Round) fire(kind EventKind) {
	switch kind {
	case EventDropReady:
		if r.phase == PhaseRunning {
			r.canDrop = true
		}
	case EventComboExpired:
		r.combo = 0
	}
}
