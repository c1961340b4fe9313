// Package rules implements the merge game's rules: the rank table, spawn
// selection, drop admission, the merge pipeline with combo scoring, loss
// detection, continues and the per-frame loop that ties them together.
//
// Rigid-body motion is delegated to an Engine. Sound, haptics, persistence
// and continue authorization are reached through the small interfaces below,
// so the package has no dependencies beyond internal/core.
package rules

import "github.com/vovakirdan/fruitdrop/internal/core"

// Body types are shared with the physics engine.
type (
	BodyID    = core.BodyID
	BodyProps = core.BodyProps
	BodyState = core.BodyState
)

// Engine is the rigid-body simulation the rules drive.
// Implementations must only invoke the collision callback from inside Step.
type Engine interface {
	CreateBody(x, y, radius float64, props BodyProps) BodyID
	RemoveBody(id BodyID)
	SetVelocity(id BodyID, vx, vy float64)
	Step(dtMs float64)
	Body(id BodyID) (BodyState, bool)
	Bodies() []BodyState
	// OnCollisionStart replaces the handler fired for every pair that starts
	// touching during a step.
	OnCollisionStart(fn func(a, b BodyID))
	// Clear removes every non-static body.
	Clear()
}

// Intensity grades a haptic pulse.
type Intensity int

const (
	HapticLight Intensity = iota
	HapticHeavy
	HapticError
	HapticSuccess
)

func (i Intensity) String() string {
	switch i {
	case HapticLight:
		return "light"
	case HapticHeavy:
		return "heavy"
	case HapticError:
		return "error"
	case HapticSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// Feedback receives discrete audio and haptic requests at the moment the
// triggering action happens.
type Feedback interface {
	DropSound()
	MergeSound(rank int)
	GameOverSound()
	Haptic(level Intensity)
}

// NopFeedback discards every request.
type NopFeedback struct{}

func (NopFeedback) DropSound()       {}
func (NopFeedback) MergeSound(int)   {}
func (NopFeedback) GameOverSound()   {}
func (NopFeedback) Haptic(Intensity) {}

// Counter keys persisted between rounds.
const (
	KeyBestScore   = "best_score"
	KeyGamesPlayed = "games_played"
)

// Counters persists named integers. Missing keys read as zero.
type Counters interface {
	ReadInt(key string) int
	WriteInt(key string, value int)
}

// Outcome is the resolved result of a continue authorization.
type Outcome int

const (
	OutcomeFailure Outcome = iota
	OutcomeSuccess
)

// Authorizer gates continues behind an external playback (a sponsor break).
// RequestPlayback must call resolve exactly once, on the same goroutine that
// drives the round.
type Authorizer interface {
	Available() bool
	RequestPlayback(resolve func(Outcome))
}
