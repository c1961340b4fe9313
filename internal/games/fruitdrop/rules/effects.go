package rules

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/fruitdrop/internal/core"
)

const (
	particleGravity = 0.12
	popupRise       = 1.2
	popupFade       = 0.02
)

// Particle is one cosmetic spark of a merge burst.
type Particle struct {
	Pos    core.Vec2 `json:"pos"`
	Vel    core.Vec2 `json:"-"`
	Radius float64   `json:"r"`
	Rank   int       `json:"rank"`
	Life   float64   `json:"life"`
	Decay  float64   `json:"-"`
}

// Popup is a floating score label.
type Popup struct {
	Pos  core.Vec2 `json:"pos"`
	Text string    `json:"text"`
	Life float64   `json:"life"`
}

// Effects owns the particles and popups of a round. It never touches
// gameplay state.
type Effects struct {
	Particles []Particle
	Popups    []Popup
	rng       *rand.Rand
}

func newEffects(rng *rand.Rand) Effects {
	return Effects{rng: rng}
}

// Burst spawns a ring of particles for a merge or removal at pos.
func (e *Effects) Burst(pos core.Vec2, rank int) {
	count := 10 + rank*2
	for i := 0; i < count; i++ {
		angle := 2*math.Pi*float64(i)/float64(count) + (e.rng.Float64()-0.5)*0.8
		speed := 2 + e.rng.Float64()*4 + float64(rank)*0.5
		e.Particles = append(e.Particles, Particle{
			Pos:    pos,
			Vel:    core.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Radius: 2.5 + e.rng.Float64()*3.5,
			Rank:   rank,
			Life:   1,
			Decay:  0.018 + e.rng.Float64()*0.015,
		})
	}
}

// Popup adds a score label; combos above one get a suffix.
func (e *Effects) Popup(pos core.Vec2, points, combo int) {
	text := fmt.Sprintf("+%d", points)
	if combo > 1 {
		text += fmt.Sprintf(" x%d combo!", combo)
	}
	e.Popups = append(e.Popups, Popup{Pos: pos, Text: text, Life: 1})
}

// Update advances every effect by one frame and drops the expired ones.
func (e *Effects) Update() {
	ps := e.Particles[:0]
	for _, p := range e.Particles {
		p.Pos = p.Pos.Add(p.Vel)
		p.Vel.Y += particleGravity
		p.Life -= p.Decay
		if p.Life > 0 {
			ps = append(ps, p)
		}
	}
	e.Particles = ps

	pp := e.Popups[:0]
	for _, p := range e.Popups {
		p.Pos.Y -= popupRise
		p.Life -= popupFade
		if p.Life > 0 {
			pp = append(pp, p)
		}
	}
	e.Popups = pp
}

// Reset clears all effects.
func (e *Effects) Reset() {
	e.Particles = e.Particles[:0]
	e.Popups = e.Popups[:0]
}
