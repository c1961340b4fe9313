// Package physics is a small impulse-based rigid-body world for circles
// inside a static box container. Shapes and intersection tests come from
// resolv; the package adds gravity, drag and an impulse solver on top.
package physics

import (
	"math"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/fruitdrop/internal/core"
)

type shapeKind int

const (
	shapeCircle shapeKind = iota
	shapeBox
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max core.Vec2
}

// Expand grows the box by margin on every side.
func (a AABB) Expand(margin float64) AABB {
	return AABB{
		Min: core.V(a.Min.X-margin, a.Min.Y-margin),
		Max: core.V(a.Max.X+margin, a.Max.Y+margin),
	}
}

type body struct {
	id   core.BodyID
	kind shapeKind

	pos    core.Vec2
	vel    core.Vec2
	angle  float64
	angVel float64

	radius float64   // circles
	half   core.Vec2 // boxes

	// shape is the exact outline. reach is the circle grown by the touch
	// tolerance and is nil for boxes.
	shape resolv.IShape
	reach resolv.IShape

	invMass     float64
	invInertia  float64
	restitution float64
	friction    float64
	airFriction float64
	static      bool
}

func newCircle(id core.BodyID, pos core.Vec2, radius, tolerance float64, props core.BodyProps) *body {
	b := &body{
		id:          id,
		kind:        shapeCircle,
		pos:         pos,
		radius:      radius,
		shape:       resolv.NewCircle(pos.X, pos.Y, radius),
		reach:       resolv.NewCircle(pos.X, pos.Y, radius+tolerance),
		restitution: props.Restitution,
		friction:    props.Friction,
		airFriction: props.AirFriction,
	}

	density := props.Density
	if density <= 0 {
		density = 0.001
	}
	mass := density * math.Pi * radius * radius
	b.invMass = 1 / mass
	b.invInertia = 1 / (0.5 * mass * radius * radius)
	return b
}

func newWall(id core.BodyID, box AABB, restitution, friction float64) *body {
	size := box.Max.Sub(box.Min)
	return &body{
		id:          id,
		kind:        shapeBox,
		pos:         box.Min.Mid(box.Max),
		half:        size.Scale(0.5),
		shape:       resolv.NewRectangle(box.Min.X, box.Min.Y, size.X, size.Y),
		restitution: restitution,
		friction:    friction,
		static:      true,
	}
}

func (b *body) aabb() AABB {
	ext := b.half
	if b.kind == shapeCircle {
		ext = core.V(b.radius, b.radius)
	}
	return AABB{Min: b.pos.Sub(ext), Max: b.pos.Add(ext)}
}

// sync moves the resolv shapes to the body's position.
func (b *body) sync() {
	if b.static {
		return
	}
	b.shape.SetPosition(b.pos.X, b.pos.Y)
	b.reach.SetPosition(b.pos.X, b.pos.Y)
}

// integrate applies gravity and air drag, then moves the body. k scales the
// per-tick quantities to the step length.
func (b *body) integrate(gravity, k float64) {
	if b.static {
		return
	}
	b.vel.Y += gravity * k
	drag := math.Pow(1-b.airFriction, k)
	b.vel = b.vel.Scale(drag)
	b.angVel *= drag

	b.pos = b.pos.Add(b.vel.Scale(k))
	b.angle += b.angVel * k
}

// applyImpulse changes linear and angular velocity for an impulse applied at
// offset r from the center.
func (b *body) applyImpulse(impulse, r core.Vec2) {
	if b.static {
		return
	}
	b.vel = b.vel.Add(impulse.Scale(b.invMass))
	b.angVel += r.Cross(impulse) * b.invInertia
}

// pointVelocity returns the velocity of the material point at offset r.
func (b *body) pointVelocity(r core.Vec2) core.Vec2 {
	return b.vel.Add(core.V(-b.angVel*r.Y, b.angVel*r.X))
}

func (b *body) state() core.BodyState {
	return core.BodyState{
		ID:     b.id,
		Pos:    b.pos,
		Vel:    b.vel,
		Angle:  b.angle,
		Radius: b.radius,
		Static: b.static,
	}
}
