package physics

import (
	"math"

	"github.com/vovakirdan/fruitdrop/internal/core"
)

// manifold describes one contact. Normal points from a to b.
type manifold struct {
	a, b        *body
	normal      core.Vec2
	penetration float64
	contact     core.Vec2
	restitution float64
	friction    float64
}

// detect returns the contact between a and b, if any. Separation up to
// tolerance still counts as touching but yields a non-positive penetration.
func detect(a, b *body, tolerance float64) (manifold, bool) {
	switch {
	case a.kind == shapeCircle:
		return intersect(a, b, tolerance)
	case b.kind == shapeCircle:
		m, ok := intersect(b, a, tolerance)
		if ok {
			m.a, m.b = a, b
			m.normal = m.normal.Scale(-1)
		}
		return m, ok
	}
	return manifold{}, false
}

func mixed(m manifold) manifold {
	m.restitution = math.Min(m.a.restitution, m.b.restitution)
	m.friction = math.Sqrt(m.a.friction * m.b.friction)
	return m
}

// intersect tests circle c, grown by tolerance, against o. The manifold
// normal points from c into o.
func intersect(c, o *body, tolerance float64) (manifold, bool) {
	set := c.reach.Intersection(0, 0, o.shape)
	if set == nil {
		return manifold{}, false
	}

	toward := o.pos.Sub(c.pos)
	mtv := core.V(set.MTV.X, set.MTV.Y)
	depth := mtv.Len()

	var normal core.Vec2
	switch {
	case depth > 0:
		normal = mtv.Scale(1 / depth)
		// the MTV separates c from o; orient it toward o
		if normal.Dot(toward) < 0 {
			normal = normal.Scale(-1)
		}
	case toward.LenSq() > 0:
		normal = toward.Norm()
	default:
		normal = core.V(0, 1)
	}

	return mixed(manifold{
		a:           c,
		b:           o,
		normal:      normal,
		penetration: depth - tolerance,
		contact:     c.pos.Add(normal.Scale(c.radius)),
	}), true
}

// resolve applies the normal and friction impulses for m.
func resolve(m manifold, restingSpeed float64) {
	a, b := m.a, m.b
	invMassSum := a.invMass + b.invMass
	if invMassSum == 0 {
		return
	}

	ra := m.contact.Sub(a.pos)
	rb := m.contact.Sub(b.pos)

	rv := b.pointVelocity(rb).Sub(a.pointVelocity(ra))
	velAlongNormal := rv.Dot(m.normal)
	if velAlongNormal > 0 {
		return
	}

	e := m.restitution
	if -velAlongNormal < restingSpeed {
		e = 0
	}
	j := -(1 + e) * velAlongNormal / invMassSum
	impulse := m.normal.Scale(j)
	a.applyImpulse(impulse.Scale(-1), ra)
	b.applyImpulse(impulse, rb)

	rv = b.pointVelocity(rb).Sub(a.pointVelocity(ra))
	tangent := rv.Sub(m.normal.Scale(rv.Dot(m.normal)))
	if tangent.LenSq() < 1e-10 {
		return
	}
	tangent = tangent.Norm()

	raT, rbT := ra.Cross(tangent), rb.Cross(tangent)
	denom := invMassSum + raT*raT*a.invInertia + rbT*rbT*b.invInertia
	jt := -rv.Dot(tangent) / denom

	limit := j * m.friction
	jt = math.Max(-limit, math.Min(limit, jt))

	friction := tangent.Scale(jt)
	a.applyImpulse(friction.Scale(-1), ra)
	b.applyImpulse(friction, rb)
}

// correct pushes overlapping bodies apart to fight sinking.
func correct(m manifold, percent, slop float64) {
	a, b := m.a, m.b
	invMassSum := a.invMass + b.invMass
	if invMassSum == 0 || m.penetration <= slop {
		return
	}

	amount := (m.penetration - slop) / invMassSum * percent
	shift := m.normal.Scale(amount)
	if !a.static {
		a.pos = a.pos.Sub(shift.Scale(a.invMass))
	}
	if !b.static {
		b.pos = b.pos.Add(shift.Scale(b.invMass))
	}
}
