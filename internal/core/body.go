package core

// BodyID identifies a body owned by a physics engine.
type BodyID uint64

// BodyProps are the physical properties requested when creating a body.
type BodyProps struct {
	Restitution float64
	Friction    float64
	AirFriction float64
	Density     float64
}

// BodyState is a read-only snapshot of one engine body.
type BodyState struct {
	ID     BodyID
	Pos    Vec2
	Vel    Vec2
	Angle  float64
	Radius float64
	Static bool
}

// Speed returns the magnitude of the body's velocity.
func (b BodyState) Speed() float64 {
	return b.Vel.Len()
}
