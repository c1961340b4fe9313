package physics

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/vovakirdan/fruitdrop/internal/core"
)

// tickMs is the step length the per-tick constants are expressed in.
const tickMs = 1000.0 / 60.0

// Settings tune the simulation. Velocities and gravity are in playfield
// units per tick.
type Settings struct {
	Gravity         float64
	Iterations      int
	WallRestitution float64
	WallFriction    float64
	CorrectPercent  float64
	CorrectSlop     float64
	RestingSpeed    float64
	TouchTolerance  float64
}

// DefaultSettings returns the tuning used by the game.
func DefaultSettings() Settings {
	return Settings{
		Gravity:         0.5,
		Iterations:      8,
		WallRestitution: 0.1,
		WallFriction:    0.3,
		CorrectPercent:  0.4,
		CorrectSlop:     0.005,
		RestingSpeed:    1,
		TouchTolerance:  0.5,
	}
}

// Container is the open-top box the bodies live in.
type Container struct {
	Width  float64
	Height float64
	Wall   float64
}

type pairKey struct {
	a, b core.BodyID
}

func keyOf(a, b core.BodyID) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a: a, b: b}
}

// World owns every body. It is not safe for concurrent use.
type World struct {
	settings Settings
	box      Container

	bodies map[core.BodyID]*body
	order  []*body
	nextID core.BodyID

	touching map[pairKey]struct{}
	onStart  func(a, b core.BodyID)

	// broadphase grid bounds in world coordinates
	origin core.Vec2
	extent core.Vec2
}

// wallDepth is how far each wall extends outward past its visible face, so a
// fast body cannot tunnel through in one step.
const wallDepth = 200

const (
	cellSize    = 32
	broadMargin = 4
)

// NewWorld creates a world with the container's left, right and floor walls
// already in place. Side walls extend one container height above the top so
// nothing escapes sideways while falling in.
func NewWorld(settings Settings, box Container) *World {
	if settings.Iterations <= 0 {
		settings.Iterations = 1
	}
	w := &World{
		settings: settings,
		box:      box,
		bodies:   make(map[core.BodyID]*body),
		touching: make(map[pairKey]struct{}),
		nextID:   1,
		origin:   core.V(-wallDepth-cellSize, -box.Height-cellSize),
	}
	w.extent = core.V(box.Width+wallDepth+cellSize, box.Height+wallDepth+cellSize).Sub(w.origin)

	walls := []AABB{
		{Min: core.V(-wallDepth, -box.Height), Max: core.V(box.Wall, box.Height+wallDepth)},
		{Min: core.V(box.Width-box.Wall, -box.Height), Max: core.V(box.Width+wallDepth, box.Height+wallDepth)},
		{Min: core.V(-wallDepth, box.Height-box.Wall), Max: core.V(box.Width+wallDepth, box.Height+wallDepth)},
	}
	for _, wall := range walls {
		w.add(newWall(w.allocID(), wall, settings.WallRestitution, settings.WallFriction))
	}
	return w
}

func (w *World) allocID() core.BodyID {
	id := w.nextID
	w.nextID++
	return id
}

func (w *World) add(b *body) {
	w.bodies[b.id] = b
	w.order = append(w.order, b)
}

// Container returns the container dimensions.
func (w *World) Container() Container {
	return w.box
}

// CreateBody adds a dynamic circle.
func (w *World) CreateBody(x, y, radius float64, props core.BodyProps) core.BodyID {
	b := newCircle(w.allocID(), core.V(x, y), radius, w.settings.TouchTolerance, props)
	w.add(b)
	return b.id
}

// RemoveBody deletes a body. Unknown and static ids are ignored.
func (w *World) RemoveBody(id core.BodyID) {
	b, ok := w.bodies[id]
	if !ok || b.static {
		return
	}
	delete(w.bodies, id)
	for i, o := range w.order {
		if o == b {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	for k := range w.touching {
		if k.a == id || k.b == id {
			delete(w.touching, k)
		}
	}
}

// SetVelocity overrides a body's linear velocity.
func (w *World) SetVelocity(id core.BodyID, vx, vy float64) {
	if b, ok := w.bodies[id]; ok && !b.static {
		b.vel = core.V(vx, vy)
	}
}

// Body returns the state of one body.
func (w *World) Body(id core.BodyID) (core.BodyState, bool) {
	b, ok := w.bodies[id]
	if !ok {
		return core.BodyState{}, false
	}
	return b.state(), true
}

// Bodies returns every body, walls included, in creation order.
func (w *World) Bodies() []core.BodyState {
	out := make([]core.BodyState, len(w.order))
	for i, b := range w.order {
		out[i] = b.state()
	}
	return out
}

// Len returns the number of dynamic bodies.
func (w *World) Len() int {
	n := 0
	for _, b := range w.order {
		if !b.static {
			n++
		}
	}
	return n
}

func (w *World) OnCollisionStart(fn func(a, b core.BodyID)) {
	w.onStart = fn
}

// Clear removes every dynamic body and forgets all contacts.
func (w *World) Clear() {
	kept := w.order[:0]
	for _, b := range w.order {
		if b.static {
			kept = append(kept, b)
		} else {
			delete(w.bodies, b.id)
		}
	}
	w.order = kept
	w.touching = make(map[pairKey]struct{})
}

// Step advances the simulation by dtMs and then reports pairs that started
// touching during this step, in ascending id order.
func (w *World) Step(dtMs float64) {
	k := dtMs / tickMs
	for _, b := range w.order {
		b.integrate(w.settings.Gravity, k)
	}

	pairs := w.candidates()
	for i := 0; i < w.settings.Iterations; i++ {
		for _, m := range w.contacts(pairs) {
			if m.penetration <= 0 {
				continue
			}
			resolve(m, w.settings.RestingSpeed)
			correct(m, w.settings.CorrectPercent, w.settings.CorrectSlop)
		}
	}

	w.diffContacts(pairs)
}

// candidates loads every body's bounds into a resolv grid and returns the
// pairs sharing a cell, as indexes into w.order sorted ascending. Walls are
// never paired with each other.
func (w *World) candidates() [][2]int {
	space := resolv.NewSpace(
		int(math.Ceil(w.extent.X)), int(math.Ceil(w.extent.Y)),
		cellSize, cellSize,
	)

	objs := make([]*resolv.Object, len(w.order))
	for i, b := range w.order {
		box := b.aabb().Expand(w.settings.TouchTolerance + broadMargin)
		size := box.Max.Sub(box.Min)
		obj := resolv.NewObject(box.Min.X-w.origin.X, box.Min.Y-w.origin.Y, size.X, size.Y)
		obj.Data = i
		objs[i] = obj
	}
	space.Add(objs...)

	seen := make(map[[2]int]struct{})
	var pairs [][2]int
	for i, b := range w.order {
		if b.static {
			continue
		}
		hit := objs[i].Check(0, 0)
		if hit == nil {
			continue
		}
		for _, o := range hit.Objects {
			j, ok := o.Data.(int)
			if !ok || j == i {
				continue
			}
			p := [2]int{min(i, j), max(i, j)}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			pairs = append(pairs, p)
		}
	}

	sort.Slice(pairs, func(a, b int) bool {
		if pairs[a][0] != pairs[b][0] {
			return pairs[a][0] < pairs[b][0]
		}
		return pairs[a][1] < pairs[b][1]
	})
	return pairs
}

// contacts runs the resolv narrowphase over the candidate pairs and returns
// every manifold within touch tolerance.
func (w *World) contacts(pairs [][2]int) []manifold {
	for _, b := range w.order {
		b.sync()
	}

	tol := w.settings.TouchTolerance
	var out []manifold
	for _, p := range pairs {
		if m, ok := detect(w.order[p[0]], w.order[p[1]], tol); ok {
			out = append(out, m)
		}
	}
	return out
}

func (w *World) diffContacts(pairs [][2]int) {
	now := make(map[pairKey]struct{})
	var started []pairKey
	for _, m := range w.contacts(pairs) {
		k := keyOf(m.a.id, m.b.id)
		now[k] = struct{}{}
		if _, seen := w.touching[k]; !seen {
			started = append(started, k)
		}
	}
	w.touching = now

	if w.onStart == nil {
		return
	}
	sort.Slice(started, func(i, j int) bool {
		if started[i].a != started[j].a {
			return started[i].a < started[j].a
		}
		return started[i].b < started[j].b
	})
	for _, k := range started {
		w.onStart(k.a, k.b)
	}
}
