package field

import "time"

// Surface receives one FillCircle call per body per frame, in population
// order.
type Surface interface {
	FillCircle(center Vec2, radius float64)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(center Vec2, radius float64)

func (f SurfaceFunc) FillCircle(center Vec2, radius float64) { f(center, radius) }

// State owns a fixed population and the time of its last update.
type State struct {
	world  World
	bodies []Body
	last   time.Time
	wraps  int
}

// NewState takes ownership of bodies.
func NewState(w World, bodies []Body, now time.Time) *State {
	return &State{world: w, bodies: bodies, last: now}
}

func (s *State) World() World          { return s.world }
func (s *State) Len() int              { return len(s.bodies) }
func (s *State) Body(i int) Body       { return s.bodies[i] }
func (s *State) LastUpdate() time.Time { return s.last }

// Wraps is the total number of edge corrections applied so far.
func (s *State) Wraps() int { return s.wraps }

// Bodies returns a copy of the population in order.
func (s *State) Bodies() []Body {
	out := make([]Body, len(s.bodies))
	copy(out, s.bodies)
	return out
}

// Advance moves every body by the time elapsed since the previous call and
// wraps it across the edges. A now earlier than the last update counts as
// zero elapsed time; the stored timestamp is replaced either way.
//
// Each axis is corrected at most once, so a delta long enough to carry a
// body past a whole world extent leaves it outside [-radius, extent+radius].
func (s *State) Advance(now time.Time) {
	delta := now.Sub(s.last).Seconds()
	if delta < 0 {
		delta = 0
	}
	s.last = now
	s.Step(delta)
}

// Touch moves the clock to now without moving any body, so a driver that
// paused can resume without one long step.
func (s *State) Touch(now time.Time) { s.last = now }

// Step integrates a known delta in seconds without touching the clock.
// Negative deltas are ignored.
func (s *State) Step(delta float64) {
	if delta <= 0 {
		return
	}
	for i := range s.bodies {
		b := &s.bodies[i]
		b.Position.AddAssign(b.Velocity.Scale(delta))
		s.wraps += b.wrap(s.world)
	}
}

// Render advances to now and draws every body onto surf.
func (s *State) Render(now time.Time, surf Surface) {
	s.Advance(now)
	s.Draw(surf)
}

// Draw paints the current positions without advancing.
func (s *State) Draw(surf Surface) {
	for _, b := range s.bodies {
		surf.FillCircle(b.Position, b.Radius)
	}
}
