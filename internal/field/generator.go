package field

import (
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"
)

// Generator builds randomized populations from validated Params.
type Generator struct {
	params Params

	posX   distuv.Uniform
	posY   distuv.Uniform
	vel    distuv.Uniform
	radius distuv.Uniform
}

// NewGenerator validates p and binds every distribution to src. A nil src
// draws from the math/rand/v2 global generator.
func NewGenerator(p Params, src rand.Source) (*Generator, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	uniform := func(r Range) distuv.Uniform {
		return distuv.Uniform{Min: r.Min, Max: r.Max, Src: src}
	}
	return &Generator{
		params: p,
		posX:   uniform(p.PositionX),
		posY:   uniform(p.PositionY),
		vel:    uniform(p.Velocity),
		radius: uniform(p.RadiusSample),
	}, nil
}

func (g *Generator) Params() Params { return g.params }

// Body draws one body. Draw order is radius, vx, vy, x, y.
func (g *Generator) Body() Body {
	radius := radiusScale / g.radius.Rand()
	velocity := V(g.vel.Rand(), g.vel.Rand()).Div(radius * 0.5)
	position := V(g.posX.Rand(), g.posY.Rand())
	return Body{
		Position: position,
		Velocity: velocity,
		Radius:   radius,
	}
}

// Generate returns a state holding Count fresh bodies whose clock starts at
// now, so the first Advance sees only the time since construction.
func (g *Generator) Generate(now time.Time) *State {
	bodies := make([]Body, g.params.Count)
	for i := range bodies {
		bodies[i] = g.Body()
	}
	return NewState(g.params.World, bodies, now)
}

// InitState builds the default 600-body field on a 4000x4000 world, seeded
// from the wall clock.
func InitState() *State {
	seed := uint64(time.Now().UnixNano())
	g, err := NewGenerator(DefaultParams(), rand.NewPCG(seed, seed>>1|1))
	if err != nil {
		panic(err)
	}
	return g.Generate(time.Now())
}
