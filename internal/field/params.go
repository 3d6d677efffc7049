package field

import (
	"fmt"
	"math"
)

const (
	DefaultWidth   = 4000.0
	DefaultHeight  = 4000.0
	DefaultBodies  = 600
	DefaultMinVel  = -150.0
	DefaultMaxVel  = 150.0
	DefaultMinRawR = 1.0
	DefaultMaxRawR = 200.0

	// radiusScale is divided by the raw radius sample, so small samples
	// give large bodies.
	radiusScale = 400.0
)

// World is the rectangle positions wrap over.
type World struct {
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Range is a sampling interval. Uniform draws fall in [Min, Max), not the
// closed interval: Max is excluded on purpose, and for float64 samples the
// excluded endpoint has zero probability. Contains still accepts Max.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Params configures a Generator.
type Params struct {
	World        World
	Count        int
	PositionX    Range
	PositionY    Range
	Velocity     Range
	RadiusSample Range
}

func DefaultParams() Params {
	return ParamsFor(World{Width: DefaultWidth, Height: DefaultHeight}, DefaultBodies)
}

// ParamsFor returns the default ranges with positions spanning w.
func ParamsFor(w World, count int) Params {
	return Params{
		World:        w,
		Count:        count,
		PositionX:    Range{Min: 0, Max: w.Width},
		PositionY:    Range{Min: 0, Max: w.Height},
		Velocity:     Range{Min: DefaultMinVel, Max: DefaultMaxVel},
		RadiusSample: Range{Min: DefaultMinRawR, Max: DefaultMaxRawR},
	}
}

// Validate checks the params so that every generated radius is finite and
// positive and every body spawns inside the world.
func (p Params) Validate() error {
	if !(p.World.Width > 0) || !(p.World.Height > 0) || math.IsInf(p.World.Width, 0) || math.IsInf(p.World.Height, 0) {
		return fmt.Errorf("%w: %gx%g", ErrWorldBounds, p.World.Width, p.World.Height)
	}
	if p.Count < 0 {
		return fmt.Errorf("%w: %d", ErrPopulation, p.Count)
	}
	for _, r := range []struct {
		name string
		r    Range
	}{
		{"position_x", p.PositionX},
		{"position_y", p.PositionY},
		{"velocity", p.Velocity},
		{"radius", p.RadiusSample},
	} {
		if !(r.r.Max >= r.r.Min) || math.IsInf(r.r.Min, 0) || math.IsInf(r.r.Max, 0) {
			return fmt.Errorf("%w: %s [%g, %g]", ErrRange, r.name, r.r.Min, r.r.Max)
		}
	}
	if p.PositionX.Min < 0 || p.PositionX.Max > p.World.Width {
		return fmt.Errorf("%w: position_x [%g, %g] outside [0, %g]", ErrPositionRange, p.PositionX.Min, p.PositionX.Max, p.World.Width)
	}
	if p.PositionY.Min < 0 || p.PositionY.Max > p.World.Height {
		return fmt.Errorf("%w: position_y [%g, %g] outside [0, %g]", ErrPositionRange, p.PositionY.Min, p.PositionY.Max, p.World.Height)
	}
	if !(p.RadiusSample.Min > 0) {
		return fmt.Errorf("%w: min %g", ErrRadiusRange, p.RadiusSample.Min)
	}
	return nil
}
