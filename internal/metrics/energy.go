package metrics

import (
	"math"

	"github.com/san-kum/planetfield/internal/field"
)

// kinetic sums 0.5*m*|v|^2 with mass taken as radius squared.
func kinetic(st *field.State) float64 {
	total := 0.0
	for i := 0; i < st.Len(); i++ {
		b := st.Body(i)
		m := b.Radius * b.Radius
		v := b.Velocity.Len()
		total += 0.5 * m * v * v
	}
	return total
}

type Energy struct {
	name        string
	samples     int
	totalEnergy float64
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(st *field.State, t float64) {
	e.totalEnergy += kinetic(st)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// EnergyDrift is the largest relative change in kinetic energy seen since
// the first frame. Velocities are constant, so anything above zero means a
// body was modified outside Advance.
type EnergyDrift struct {
	name          string
	initialEnergy float64
	maxDrift      float64
	samples       int
}

func NewEnergyDrift() *EnergyDrift {
	return &EnergyDrift{name: "energy_drift"}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(st *field.State, t float64) {
	energy := kinetic(st)
	if e.samples == 0 {
		e.initialEnergy = energy
	}
	e.samples++

	if e.initialEnergy != 0 {
		drift := math.Abs(energy-e.initialEnergy) / math.Abs(e.initialEnergy)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initialEnergy = 0
	e.maxDrift = 0
	e.samples = 0
}
