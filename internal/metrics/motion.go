package metrics

import (
	"github.com/san-kum/planetfield/internal/field"
	"github.com/san-kum/planetfield/internal/sim"
)

type MeanSpeed struct {
	name    string
	sum     float64
	samples int
}

func NewMeanSpeed() *MeanSpeed {
	return &MeanSpeed{name: "mean_speed"}
}

func (m *MeanSpeed) Name() string {
	return m.name
}

func (m *MeanSpeed) Observe(st *field.State, t float64) {
	if st.Len() == 0 {
		return
	}
	total := 0.0
	for i := 0; i < st.Len(); i++ {
		total += st.Body(i).Velocity.Len()
	}
	m.sum += total / float64(st.Len())
	m.samples++
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.sum = 0
	m.samples = 0
}

// WrapRate is edge corrections per simulated second, measured from the
// first observed frame.
type WrapRate struct {
	name   string
	first  int
	last   int
	t0, t1 float64
	seen   bool
}

func NewWrapRate() *WrapRate {
	return &WrapRate{name: "wrap_rate"}
}

func (w *WrapRate) Name() string { return w.name }

func (w *WrapRate) Observe(st *field.State, t float64) {
	if !w.seen {
		w.first, w.t0 = st.Wraps(), t
		w.seen = true
	}
	w.last, w.t1 = st.Wraps(), t
}

func (w *WrapRate) Value() float64 {
	span := w.t1 - w.t0
	if span <= 0 {
		return 0
	}
	return float64(w.last-w.first) / span
}

func (w *WrapRate) Reset() {
	*w = WrapRate{name: w.name}
}

// Defaults returns the metrics reported by headless runs.
func Defaults() []sim.Metric {
	return []sim.Metric{NewEnergy(), NewEnergyDrift(), NewMeanSpeed(), NewContainment(), NewWrapRate()}
}
