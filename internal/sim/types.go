package sim

import (
	"time"

	"github.com/san-kum/planetfield/internal/field"
)

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(st *field.State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(st *field.State, frame int, t float64)
}

type Config struct {
	FPS    int
	Frames int
	// Realtime paces frames with a ticker instead of running flat out.
	Realtime bool
}

func (c Config) FrameDuration() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

type Result struct {
	Frames        int
	SimTime       float64
	Wraps         int
	WrapsPerFrame []float64
	Metrics       map[string]float64
}
