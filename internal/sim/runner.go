package sim

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/planetfield/internal/field"
)

// Runner drives a field.State frame by frame.
type Runner struct {
	state     *field.State
	clock     Clock
	surface   field.Surface
	logger    *log.Logger
	metrics   []Metric
	observers []Observer
}

// New returns a runner over st. A nil logger uses log.Default().
func New(st *field.State, clock Clock, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		state:     st,
		clock:     clock,
		logger:    logger,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

// SetSurface makes every frame render onto s after advancing.
func (r *Runner) SetSurface(s field.Surface) { r.surface = s }

func (r *Runner) State() *field.State { return r.state }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	result := &Result{
		WrapsPerFrame: make([]float64, 0, cfg.Frames),
		Metrics:       make(map[string]float64),
	}
	err := r.RunWithCallback(ctx, cfg, func(st *field.State, frame int, t float64, wraps int) bool {
		result.Frames = frame + 1
		result.SimTime = t
		result.WrapsPerFrame = append(result.WrapsPerFrame, float64(wraps))
		return true
	})
	if err != nil {
		return result, err
	}
	result.Wraps = r.state.Wraps()
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, nil
}

// RunWithCallback advances one frame at a time and calls fn after each
// frame with the frame index, seconds since the run started and the number
// of edge corrections in that frame. Returning false stops the run.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, fn func(st *field.State, frame int, t float64, wraps int) bool) error {
	if err := validateConfig(cfg); err != nil {
		return err
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	var ticker *time.Ticker
	if cfg.Realtime {
		ticker = time.NewTicker(cfg.FrameDuration())
		defer ticker.Stop()
	}

	start := r.state.LastUpdate()
	r.logger.Info("run started", "bodies", r.state.Len(), "frames", cfg.Frames, "fps", cfg.FPS, "realtime", cfg.Realtime)

	for i := 0; i < cfg.Frames; i++ {
		if ticker != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
			}
		} else {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
		}

		before := r.state.Wraps()
		now := r.clock.Now()
		if r.surface != nil {
			r.state.Render(now, r.surface)
		} else {
			r.state.Advance(now)
		}
		t := r.state.LastUpdate().Sub(start).Seconds()

		for _, m := range r.metrics {
			m.Observe(r.state, t)
		}
		for _, obs := range r.observers {
			obs.OnFrame(r.state, i, t)
		}

		if !fn(r.state, i, t, r.state.Wraps()-before) {
			r.logger.Debug("run stopped by callback", "frame", i)
			return nil
		}
	}

	r.logger.Info("run finished", "frames", cfg.Frames, "wraps", r.state.Wraps())
	return nil
}

func validateConfig(cfg Config) error {
	if cfg.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", cfg.FPS)
	}
	if cfg.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", cfg.Frames)
	}
	return nil
}
