package sim

import (
	"context"
	"io"
	"math"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/planetfield/internal/field"
)

var quiet = log.New(io.Discard)

func newState() *field.State {
	bodies := []field.Body{
		{Position: field.V(10, 10), Velocity: field.V(60, 0), Radius: 1},
		{Position: field.V(50, 50), Velocity: field.V(0, -30), Radius: 2},
	}
	return field.NewState(field.World{Width: 100, Height: 100}, bodies, time.Unix(0, 0))
}

func TestRunnerRun(t *testing.T) {
	st := newState()
	clock := NewFrameClock(st.LastUpdate(), time.Second/60)
	r := New(st, clock, quiet)

	result, err := r.Run(context.Background(), Config{FPS: 60, Frames: 60})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Frames != 60 {
		t.Errorf("expected 60 frames, got %d", result.Frames)
	}
	if len(result.WrapsPerFrame) != 60 {
		t.Errorf("expected 60 wrap samples, got %d", len(result.WrapsPerFrame))
	}
	if math.Abs(result.SimTime-1.0) > 1e-6 {
		t.Errorf("expected 1s simulated, got %f", result.SimTime)
	}

	// 10 + 60*1s = 70, no wrap
	if got := st.Body(0).Position.X; math.Abs(got-70) > 1e-4 {
		t.Errorf("expected x 70, got %f", got)
	}
}

func TestRunnerInvalidConfig(t *testing.T) {
	r := New(newState(), SystemClock{}, quiet)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero fps", Config{FPS: 0, Frames: 1}},
		{"negative fps", Config{FPS: -1, Frames: 1}},
		{"negative frames", Config{FPS: 60, Frames: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Run(context.Background(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st := newState()
	r := New(st, NewFrameClock(st.LastUpdate(), time.Millisecond), quiet)
	result, err := r.Run(ctx, Config{FPS: 60, Frames: 10})
	if err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if result.Frames != 0 {
		t.Errorf("expected no frames, got %d", result.Frames)
	}
}

func TestRunnerCallbackStops(t *testing.T) {
	st := newState()
	r := New(st, NewFrameClock(st.LastUpdate(), time.Second/60), quiet)

	calls := 0
	err := r.RunWithCallback(context.Background(), Config{FPS: 60, Frames: 100}, func(*field.State, int, float64, int) bool {
		calls++
		return calls < 5
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if calls != 5 {
		t.Errorf("expected 5 calls, got %d", calls)
	}
}

func TestRunnerCountsWraps(t *testing.T) {
	st := newState()
	// one 1.6s frame carries body 0 from x=10 to 106, past 100+radius
	r := New(st, NewFrameClock(st.LastUpdate(), 1600*time.Millisecond), quiet)

	result, err := r.Run(context.Background(), Config{FPS: 60, Frames: 1})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Wraps != 1 || result.WrapsPerFrame[0] != 1 {
		t.Errorf("expected one wrap, got total %d frame %v", result.Wraps, result.WrapsPerFrame)
	}
}

type countMetric struct{ n int }

func (c *countMetric) Name() string                  { return "count" }
func (c *countMetric) Observe(*field.State, float64) { c.n++ }
func (c *countMetric) Value() float64                { return float64(c.n) }
func (c *countMetric) Reset()                        { c.n = 0 }

type recordSurface struct{ draws int }

func (s *recordSurface) FillCircle(field.Vec2, float64) { s.draws++ }

func TestRunnerMetricsAndSurface(t *testing.T) {
	st := newState()
	r := New(st, NewFrameClock(st.LastUpdate(), time.Second/30), quiet)

	m := &countMetric{n: 99}
	r.AddMetric(m)
	surf := &recordSurface{}
	r.SetSurface(surf)

	result, err := r.Run(context.Background(), Config{FPS: 30, Frames: 10})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if result.Metrics["count"] != 10 {
		t.Errorf("expected metric reset then 10 observations, got %f", result.Metrics["count"])
	}
	if surf.draws != 20 {
		t.Errorf("expected 20 draws, got %d", surf.draws)
	}
}

func TestFrameClock(t *testing.T) {
	start := time.Unix(5, 0)
	c := NewFrameClock(start, time.Second)

	if got := c.Now(); !got.Equal(start.Add(time.Second)) {
		t.Errorf("expected %v, got %v", start.Add(time.Second), got)
	}
	if got := c.Peek(); !got.Equal(start.Add(time.Second)) {
		t.Errorf("peek should not step, got %v", got)
	}
}
