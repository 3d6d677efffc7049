package automation

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/san-kum/planetfield/internal/config"
)

// setters maps sweepable parameter names onto config fields.
var setters = map[string]func(*config.Config, float64){
	"bodies":     func(c *config.Config, v float64) { c.Bodies = int(v) },
	"radius_min": func(c *config.Config, v float64) { c.RadiusSample.Min = v },
	"radius_max": func(c *config.Config, v float64) { c.RadiusSample.Max = v },
	"velocity": func(c *config.Config, v float64) {
		c.Velocity.Min = -v
		c.Velocity.Max = v
	},
	"width":  func(c *config.Config, v float64) { c.World.Width = v },
	"height": func(c *config.Config, v float64) { c.World.Height = v },
}

// SweepParams lists the parameter names a sweep accepts.
func SweepParams() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParameterSweep runs the base config over every combination of values.
type ParameterSweep struct {
	Params []string
	Values [][]float64
}

// ParseSweep builds a grid from name=v1,v2,... specs, one per parameter.
func ParseSweep(specs []string) (*ParameterSweep, error) {
	sweep := &ParameterSweep{}
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || list == "" {
			return nil, fmt.Errorf("invalid sweep spec %q, want name=v1,v2", spec)
		}
		var values []float64
		for _, raw := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil {
				return nil, fmt.Errorf("invalid value in %q: %w", spec, err)
			}
			values = append(values, v)
		}
		sweep.Params = append(sweep.Params, strings.TrimSpace(name))
		sweep.Values = append(sweep.Values, values)
	}
	return sweep, nil
}

// SweepPoint is one grid point and the metrics its run produced.
type SweepPoint struct {
	Params  map[string]float64
	Wraps   int
	Metrics map[string]float64
}

// RunSweep walks the grid depth first, so the last parameter varies
// fastest. Points whose config fails validation are skipped with a warning.
func RunSweep(ctx context.Context, base *config.Config, sweep *ParameterSweep, logger *log.Logger) ([]SweepPoint, error) {
	if logger == nil {
		logger = log.Default()
	}
	if len(sweep.Params) == 0 || len(sweep.Params) != len(sweep.Values) {
		return nil, fmt.Errorf("sweep needs one value list per parameter, got %d params and %d lists",
			len(sweep.Params), len(sweep.Values))
	}
	for _, name := range sweep.Params {
		if _, ok := setters[name]; !ok {
			return nil, fmt.Errorf("unknown sweep parameter: %s (available: %v)", name, SweepParams())
		}
	}

	var points []SweepPoint
	var walk func(depth int, current map[string]float64) error
	walk = func(depth int, current map[string]float64) error {
		if depth == len(sweep.Params) {
			cfg := base.Clone()
			for name, v := range current {
				setters[name](cfg, v)
			}
			if err := cfg.Validate(); err != nil {
				logger.Warn("sweep point skipped", "params", current, "err", err)
				return nil
			}

			result, err := Headless(ctx, cfg, logger)
			if err != nil {
				return err
			}

			params := make(map[string]float64, len(current))
			for k, v := range current {
				params[k] = v
			}
			points = append(points, SweepPoint{Params: params, Wraps: result.Wraps, Metrics: result.Metrics})
			return nil
		}

		name := sweep.Params[depth]
		for _, v := range sweep.Values[depth] {
			current[name] = v
			if err := walk(depth+1, current); err != nil {
				return err
			}
		}
		delete(current, name)
		return nil
	}

	if err := walk(0, make(map[string]float64)); err != nil {
		return points, err
	}
	return points, nil
}

// Best returns the point with the lowest value of metric, or the highest
// when maximize is set. ok is false when no point reports the metric.
func Best(points []SweepPoint, metric string, maximize bool) (best SweepPoint, ok bool) {
	bestVal := math.Inf(1)
	if maximize {
		bestVal = math.Inf(-1)
	}
	for _, p := range points {
		val, has := p.Metrics[metric]
		if !has {
			continue
		}
		if (!maximize && val < bestVal) || (maximize && val > bestVal) {
			bestVal = val
			best = p
			ok = true
		}
	}
	return best, ok
}
