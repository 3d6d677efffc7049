package automation

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/field"
	"github.com/san-kum/planetfield/internal/metrics"
	"github.com/san-kum/planetfield/internal/sim"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of headless runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario. Zero values keep the preset's
// (or the default config's) setting.
type ScenarioStep struct {
	Preset string `yaml:"preset"`
	Seed   int64  `yaml:"seed"`
	Bodies int    `yaml:"bodies"`
	FPS    int    `yaml:"fps"`
	Frames int    `yaml:"frames"`
}

// StepResult pairs a step with the outcome of its run.
type StepResult struct {
	Step   ScenarioStep
	Config *config.Config
	Result *sim.Result
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// Resolve builds the effective config for the step.
func (s ScenarioStep) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	if s.Bodies != 0 {
		cfg.Bodies = s.Bodies
	}
	if s.FPS != 0 {
		cfg.Run.FPS = s.FPS
	}
	if s.Frames != 0 {
		cfg.Run.Frames = s.Frames
	}
	return cfg, cfg.Validate()
}

// RunScenario executes all steps in a scenario
func RunScenario(ctx context.Context, scenario *Scenario, logger *log.Logger) ([]StepResult, error) {
	if logger == nil {
		logger = log.Default()
	}
	results := make([]StepResult, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		logger.Info("scenario step", "step", i+1, "of", len(scenario.Steps), "preset", step.Preset)

		cfg, err := step.Resolve()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := Headless(ctx, cfg, logger)
		if err != nil {
			return results, fmt.Errorf("step %d run: %w", i+1, err)
		}

		results = append(results, StepResult{Step: step, Config: cfg, Result: result})
	}

	return results, nil
}

// Headless generates a field from cfg and runs it on a virtual frame clock
// with the default metrics attached.
func Headless(ctx context.Context, cfg *config.Config, logger *log.Logger) (*sim.Result, error) {
	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	gen, err := field.NewGenerator(cfg.Params(), rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	if err != nil {
		return nil, err
	}

	start := time.Unix(0, 0)
	runner := sim.New(gen.Generate(start), sim.NewFrameClock(start, time.Second/time.Duration(cfg.Run.FPS)), logger)
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	return runner.Run(ctx, sim.Config{FPS: cfg.Run.FPS, Frames: cfg.Run.Frames})
}

// MonteCarloConfig defines repeated runs of one config with different seeds
type MonteCarloConfig struct {
	Base      *config.Config
	NumTrials int
	Seed      int64
	// Workers bounds how many trials run at once. Values below 1 run one.
	Workers int
}

// MonteCarloResult holds the outcome of one trial
type MonteCarloResult struct {
	TrialID int
	Seed    int64
	Wraps   int
	// Stable reports that every frame kept every body within one radius of
	// the world and kinetic energy never changed.
	Stable bool
}

// RunMonteCarlo executes trials whose seeds are drawn from cfg.Seed. Each
// trial owns its own state, so trials run concurrently up to cfg.Workers.
// Results are returned in trial order.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, logger *log.Logger) ([]MonteCarloResult, error) {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.NumTrials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.NumTrials)
	}
	workers := max(cfg.Workers, 1)

	master := uint64(cfg.Seed)
	if master == 0 {
		master = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(master, master>>1))
	seeds := make([]int64, cfg.NumTrials)
	for i := range seeds {
		seeds[i] = rng.Int64N(1<<62) + 1
	}

	results := make([]MonteCarloResult, cfg.NumTrials)
	errs := make([]error, cfg.NumTrials)
	sem := make(chan struct{}, workers)
	var done atomic.Int64

	var wg sync.WaitGroup
	for trial := 0; trial < cfg.NumTrials; trial++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(idx int) {
			defer wg.Done()
			defer func() { <-sem }()

			trialCfg := cfg.Base.Clone()
			trialCfg.Seed = seeds[idx]

			result, err := Headless(ctx, trialCfg, logger)
			if err != nil {
				errs[idx] = err
				return
			}

			results[idx] = MonteCarloResult{
				TrialID: idx,
				Seed:    trialCfg.Seed,
				Wraps:   result.Wraps,
				Stable:  result.Metrics["containment"] == 1 && result.Metrics["energy_drift"] == 0,
			}

			if n := done.Add(1); n%10 == 0 {
				logger.Info("monte carlo", "done", n, "of", cfg.NumTrials)
			}
		}(trial)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("trial %d: %w", i, err)
		}
	}

	return results, nil
}

// MonteCarloStats computes summary statistics from Monte Carlo results
func MonteCarloStats(results []MonteCarloResult) (stableCount int, unstableCount int) {
	for _, r := range results {
		if r.Stable {
			stableCount++
		} else {
			unstableCount++
		}
	}
	return
}
