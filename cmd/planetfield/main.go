package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/planetfield/internal/automation"
	"github.com/san-kum/planetfield/internal/config"
	"github.com/san-kum/planetfield/internal/export"
	"github.com/san-kum/planetfield/internal/field"
	"github.com/san-kum/planetfield/internal/gui"
	"github.com/san-kum/planetfield/internal/metrics"
	"github.com/san-kum/planetfield/internal/sim"
	"github.com/san-kum/planetfield/internal/store"
	"github.com/san-kum/planetfield/internal/viz"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
)

var (
	configFile string
	preset     string
	seed       int64
	logLevel   string
	bodies     int
	fps        int
	frames     int
	theme      string
	realtime   bool
	outFile    string
	advance    int
	svgScale   float64
	windowSize int
	trials     int
	workers    int
	reportFile string
	sweepSpecs []string
	sweepBy    string
	maximize   bool
)

// main runs the live view when no subcommand is given. It exits with status
// 1 if the command fails.
func main() {
	defer reportPanic()

	if err := newRootCmd().Execute(); err != nil {
		log.Error("command failed", "err", err)
		os.Exit(1)
	}
}

// newRootCmd registers every command and its flags.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "planetfield",
		Short:         "drifting planets on a wrapping plane",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup(logLevel)
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.IntVar(&bodies, "bodies", field.DefaultBodies, "number of bodies")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and report metrics",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per simulated second")
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	runCmd.Flags().BoolVar(&realtime, "realtime", false, "pace frames on the wall clock")
	runCmd.Flags().StringVar(&reportFile, "report", "", "write a run report (.json or .csv, - for stdout)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the field in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "animate the field in a window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	windowCmd.Flags().IntVar(&windowSize, "size", 800, "window size in pixels")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "write one frame as SVG",
		Args:  cobra.NoArgs,
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&outFile, "out", "field.svg", "output file (- for stdout)")
	snapshotCmd.Flags().IntVar(&advance, "frames", 0, "frames to advance before drawing")
	snapshotCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per simulated second")
	snapshotCmd.Flags().Float64Var(&svgScale, "scale", 0.2, "pixels per world unit")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "plot radius distribution and wrap activity",
		Args:  cobra.NoArgs,
		RunE:  runStats,
	}
	statsCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per simulated second")
	statsCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tWORLD\tBODIES\tRADIUS SAMPLE\tVELOCITY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.0fx%.0f\t%d\t[%g, %g]\t[%g, %g]\n",
					name, p.World.Width, p.World.Height, p.Bodies,
					p.RadiusSample.Min, p.RadiusSample.Max, p.Velocity.Min, p.Velocity.Max)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return cfg.Encode(os.Stdout)
		},
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a yaml scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "repeat a headless run over many seeds",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "trials run concurrently")
	monteCarloCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per simulated second")
	monteCarloCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per trial")

	sweepCmd := &cobra.Command{
		Use:     "sweep",
		Short:   "run a parameter grid headless",
		Example: "  planetfield sweep --param bodies=100,300,600 --param velocity=50,150 --metric wrap_rate",
		Args:    cobra.NoArgs,
		RunE:    runSweep,
	}
	sweepCmd.Flags().StringArrayVar(&sweepSpecs, "param", nil, fmt.Sprintf("name=v1,v2,... (one of %v)", automation.SweepParams()))
	sweepCmd.Flags().StringVar(&sweepBy, "metric", "wrap_rate", "metric used to pick the best point")
	sweepCmd.Flags().BoolVar(&maximize, "max", false, "pick the highest metric instead of the lowest")
	sweepCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per simulated second")
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "frames per point")

	rootCmd.AddCommand(runCmd, liveCmd, windowCmd, snapshotCmd, statsCmd, presetsCmd, configCmd, scenarioCmd, monteCarloCmd, sweepCmd)
	return rootCmd
}

// setup installs the process-wide logger.
func setup(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetDefault(log.NewWithOptions(os.Stderr, log.Options{
		Level:           lvl,
		Prefix:          "planetfield",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	}))
	return nil
}

// reportPanic logs a panic with its stack before exiting, so crashes inside
// the TUI or window loop leave a readable trace on stderr.
func reportPanic() {
	if r := recover(); r != nil {
		log.Error("panic", "value", r, "stack", string(debug.Stack()))
		os.Exit(2)
	}
}

// loadConfig resolves defaults, then preset, then config file, then flags
// that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("bodies") {
		cfg.Bodies = bodies
	}
	if flags.Changed("theme") {
		cfg.Run.Theme = theme
	}
	// read through the flag set: several commands share these flag names
	// with different variables and defaults
	if flags.Lookup("fps") != nil && flags.Changed("fps") {
		cfg.Run.FPS, _ = flags.GetInt("fps")
	}
	if flags.Lookup("frames") != nil && flags.Changed("frames") {
		cfg.Run.Frames, _ = flags.GetInt("frames")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func newGenerator(cfg *config.Config) (*field.Generator, error) {
	s := uint64(cfg.Seed)
	if s == 0 {
		s = uint64(time.Now().UnixNano())
	}
	log.Debug("generator", "seed", s, "bodies", cfg.Bodies)
	return field.NewGenerator(cfg.Params(), rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

func headless(ctx context.Context, cfg *config.Config, rt bool) (*sim.Runner, *sim.Result, error) {
	gen, err := newGenerator(cfg)
	if err != nil {
		return nil, nil, err
	}
	var st *field.State
	var clock sim.Clock
	if rt {
		clock = sim.SystemClock{}
		st = gen.Generate(clock.Now())
	} else {
		start := time.Now()
		st = gen.Generate(start)
		clock = sim.NewFrameClock(start, time.Second/time.Duration(cfg.Run.FPS))
	}

	runner := sim.New(st, clock, log.Default())
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}
	result, err := runner.Run(ctx, sim.Config{FPS: cfg.Run.FPS, Frames: cfg.Run.Frames, Realtime: rt})
	return runner, result, err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	_, result, err := headless(ctx, cfg, realtime)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("frames: %d\n", result.Frames)
	fmt.Printf("simulated: %.3fs\n", result.SimTime)
	fmt.Printf("wraps: %d\n", result.Wraps)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)

	if reportFile != "" {
		if err := store.NewReport(preset, cfg, result).Export(reportFile); err != nil {
			return err
		}
		log.Info("report written", "path", reportFile)
	}
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, m[name])
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	title := "planetfield"
	if preset != "" {
		title += " · " + preset
	}
	return viz.Run(gen, cfg.Run.Theme, title)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if windowSize <= 0 {
		return fmt.Errorf("size must be positive, got %d", windowSize)
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}
	return gui.Run(gen, windowSize, "planetfield")
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if svgScale <= 0 {
		return fmt.Errorf("scale must be positive, got %g", svgScale)
	}
	gen, err := newGenerator(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	st := gen.Generate(start)
	clock := sim.NewFrameClock(start, time.Second/time.Duration(cfg.Run.FPS))
	for i := 0; i < advance; i++ {
		st.Advance(clock.Now())
	}

	svg := export.NewSVG(st.World(), svgScale)
	st.Draw(svg)

	if outFile == "-" {
		_, err := svg.WriteTo(os.Stdout)
		return err
	}
	if err := svg.WriteFile(outFile); err != nil {
		return err
	}
	log.Info("snapshot written", "path", outFile, "bodies", svg.Len(), "frames", advance)
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	runner, result, err := headless(ctx, cfg, false)
	if err != nil {
		return err
	}
	st := runner.State()
	if st.Len() == 0 {
		return fmt.Errorf("no bodies to analyze")
	}

	radii := make([]float64, st.Len())
	for i := range radii {
		radii[i] = st.Body(i).Radius
	}
	hist := metrics.Histogram(radii, 60)

	fmt.Println(asciigraph.Plot(hist,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("radius distribution (%d bodies, %.2f..%.2f)", len(radii), floats.Min(radii), floats.Max(radii))),
	))
	fmt.Println()

	if len(result.WrapsPerFrame) > 1 {
		fmt.Println(asciigraph.Plot(result.WrapsPerFrame,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("wraps per frame"),
		))
		fmt.Println()
	}

	printMetrics(result.Metrics)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info("scenario", "name", sc.Name, "steps", len(sc.Steps))
	results, err := automation.RunScenario(ctx, sc, log.Default())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tBODIES\tFRAMES\tWRAPS\tCONTAINMENT\tMEAN SPEED")
	for i, r := range results {
		name := r.Step.Preset
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%.3f\t%.3f\n",
			i+1, name, r.Config.Bodies, r.Result.Frames, r.Result.Wraps,
			r.Result.Metrics["containment"], r.Result.Metrics["mean_speed"])
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:      cfg,
		NumTrials: trials,
		Seed:      cfg.Seed,
		Workers:   workers,
	}, log.Default())
	if err != nil {
		return err
	}

	wraps := make([]float64, len(results))
	for i, r := range results {
		wraps[i] = float64(r.Wraps)
	}
	if len(wraps) > 1 {
		fmt.Println(asciigraph.Plot(wraps,
			asciigraph.Height(8),
			asciigraph.Width(60),
			asciigraph.Caption("wraps per trial"),
		))
		fmt.Println()
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d  stable: %d  unstable: %d\n", len(results), stable, unstable)
	fmt.Printf("wraps: min %.0f  max %.0f\n", floats.Min(wraps), floats.Max(wraps))
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sweep, err := automation.ParseSweep(sweepSpecs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	points, err := automation.RunSweep(ctx, cfg, sweep, log.Default())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tWRAPS\t%s\n", strings.ToUpper(strings.Join(sweep.Params, "\t")), strings.ToUpper(sweepBy))
	for _, p := range points {
		for _, name := range sweep.Params {
			fmt.Fprintf(w, "%g\t", p.Params[name])
		}
		fmt.Fprintf(w, "%d\t%.6f\n", p.Wraps, p.Metrics[sweepBy])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := automation.Best(points, sweepBy, maximize); ok {
		fmt.Printf("\nbest %s: %.6f at %v\n", sweepBy, best.Metrics[sweepBy], best.Params)
	}
	return nil
}
