package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/san-kum/isingsim/internal/config"
)

var (
	dataDir string
	verbose bool

	configFile string
	preset     string

	length      int
	seed        int64
	engineName  string
	backendName string
	temperature float64
	field       float64
	sampleSize  int
	sampleStep  int
	thermalize  int
	workers     int
	padding     string

	tMin   float64
	tMax   float64
	points int

	plotCurve   bool
	observable  string
	metricsAddr string
	outPath     string
	svgPath     string
	noSave      bool
	benchSweeps int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "isingsim",
		Short:         "2D Ising model Metropolis simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".isingsim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "thermalize and sample one (temperature, field) point",
		Args:  cobra.NoArgs,
		RunE:  runSample,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Float64Var(&temperature, "temperature", config.DefaultTemperature, "temperature")
	runCmd.Flags().Float64Var(&field, "field", 0, "external field h")
	runCmd.Flags().StringVar(&padding, "padding", "zero", "snapshot padding (zero|wrap)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the run")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sample an ensemble over a temperature grid",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&field, "field", 0, "external field h")
	sweepCmd.Flags().Float64Var(&tMin, "t-min", config.DefaultTMin, "lowest temperature")
	sweepCmd.Flags().Float64Var(&tMax, "t-max", config.DefaultTMax, "highest temperature")
	sweepCmd.Flags().IntVar(&points, "points", config.DefaultPoints, "grid points")
	sweepCmd.Flags().BoolVar(&plotCurve, "plot", false, "plot the observable against temperature")
	sweepCmd.Flags().StringVar(&observable, "observable", "specific-heat", "observable for --plot")
	sweepCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address during the sweep")
	sweepCmd.Flags().BoolVar(&noSave, "no-save", false, "do not persist the sweep")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show records and derived thermodynamics of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot an observable of a sweep against temperature",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&observable, "observable", "specific-heat", "energy, magnetization, abs-magnetization, specific-heat or susceptibility")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the curve as SVG")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "render the stored lattice snapshot of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}
	snapshotCmd.Flags().StringVar(&svgPath, "svg", "", "write the lattice as SVG instead of rendering it")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "compare update engines",
		Args:  cobra.NoArgs,
		RunE:  benchEngines,
	}
	benchCmd.Flags().IntVar(&benchSweeps, "sweeps", 200, "sweeps per measurement")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "checkerboard workers (0 = all cpus)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	backendsCmd := &cobra.Command{
		Use:   "backends",
		Short: "list compute backends for the external engine",
		Args:  cobra.NoArgs,
		RunE:  listBackends,
	}

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, showCmd, plotCmd, snapshotCmd, exportCmd, benchCmd, presetsCmd, backendsCmd)

	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "err", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().IntVarP(&length, "length", "L", config.DefaultLength, "lattice side")
	cmd.Flags().Int64Var(&seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&engineName, "engine", "sequential", "update engine (sequential|checkerboard|external)")
	cmd.Flags().StringVar(&backendName, "backend", "", "compute backend for the external engine")
	cmd.Flags().IntVar(&sampleSize, "samples", config.DefaultSampleSize, "observations per record")
	cmd.Flags().IntVar(&sampleStep, "step", config.DefaultSampleStep, "sweeps between observations")
	cmd.Flags().IntVar(&thermalize, "thermalize", config.DefaultThermalize, "sweeps before sampling")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all cpus)")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order. Each layer only replaces the keys it sets.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		if err := config.LoadInto(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("length") {
		cfg.Length = length
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("engine") {
		cfg.Engine = engineName
	}
	if flags.Changed("backend") {
		cfg.Backend = backendName
	}
	if flags.Changed("temperature") {
		cfg.Temperature = temperature
	}
	if flags.Changed("field") {
		cfg.Field = field
	}
	if flags.Changed("samples") {
		cfg.SampleSize = sampleSize
	}
	if flags.Changed("step") {
		cfg.SampleStep = sampleStep
	}
	if flags.Changed("thermalize") {
		cfg.Thermalize = thermalize
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("padding") {
		cfg.Padding = padding
	}
	if flags.Changed("t-min") {
		cfg.Sweep.TMin = tMin
	}
	if flags.Changed("t-max") {
		cfg.Sweep.TMax = tMax
	}
	if flags.Changed("points") {
		cfg.Sweep.Points = points
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
