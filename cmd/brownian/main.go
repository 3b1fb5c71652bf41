package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/brownian/internal/config"
	"github.com/san-kum/brownian/internal/experiment"
	"github.com/san-kum/brownian/internal/logging"
	"github.com/san-kum/brownian/internal/noise"
	"github.com/san-kum/brownian/internal/physics"
)

var (
	dataDir  string
	logLevel string
	// Config file
	configFile string
	// Preset name
	preset string

	dt          float64
	steps       int
	seed        int64
	gamma       float64
	temperature float64
	mass        float64
	stiffness   float64
	integrator  string
	initX       float64
	initV       float64

	// Ensemble size
	runs int
	// Phase plot size
	plotWidth  int
	plotHeight int
	// SVG export
	svgKind   string
	svgWidth  int
	svgHeight int
	// Parameter sweep
	sweepParam  string
	sweepValues []float64
	sweepMetric string
	sweepTarget float64

	log = zap.NewNop()
)

// main registers commands and flags and executes the root command. With no
// subcommand it prints the force-free and harmonic trajectories.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := newRootCmd()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "brownian",
		Short:        "langevin particle simulator",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runClassic,
		Long: "Integrates m·dv = f(x)dt − γ·v·dt + σ·dW with the explicit Euler–Maruyama scheme.\n" +
			"Without a subcommand, prints the force-free and the harmonic trajectories.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logging.Must(logLevel)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = log.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".brownian", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	addParamFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [force]",
		Short: "run one scenario and store it",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)
	runCmd.Flags().Float64Var(&initX, "x0", 0.0, "initial position")
	runCmd.Flags().Float64Var(&initV, "v0", 0.0, "initial velocity")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [force]",
		Short: "run independent seeded copies and report their statistics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addParamFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 200, "number of runs")

	liveCmd := &cobra.Command{
		Use:   "live [force]",
		Short: "run the particle with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addParamFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot position and velocity of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase space plot of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().IntVar(&plotWidth, "width", 70, "plot width")
	phaseCmd.Flags().IntVar(&plotHeight, "height", 20, "plot height")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the position",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run as SVG (phase, position or dots)",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgKind, "kind", "phase", "plot kind (phase, position, dots)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "image height")

	sweepCmd := &cobra.Command{
		Use:   "sweep [force]",
		Short: "evaluate a metric over a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "gamma", "parameter to sweep (dt, gamma, temperature, mass, k)")
	sweepCmd.Flags().Float64SliceVar(&sweepValues, "values", []float64{0.25, 0.5, 1, 2, 4}, "parameter values")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "kinetic_temperature", "metric to evaluate")
	sweepCmd.Flags().Float64Var(&sweepTarget, "target", 0, "target metric value (default: bath temperature)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, ensembleCmd, liveCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, sweepCmd, presetsCmd)
	return rootCmd
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&gamma, "gamma", physics.DefaultGamma, "friction coefficient")
	cmd.Flags().Float64Var(&temperature, "temperature", physics.DefaultTemperature, "bath temperature")
	cmd.Flags().Float64Var(&mass, "mass", physics.DefaultMass, "particle mass")
	cmd.Flags().Float64Var(&stiffness, "k", physics.DefaultStiffness, "harmonic stiffness")
	cmd.Flags().StringVar(&integrator, "integrator", "euler_maruyama", "integrator")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order. A force named in args overrides all of them.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("gamma") {
		cfg.Gamma = gamma
	}
	if flags.Changed("temperature") {
		cfg.Temperature = temperature
	}
	if flags.Changed("mass") {
		cfg.Mass = mass
	}
	if flags.Changed("k") {
		cfg.Stiffness = stiffness
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("x0") {
		cfg.InitState.X = initX
	}
	if flags.Changed("v0") {
		cfg.InitState.V = initV
	}
	if cfg.Seed == 0 || flags.Changed("seed") {
		cfg.Seed = seed
	}
	if len(args) > 0 {
		cfg.Force = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Debug("configuration resolved",
		zap.String("preset", preset),
		zap.String("config", configFile),
		zap.String("force", cfg.Force),
		zap.Int64("seed", cfg.Seed),
	)
	return cfg, nil
}

func runClassic(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	src := noise.NewGaussian(cfg.Seed)
	counts, err := experiment.RunClassic(cmd.Context(), cmd.OutOrStdout(), cfg, src)
	if err != nil {
		return err
	}

	log.Info("classic scenarios finished", zap.Ints("lines", counts), zap.Int64("seed", src.Seed()))
	return nil
}
