package main

import (
	"encoding/csv"
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/brownian/internal/analysis"
	"github.com/san-kum/brownian/internal/config"
	"github.com/san-kum/brownian/internal/dynamo"
	"github.com/san-kum/brownian/internal/experiment"
	"github.com/san-kum/brownian/internal/export"
	"github.com/san-kum/brownian/internal/noise"
	"github.com/san-kum/brownian/internal/optim"
	"github.com/san-kum/brownian/internal/storage"
	"github.com/san-kum/brownian/internal/viz"
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	exp := experiment.New(cfg, log)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "running %s particle...\n", cfg.Force)
	start := time.Now()

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(runMetadata(cfg), result)
	if err != nil {
		return err
	}

	log.Info("run saved", zap.String("id", runID), zap.String("dir", dataDir))

	fmt.Fprintf(out, "completed in %v\n", elapsed)
	fmt.Fprintf(out, "run id: %s\n", runID)
	fmt.Fprintf(out, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(out, "final: %s\n", result.Final)
	fmt.Fprintln(out, "\nmetrics:")
	for _, name := range sortedKeys(result.Metrics) {
		fmt.Fprintf(out, "  %s: %.6f\n", name, result.Metrics[name])
	}

	return nil
}

func runMetadata(cfg *config.Config) storage.RunMetadata {
	return storage.RunMetadata{
		Force:       cfg.Force,
		Seed:        cfg.Seed,
		Dt:          cfg.Dt,
		Steps:       cfg.Steps,
		Integrator:  cfg.Integrator,
		Mass:        cfg.Mass,
		Gamma:       cfg.Gamma,
		Sigma:       cfg.Sigma(),
		Temperature: cfg.Temperature,
		Stiffness:   cfg.Stiffness,
		Fingerprint: cfg.Fingerprint(),
	}
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, log)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	results, err := exp.Ensemble(cmd.Context(), runs)
	if err != nil {
		return err
	}

	stats, err := analysis.Summarize(results)
	if err != nil {
		return err
	}
	log.Debug("ensemble summarized", zap.Int("runs", stats.Runs), zap.Int("non_finite", stats.NonFinite))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ensemble: %d runs of %d steps, force=%s, seeds %d..%d\n\n",
		stats.Runs, cfg.Steps, cfg.Force, cfg.Seed, cfg.Seed+int64(runs)-1)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tMEAN_X\tVAR_X\tMEAN_V\tVAR_V")
	n := len(stats.MeanX)
	for _, frac := range []float64{0, 0.1, 0.25, 0.5, 0.75, 1} {
		i := int(frac * float64(n-1))
		fmt.Fprintf(w, "%.2f\t%+.4f\t%.4f\t%+.4f\t%.4f\n",
			stats.Times[i], stats.MeanX[i], stats.VarX[i], stats.MeanV[i], stats.VarV[i])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if n > 1 {
		graph := asciigraph.Plot(stats.VarX,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("position variance vs step"),
		)
		fmt.Fprintln(out)
		fmt.Fprintln(out, graph)
	}

	bounded := stats.Bounded(experiment.StabilityBound)
	fmt.Fprintf(out, "\nmax |x|: %.4f  max |v|: %.4f  non-finite: %d\n", stats.MaxAbsX, stats.MaxAbsV, stats.NonFinite)
	fmt.Fprintf(out, "bounded (|x|,|v| <= %g): %t\n", experiment.StabilityBound, bounded)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg, log)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return err
	}

	m := viz.NewModel(exp.Particle(), exp.Integrator(), noise.NewGaussian(cfg.Seed), cfg.Dt)
	p := tea.NewProgram(m, tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	metas, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(metas) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFORCE\tTIME\tSTEPS\tDT\tSEED\tTEMP\tSETUP")

	for _, run := range metas {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\t%.2f\t%.8s\n",
			run.ID,
			run.Force,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Seed,
			run.Temperature,
			run.Fingerprint,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []dynamo.State, []float64, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	states, times, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	if len(states) == 0 {
		return nil, nil, nil, fmt.Errorf("run %s: no data", runID)
	}
	return meta, states, times, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "force: %s\n", meta.Force)
	fmt.Fprintf(out, "samples: %d\n\n", len(states))

	xs := make([]float64, len(states))
	vs := make([]float64, len(states))
	for i, s := range states {
		xs[i], vs[i] = s.X, s.V
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{xs, "x (position)"},
		{vs, "v (velocity)"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "phase space plot: %s\n", meta.ID)
	fmt.Fprintf(out, "force: %s\n", meta.Force)
	fmt.Fprintf(out, "x-axis: position, y-axis: velocity\n\n")
	fmt.Fprint(out, analysis.PhasePortraitToASCII(states, plotWidth, plotHeight))
	fmt.Fprintf(out, "\nLegend: . = early, o = middle, • = late\n")

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, states, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "frequency analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "force: %s\n\n", meta.Force)

	data := make([]float64, len(states))
	for i := range states {
		data[i] = states[i].X
	}

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:max(len(ps)/4, 1)]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (x)"),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	freq := analysis.DominantFrequency(data, meta.Dt)
	fmt.Fprintf(out, "dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Fprintf(out, "period: %.3f s\n", 1.0/freq)
	}
	if meta.Stiffness > 0 && meta.Mass > 0 && meta.Force != "none" {
		fmt.Fprintf(out, "natural frequency: %.3f hz\n", naturalFrequency(meta.Stiffness, meta.Mass))
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, states, times, err := loadRun(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(cmd.OutOrStdout())
	if err := w.Write([]string{"time", "x", "v"}); err != nil {
		return err
	}

	for i, s := range states {
		row := []string{
			strconv.FormatFloat(times[i], 'f', 6, 64),
			strconv.FormatFloat(s.X, 'f', 6, 64),
			strconv.FormatFloat(s.V, 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, states, times, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta, states, times)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, states, times, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var svg string
	switch svgKind {
	case "phase":
		svg = export.TrajectoryToSVG(export.PhasePoints(states), svgWidth, svgHeight, "#00ff88")
	case "position":
		xs := make([]float64, len(states))
		for i, s := range states {
			xs[i] = s.X
		}
		svg = export.TrajectoryToSVG(export.SeriesPoints(times, xs), svgWidth, svgHeight, "#00aaff")
	case "dots":
		canvas := viz.NewCanvas(max(svgWidth/8, 1), max(svgHeight/16, 1))
		viz.DrawPhase(canvas, states)
		svg = export.CanvasToSVG(canvas, 4)
	default:
		return fmt.Errorf("unknown svg kind: %s", svgKind)
	}

	if svg == "" {
		return fmt.Errorf("run %s: not enough finite points to draw", args[0])
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), svg)
	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	target := cfg.Temperature
	if cmd.Flags().Changed("target") {
		target = sweepTarget
	}

	grid := optim.NewGridSearch([]string{sweepParam}, [][]float64{sweepValues})
	samples, best, err := grid.Search(cmd.Context(), cfg, experiment.NewRegistry(), sweepMetric, target)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\tERROR\n", strings.ToUpper(sweepParam), strings.ToUpper(sweepMetric))
	for _, s := range samples {
		v := s.Params[sweepParam]
		fmt.Fprintf(w, "%g\t%.4f\t%+.4f\n", v, s.Value, s.Value-target)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(out, "\nclosest to %g: %s=%g (%s=%.4f)\n",
		target, sweepParam, best.Params[sweepParam], sweepMetric, best.Value)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "presets:")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(out, "  %-12s force=%s k=%g gamma=%g T=%g dt=%g steps=%d\n",
			name, p.Force, p.Stiffness, p.Gamma, p.Temperature, p.Dt, p.Steps)
	}

	r := experiment.NewRegistry()
	fmt.Fprintf(out, "\nforces: %s\n", strings.Join(r.ListForces(), ", "))
	fmt.Fprintf(out, "integrators: %s\n", strings.Join(r.ListIntegrators(), ", "))
	return nil
}

func sortedKeys(m map[string]float64) []string {
	return slices.Sorted(maps.Keys(m))
}

func naturalFrequency(k, mass float64) float64 {
	return math.Sqrt(k/mass) / (2 * math.Pi)
}
