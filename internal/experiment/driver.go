package experiment

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/san-kum/brownian/internal/config"
	"github.com/san-kum/brownian/internal/dynamo"
	"github.com/san-kum/brownian/internal/integrators"
	"github.com/san-kum/brownian/internal/physics"
)

// Scenario is one labelled run of the classic driver.
type Scenario struct {
	Label string
	Force string
}

// ClassicScenarios are printed in this order by the default command.
var ClassicScenarios = []Scenario{
	{Label: "Sans force", Force: physics.ForceNone},
	{Label: "Avec force harmonique", Force: physics.ForceHarmonic},
}

// TrajectoryPrinter writes "x v" after every step.
type TrajectoryPrinter struct {
	w     *bufio.Writer
	lines int
}

func NewTrajectoryPrinter(w io.Writer) *TrajectoryPrinter {
	return &TrajectoryPrinter{w: bufio.NewWriter(w)}
}

func (p *TrajectoryPrinter) OnStep(step int, s dynamo.State, t float64) error {
	p.lines++
	p.w.WriteString(FormatFloat(s.X))
	p.w.WriteByte(' ')
	p.w.WriteString(FormatFloat(s.V))
	return p.w.WriteByte('\n')
}

func (p *TrajectoryPrinter) Label(label string) error {
	_, err := p.w.WriteString(label + "\n")
	return err
}

func (p *TrajectoryPrinter) Lines() int { return p.lines }

func (p *TrajectoryPrinter) Flush() error { return p.w.Flush() }

// RunClassic runs every scenario from (0, 0) with cfg's parameters,
// drawing from one shared noise source in sequence, and prints each
// labelled trajectory to w. It returns the number of trajectory lines
// written per scenario.
func RunClassic(ctx context.Context, w io.Writer, cfg *config.Config, src dynamo.NoiseSource) ([]int, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	printer := NewTrajectoryPrinter(w)
	simCfg := cfg.SimConfig()
	simCfg.Record = false
	simCfg.ValidateState = false

	counts := make([]int, 0, len(ClassicScenarios))
	for _, sc := range ClassicScenarios {
		if err := printer.Label(sc.Label); err != nil {
			return counts, err
		}

		force, err := physics.ForceByName(sc.Force, cfg.Stiffness)
		if err != nil {
			return counts, err
		}
		p := physics.NewParticle(cfg.Mass, cfg.Gamma, cfg.Sigma(), force)

		sim := dynamo.New(p, integrators.NewEulerMaruyama())
		sim.AddObserver(printer)

		before := printer.Lines()
		if _, err := sim.Run(ctx, dynamo.State{}, src, simCfg); err != nil {
			printer.Flush()
			return counts, fmt.Errorf("%s: %w", sc.Label, err)
		}
		counts = append(counts, printer.Lines()-before)
	}

	return counts, printer.Flush()
}

// FormatFloat renders v as the shortest round-trip decimal, keeping a
// trailing ".0" on integral values so every number reads as a float.
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}
	return s + ".0"
}
