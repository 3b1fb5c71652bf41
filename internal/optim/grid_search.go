package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/brownian/internal/config"
	"github.com/san-kum/brownian/internal/experiment"
)

// Sample is one evaluated grid point.
type Sample struct {
	Params map[string]float64
	Value  float64
}

// GridSearch evaluates a metric over the cartesian product of parameter
// values, each applied to a copy of a base configuration.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs every grid point and returns all samples in grid order and
// the one whose metric is closest to target. A failed point aborts the
// search.
func (g *GridSearch) Search(
	ctx context.Context,
	base *config.Config,
	registry *experiment.Registry,
	metricName string,
	target float64,
) ([]Sample, Sample, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, Sample{}, fmt.Errorf("grid: %d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}

	var samples []Sample
	err := g.searchRecursive(ctx, 0, make(map[string]float64), func(params map[string]float64) error {
		val, err := evaluate(ctx, base, registry, params, metricName)
		if err != nil {
			return err
		}
		samples = append(samples, Sample{Params: params, Value: val})
		return nil
	})
	if err != nil {
		return samples, Sample{}, err
	}
	if len(samples) == 0 {
		return nil, Sample{}, fmt.Errorf("grid: no points to evaluate")
	}

	best := samples[0]
	for _, s := range samples[1:] {
		if math.Abs(s.Value-target) < math.Abs(best.Value-target) {
			best = s
		}
	}
	return samples, best, nil
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	visit func(map[string]float64) error,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if depth == len(g.paramNames) {
		return visit(current)
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		newParams := make(map[string]float64, len(current)+1)
		for k, v := range current {
			newParams[k] = v
		}
		newParams[paramName] = val

		if err := g.searchRecursive(ctx, depth+1, newParams, visit); err != nil {
			return err
		}
	}
	return nil
}

func evaluate(
	ctx context.Context,
	base *config.Config,
	registry *experiment.Registry,
	params map[string]float64,
	metricName string,
) (float64, error) {
	cfg := *base
	for name, val := range params {
		if err := cfg.SetParam(name, val); err != nil {
			return 0, err
		}
	}

	exp := experiment.New(&cfg, nil)
	if err := exp.Setup(registry); err != nil {
		return 0, fmt.Errorf("grid point %v: %w", params, err)
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return 0, fmt.Errorf("grid point %v: %w", params, err)
	}

	val, ok := result.Metrics[metricName]
	if !ok {
		return 0, fmt.Errorf("unknown metric: %s", metricName)
	}
	return val, nil
}
