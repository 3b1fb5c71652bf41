package dynamo

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// SourceFactory builds the noise source of one ensemble member.
type SourceFactory func(seed int64) NoiseSource

// Ensemble runs independent copies of a simulation, one noise source per
// run. Draw order within each run is unaffected by the parallelism.
type Ensemble struct {
	base      *Simulator
	numRuns   int
	seedStart int64
	newSource SourceFactory
}

func NewEnsemble(s *Simulator, numRuns int, seedStart int64, newSource SourceFactory) *Ensemble {
	return &Ensemble{base: s, numRuns: numRuns, seedStart: seedStart, newSource: newSource}
}

// Run executes every member with cfg.Seed = seedStart+i. Metrics and
// observers of the base simulator are not shared with the members.
func (e *Ensemble) Run(ctx context.Context, x0 State, cfg Config) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := 0; i < e.numRuns; i++ {
		idx := i
		g.Go(func() error {
			cfgCopy := cfg
			cfgCopy.Seed = e.seedStart + int64(idx)

			s := New(e.base.sys, e.base.integrator)
			res, err := s.Run(ctx, x0, e.newSource(cfgCopy.Seed), cfgCopy)
			if err != nil {
				return err
			}
			results[idx] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
