package analysis

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/brownian/internal/dynamo"
)

// EnsembleStats holds per-step moments across independent runs. Index 0 is
// the initial state.
type EnsembleStats struct {
	Runs      int
	Times     []float64
	MeanX     []float64
	VarX      []float64
	MeanV     []float64
	VarV      []float64
	MaxAbsX   float64
	MaxAbsV   float64
	NonFinite int
}

// Summarize computes ensemble moments of recorded runs. All runs must have
// recorded the same number of states.
func Summarize(results []*dynamo.Result) (*EnsembleStats, error) {
	if len(results) == 0 {
		return nil, fmt.Errorf("%w: no runs to summarize", dynamo.ErrDimensionMismatch)
	}
	n := len(results[0].States)
	if n == 0 {
		return nil, fmt.Errorf("%w: runs recorded no states", dynamo.ErrDimensionMismatch)
	}
	for i, r := range results {
		if len(r.States) != n {
			return nil, fmt.Errorf("%w: run %d has %d states, want %d", dynamo.ErrDimensionMismatch, i, len(r.States), n)
		}
	}

	st := &EnsembleStats{
		Runs:  len(results),
		Times: results[0].Times,
		MeanX: make([]float64, n),
		VarX:  make([]float64, n),
		MeanV: make([]float64, n),
		VarV:  make([]float64, n),
	}

	xs := make([]float64, len(results))
	vs := make([]float64, len(results))
	for step := 0; step < n; step++ {
		for i, r := range results {
			s := r.States[step]
			if !s.IsValid() {
				st.NonFinite++
			}
			xs[i], vs[i] = s.X, s.V
			st.MaxAbsX = math.Max(st.MaxAbsX, math.Abs(s.X))
			st.MaxAbsV = math.Max(st.MaxAbsV, math.Abs(s.V))
		}
		if len(results) > 1 {
			st.MeanX[step], st.VarX[step] = stat.MeanVariance(xs, nil)
			st.MeanV[step], st.VarV[step] = stat.MeanVariance(vs, nil)
		} else {
			st.MeanX[step], st.MeanV[step] = xs[0], vs[0]
		}
	}

	return st, nil
}

// Bounded reports whether every recorded position and velocity stayed
// finite and within limit.
func (e *EnsembleStats) Bounded(limit float64) bool {
	return e.NonFinite == 0 && e.MaxAbsX <= limit && e.MaxAbsV <= limit
}

// Final returns the moments at the last recorded step.
func (e *EnsembleStats) Final() (meanX, varX, meanV, varV float64) {
	last := len(e.MeanX) - 1
	return e.MeanX[last], e.VarX[last], e.MeanV[last], e.VarV[last]
}
