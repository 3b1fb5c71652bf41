// Package noise provides seedable standard-normal sources for the
// stochastic integrators.
package noise

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Gaussian draws N(0, 1) samples from a PCG stream seeded by the run seed.
// Two sources built from the same seed produce the same sequence.
type Gaussian struct {
	seed int64
	dist distuv.Normal
}

func NewGaussian(seed int64) *Gaussian {
	src := rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15)
	return &Gaussian{
		seed: seed,
		dist: distuv.Normal{Mu: 0, Sigma: 1, Src: src},
	}
}

func (g *Gaussian) Normal() float64 {
	return g.dist.Rand()
}

func (g *Gaussian) Seed() int64 { return g.seed }
