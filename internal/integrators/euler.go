package integrators

import (
	"math"

	"github.com/san-kum/brownian/internal/dynamo"
	"github.com/san-kum/brownian/internal/physics"
)

// EulerMaruyama is the explicit first-order scheme for the Langevin SDE.
// Position is advanced with the pre-update velocity.
type EulerMaruyama struct{}

func NewEulerMaruyama() *EulerMaruyama {
	return &EulerMaruyama{}
}

func (e *EulerMaruyama) Step(sys dynamo.System, s dynamo.State, dt float64, noise dynamo.NoiseSource) dynamo.State {
	if p, ok := sys.(*physics.Particle); ok {
		x, v := physics.Step(s.X, s.V, dt, p.Gamma, p.Sigma, p.Mass, p.Force, noise)
		return dynamo.State{X: x, V: v}
	}
	return dynamo.State{
		X: s.X + dt*s.V,
		V: s.V + dt*sys.Drift(s) + math.Sqrt(dt)*sys.NoiseScale()*noise.Normal(),
	}
}
