package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/brownian/internal/dynamo"
	"github.com/san-kum/brownian/internal/integrators"
	"github.com/san-kum/brownian/internal/metrics"
	"github.com/san-kum/brownian/internal/physics"
)

type Registry struct {
	integrators map[string]func() dynamo.Integrator
}

func NewRegistry() *Registry {
	r := &Registry{
		integrators: make(map[string]func() dynamo.Integrator),
	}

	r.integrators["euler_maruyama"] = func() dynamo.Integrator { return integrators.NewEulerMaruyama() }

	return r
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, r.ListIntegrators())
	}
	return fn(), nil
}

func (r *Registry) ListIntegrators() []string {
	names := make([]string, 0, len(r.integrators))
	for name := range r.integrators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) ListForces() []string {
	return physics.ForceNames()
}

// DefaultMetrics are observed on every stored run.
func (r *Registry) DefaultMetrics(p *physics.Particle, x0 dynamo.State) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewEnergy(p),
		metrics.NewKineticTemperature(p.Mass),
		metrics.NewSquaredDisplacement(x0.X),
		metrics.NewStability(StabilityBound),
	}
}

// StabilityBound is the |x|, |v| limit used by the stability metric and
// the ensemble boundedness check.
const StabilityBound = 1e3
