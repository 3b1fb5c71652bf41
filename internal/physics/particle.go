package physics

import (
	"fmt"

	"github.com/san-kum/brownian/internal/dynamo"
)

const (
	DefaultMass        = 1.0
	DefaultGamma       = 1.0
	DefaultTemperature = 10.0
	DefaultStiffness   = 1.0
)

// Particle is a Brownian particle in one dimension.
type Particle struct {
	Mass  float64
	Gamma float64
	Sigma float64
	Force Force

	// Stiffness is the harmonic constant used for the potential energy.
	// Zero means the potential is unknown and only kinetic energy is reported.
	Stiffness float64
}

func NewParticle(mass, gamma, sigma float64, force Force) *Particle {
	return &Particle{Mass: mass, Gamma: gamma, Sigma: sigma, Force: force}
}

// NewHarmonicParticle is a particle bound to −k·x.
func NewHarmonicParticle(mass, gamma, sigma, k float64) *Particle {
	return &Particle{Mass: mass, Gamma: gamma, Sigma: sigma, Force: HarmonicForce(k), Stiffness: k}
}

func (p *Particle) Drift(s dynamo.State) float64 {
	return p.Force.At(s.X)/p.Mass - p.Gamma/p.Mass*s.V
}

func (p *Particle) NoiseScale() float64 {
	return p.Sigma / p.Mass
}

func (p *Particle) Energy(s dynamo.State) float64 {
	return 0.5*p.Mass*s.V*s.V + 0.5*p.Stiffness*s.X*s.X
}

func (p *Particle) GetParams() map[string]float64 {
	return map[string]float64{"mass": p.Mass, "gamma": p.Gamma, "sigma": p.Sigma, "k": p.Stiffness}
}

func (p *Particle) SetParam(name string, value float64) error {
	switch name {
	case "mass":
		p.Mass = value
	case "gamma":
		p.Gamma = value
	case "sigma":
		p.Sigma = value
	case "k":
		p.Stiffness = value
		if p.Force != nil {
			p.Force = HarmonicForce(value)
		}
	default:
		return fmt.Errorf("unknown parameter: %s", name)
	}
	return nil
}
