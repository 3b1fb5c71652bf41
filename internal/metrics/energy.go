package metrics

import (
	"github.com/san-kum/brownian/internal/dynamo"
)

// Energy is the time-averaged mechanical energy of a Hamiltonian system.
type Energy struct {
	name        string
	sys         dynamo.Hamiltonian
	samples     int
	totalEnergy float64
}

func NewEnergy(sys dynamo.Hamiltonian) *Energy {
	return &Energy{name: "energy", sys: sys}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(s dynamo.State, t float64) {
	e.totalEnergy += e.sys.Energy(s)
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.totalEnergy / float64(e.samples)
}

func (e *Energy) Reset() {
	e.totalEnergy = 0
	e.samples = 0
}

// KineticTemperature averages m·v² over the run. At equilibrium it
// approaches the bath temperature when σ² = 2·γ·T.
type KineticTemperature struct {
	name    string
	mass    float64
	sum     float64
	samples int
}

func NewKineticTemperature(mass float64) *KineticTemperature {
	return &KineticTemperature{name: "kinetic_temperature", mass: mass}
}

func (k *KineticTemperature) Name() string { return k.name }

func (k *KineticTemperature) Observe(s dynamo.State, t float64) {
	k.sum += k.mass * s.V * s.V
	k.samples++
}

func (k *KineticTemperature) Value() float64 {
	if k.samples == 0 {
		return 0
	}
	return k.sum / float64(k.samples)
}

func (k *KineticTemperature) Reset() {
	k.sum = 0
	k.samples = 0
}
