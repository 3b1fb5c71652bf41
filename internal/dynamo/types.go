package dynamo

import (
	"fmt"
	"math"
)

// State is the transient (position, velocity) pair of the particle.
type State struct {
	X float64
	V float64
}

func (s State) IsValid() bool {
	return !(math.IsNaN(s.X) || math.IsInf(s.X, 0) || math.IsNaN(s.V) || math.IsInf(s.V, 0))
}

func (s State) String() string {
	return fmt.Sprintf("(x=%g, v=%g)", s.X, s.V)
}

// NoiseSource yields independent standard-normal samples. Each call
// advances the source.
type NoiseSource interface {
	Normal() float64
}

// System describes the Langevin dynamics of a particle: the deterministic
// acceleration and the scale of the random velocity kick.
type System interface {
	// Drift returns the deterministic acceleration f(x)/m − γ/m·v.
	Drift(s State) float64
	// NoiseScale returns σ/m.
	NoiseScale() float64
}

type Hamiltonian interface {
	Energy(s State) float64
}

type Integrator interface {
	Step(sys System, s State, dt float64, noise NoiseSource) State
}

type Metric interface {
	Name() string
	Observe(s State, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(step int, s State, t float64) error
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(step int, s State, t float64) error

func (f ObserverFunc) OnStep(step int, s State, t float64) error { return f(step, s, t) }

type Config struct {
	Dt            float64
	Steps         int
	Seed          int64
	Record        bool
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            0.01,
		Steps:         10000,
		Record:        true,
		ValidateState: true,
	}
}

type Result struct {
	States     []State
	Times      []float64
	Final      State
	Metrics    map[string]float64
	StepsTaken int
}
