package physics

import (
	"fmt"
	"math"
	"sort"
)

// Force maps a position to a scalar force. A nil Force is zero everywhere.
type Force func(x float64) float64

// At evaluates f at x, treating a nil Force as zero.
func (f Force) At(x float64) float64 {
	if f == nil {
		return 0
	}
	return f(x)
}

// Harmonic returns the restoring force −k·x.
func Harmonic(x, k float64) float64 {
	return -k * x
}

// HarmonicForce binds the stiffness k.
func HarmonicForce(k float64) Force {
	return func(x float64) float64 { return Harmonic(x, k) }
}

// NoiseIntensity returns σ = sqrt(2·T·γ).
func NoiseIntensity(temperature, gamma float64) float64 {
	return math.Sqrt(2.0 * temperature * gamma)
}

const (
	ForceNone     = "none"
	ForceHarmonic = "harmonic"
)

// ForceByName resolves a registered force. The stiffness is ignored for
// the zero force.
func ForceByName(name string, k float64) (Force, error) {
	switch name {
	case ForceNone, "":
		return nil, nil
	case ForceHarmonic:
		return HarmonicForce(k), nil
	default:
		return nil, fmt.Errorf("unknown force: %s (available: %v)", name, ForceNames())
	}
}

func ForceNames() []string {
	names := []string{ForceNone, ForceHarmonic}
	sort.Strings(names)
	return names
}
