package physics

import (
	"math"

	"github.com/san-kum/brownian/internal/dynamo"
)

// Step advances (x, v) by one explicit Euler–Maruyama step of size h:
//
//	x' = x + h·v
//	v' = v + h·f(x)/m − h·γ/m·v + sqrt(h)·σ/m·ξ
//
// The position uses the pre-update velocity. Exactly one sample ξ is drawn
// from noise. mass must be nonzero; it is not checked.
func Step(x, v, h, gamma, sigma, mass float64, force Force, noise dynamo.NoiseSource) (float64, float64) {
	xNew := x + h*v
	vNew := v + h*force.At(x)/mass - h*gamma/mass*v + math.Sqrt(h)*sigma/mass*noise.Normal()
	return xNew, vNew
}
