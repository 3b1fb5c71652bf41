// Package physics provides the Langevin particle model and its
// Euler–Maruyama step.
//
//   - [Step]: one explicit step of m·dv = f(x)dt − γ·v·dt + σ·dW
//   - [Harmonic], [HarmonicForce]: restoring force −k·x
//   - [Particle]: mass, friction, noise and force bundled as a [dynamo.System]
//
// A nil [Force] means zero force everywhere.
//
// # Noise intensity
//
// The thermal kick follows the fluctuation-dissipation relation:
//
//	sigma := physics.NoiseIntensity(temperature, gamma) // sqrt(2·T·γ)
package physics
