// Package dynamo provides core simulation primitives for a single
// Brownian particle driven by the Langevin equation
//
//	m·dv = f(x)dt − γ·v·dt + σ·dW
//
// The package defines the fundamental interfaces and types:
//
//   - [State]: position/velocity pair
//   - [System]: drift and noise scale of the stochastic ODE
//   - [Integrator]: numerical stepping scheme
//   - [NoiseSource]: injected standard-normal random source
//   - [Simulator]: orchestrates a fixed-count simulation run
//   - [Ensemble]: independent seeded runs executed concurrently
//
// # Example
//
//	p := physics.NewParticle(1.0, 1.0, physics.NoiseIntensity(10, 1), nil)
//	sim := dynamo.New(p, integrators.NewEulerMaruyama())
//	result, _ := sim.Run(ctx, dynamo.State{}, noise.NewGaussian(42), cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parallel simulations,
// use the [Ensemble] type which gives every run its own noise source.
package dynamo
