// Package viz provides the terminal live view of a running particle.
//
// The view pairs a braille phase-space canvas (x against v) with an
// asciigraph strip of recent positions and a stats panel:
//
//	m := viz.NewModel(particle, integ, noise.NewGaussian(seed), dt)
//	tea.NewProgram(m).Run()
//
// Keys: space pauses, f toggles the harmonic force, +/- scale the friction
// at constant temperature, r resets, q quits.
package viz
