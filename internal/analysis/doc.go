// Package analysis provides post-processing tools for Langevin trajectories.
//
//   - [PowerSpectrum], [DominantFrequency]: spectral content of a recorded run
//   - [PhasePortraitToASCII]: (x, v) scatter of a trajectory
//   - [Summarize]: per-step ensemble mean and variance
//
// # Ensemble checks
//
// Without a force the ensemble mean stays at the origin while the variance
// of the position grows; with a harmonic force it stays bounded:
//
//	stats, _ := analysis.Summarize(results)
//	if stats.Bounded(limit) {
//	    // trajectory did not diverge
//	}
package analysis
