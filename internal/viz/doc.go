// Package viz renders period-finding runs in the terminal.
//
// The package provides:
//
//   - [Stepper]: a Bubble Tea model that advances a [shor.Run] one stage at a
//     time and shows the register distributions as they evolve
//   - [PlotDistribution]: an asciigraph line plot of a register distribution
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Space/N - Execute the next stage
//	A       - Toggle auto-advance
//	R       - Restart with the next seed
//	T       - Cycle color themes
//	?       - Show help overlay
//	Q       - Quit
package viz
