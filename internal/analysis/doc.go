// Package analysis provides classical reference tools for inspecting
// period-finding runs.
//
//   - [FFT] and [IFFT]: radix-2 discrete Fourier transform on complex input
//   - [PowerSpectrum]: magnitudes of the FFT of a real signal
//   - [ExpectedPeaks]: where register-A outcomes concentrate for a period r
//   - [TopOutcomes]: the most probable outcomes of a distribution
//
// # QFT reference
//
// The quantum Fourier transform of a 2^m amplitude vector equals the inverse
// DFT scaled by √Q:
//
//	ref := analysis.IFFT(amps)
//	for i := range ref {
//	    ref[i] *= complex(math.Sqrt(float64(len(ref))), 0)
//	}
package analysis
