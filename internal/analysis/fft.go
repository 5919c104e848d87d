package analysis

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// FFT returns the forward DFT X_k = Σ x_j e^(-2πijk/n). Any length is
// accepted.
func FFT(data []complex128) []complex128 {
	if len(data) == 0 {
		return nil
	}
	return fft.FFT(data)
}

// IFFT returns the inverse DFT x_j = (1/n) Σ X_k e^(2πijk/n).
func IFFT(data []complex128) []complex128 {
	if len(data) == 0 {
		return nil
	}
	return fft.IFFT(data)
}

// PowerSpectrum returns |FFT| of a real signal up to the Nyquist bin.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	spectrum := fft.FFTReal(data)
	ps := make([]float64, len(spectrum)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}

	return ps
}
