package convtree

import (
	"gonum.org/v1/gonum/dsp/fft"
)

// fftConvolve computes the linear convolution of a and b via forward and
// inverse FFT: output has length len(a)+len(b)-1; both inputs are
// zero-padded to the next power of two of that length before transforming.
// FFT.Sequence performs an unnormalized inverse transform, so the result
// is divided by the FFT size before it is returned.
func fftConvolve(a, b []float64) []float64 {
	outLen := len(a) + len(b) - 1
	fftSize := nextPow2(outLen)

	aPadded := make([]float64, fftSize)
	copy(aPadded, a)
	bPadded := make([]float64, fftSize)
	copy(bPadded, b)

	planner := fft.NewFFT(fftSize)
	aCoeff := planner.Coefficients(nil, aPadded)
	bCoeff := planner.Coefficients(nil, bPadded)

	prod := make([]complex128, len(aCoeff))
	for i := range prod {
		prod[i] = aCoeff[i] * bCoeff[i]
	}

	result := planner.Sequence(nil, prod)[:outLen]
	for i := range result {
		result[i] /= float64(fftSize)
	}
	return result
}

// nextPow2 returns the smallest power of two that is >= n (n >= 1).
func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
