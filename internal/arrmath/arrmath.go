// Package arrmath provides the small set of numeric primitives shared by the
// convtree and bp packages: sum-normalization, log-domain normalization, and
// the underflow floor used throughout the belief-propagation pipeline.
//
// Normalize and AvoidUnderflow operate in place on the slice they are given
// and also return it, so callers can chain them the way the teacher's matrix
// package chains in-place row operations (see matrix/ops_elementwise.go);
// LogNormalize leaves its input untouched and returns a new slice.
package arrmath

import "math"

// UnderflowFloor is the minimum value any message or belief entry is allowed
// to carry. Values below it are clamped up, never reported as an error:
// NumericUnderflow is a defensive floor, not a failure mode.
const UnderflowFloor = 1e-30

// Normalize divides every element of arr by the sum of all elements.
// Complexity: O(len(arr)).
func Normalize(arr []float64) []float64 {
	var sum float64
	for _, v := range arr {
		sum += v
	}
	for i := range arr {
		arr[i] /= sum
	}
	return arr
}

// LogNormalize performs a numerically stable log-domain normalization
// (log-sum-exp) and returns the result exponentiated back to linear space,
// i.e. out[i] = exp(arr[i] - max) / sum_j exp(arr[j] - max).
// Complexity: O(len(arr)).
func LogNormalize(arr []float64) []float64 {
	maxVal := math.Inf(-1)
	for _, v := range arr {
		if v > maxVal {
			maxVal = v
		}
	}

	var logSumExp float64
	for _, v := range arr {
		logSumExp += math.Exp(v - maxVal)
	}
	logSumExp = math.Log(logSumExp)

	out := make([]float64, len(arr))
	for i, v := range arr {
		out[i] = math.Exp(v - maxVal - logSumExp)
	}
	return out
}

// AvoidUnderflow floors every element below UnderflowFloor up to it, in
// place. It never raises an error: underflow is handled locally per
// spec's NumericUnderflow error-kind policy.
func AvoidUnderflow(arr []float64) []float64 {
	for i, v := range arr {
		if v < UnderflowFloor {
			arr[i] = UnderflowFloor
		}
	}
	return arr
}

// Clone returns a fresh copy of arr, leaving the original untouched.
func Clone(arr []float64) []float64 {
	out := make([]float64, len(arr))
	copy(out, arr)
	return out
}

// CloneAll returns a fresh copy of every slice in arr, leaving the
// original slices untouched.
func CloneAll(arr [][]float64) [][]float64 {
	out := make([][]float64, len(arr))
	for i := range arr {
		out[i] = Clone(arr[i])
	}
	return out
}

// Equal reports whether a and b are the same length and bit-identical,
// element by element. Used to detect "nothing changed since last pass"
// fast paths (e.g. the convolution-tree rebuild skip in bp).
func Equal(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MaxAbsLogResidual computes max_i |log(a[i]/b[i])| after flooring both
// inputs to UnderflowFloor, the infinity-norm log residual used as BP's
// scheduling priority (spec glossary: "Residual (infinity-norm log)").
// a and b must have equal length; mismatched lengths are the caller's
// signal to reset the baseline instead (see bp package).
func MaxAbsLogResidual(a, b []float64) float64 {
	var maxResidual float64
	for i := range a {
		ai := a[i]
		bi := b[i]
		if ai < UnderflowFloor {
			ai = UnderflowFloor
		}
		if bi < UnderflowFloor {
			bi = UnderflowFloor
		}
		r := math.Abs(math.Log(ai / bi))
		if r > maxResidual {
			maxResidual = r
		}
	}
	return maxResidual
}
