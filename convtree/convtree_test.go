package convtree

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConvolutionTree_RejectsEmptyParents(t *testing.T) {
	_, err := NewConvolutionTree([]float64{1}, nil)
	require.True(t, errors.Is(err, ErrNoParents))
}

func TestNewConvolutionTree_RejectsBadLikelihoodLength(t *testing.T) {
	_, err := NewConvolutionTree([]float64{1, 0, 0}, [][]float64{{0.5, 0.5}})
	require.True(t, errors.Is(err, ErrSharedLikelihoodLength))
}

func TestFFTConvolve_TwoBernoulliExactProduct(t *testing.T) {
	p, q := 0.3, 0.7
	a := []float64{1 - p, p}
	b := []float64{1 - q, q}

	got := fftConvolve(a, b)
	require.Len(t, got, 3)
	require.InDelta(t, (1-p)*(1-q), got[0], 1e-9)
	require.InDelta(t, (1-p)*q+p*(1-q), got[1], 1e-9)
	require.InDelta(t, p*q, got[2], 1e-9)
}

func TestNewConvolutionTree_JointAboveSumsToOne(t *testing.T) {
	parents := [][]float64{
		{0.9, 0.1},
		{0.5, 0.5},
		{0.2, 0.8},
		{0.7, 0.3},
		{0.6, 0.4},
	}
	shared := make([]float64, len(parents)+1)
	for i := range shared {
		shared[i] = 1
	}

	tree, err := NewConvolutionTree(shared, parents)
	require.NoError(t, err)

	root := tree.allLayers[tree.starts[tree.logLength]]
	sum := 0.0
	for _, v := range root.jointAbove {
		sum += v
	}
	require.InDelta(t, 1.0, sum, 1e-9)
}

// exactBernoulliSum enumerates all 2^n subsets directly to get the ground
// truth count distribution for n <= 10 independent Bernoulli variables.
func exactBernoulliSum(parents [][]float64) []float64 {
	n := len(parents)
	result := make([]float64, n+1)
	for mask := 0; mask < (1 << n); mask++ {
		prob := 1.0
		count := 0
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				prob *= parents[i][1]
				count++
			} else {
				prob *= parents[i][0]
			}
		}
		result[count] += prob
	}
	return result
}

func TestNewConvolutionTree_MatchesExactEnumeration(t *testing.T) {
	parents := [][]float64{
		{0.9, 0.1},
		{0.4, 0.6},
		{0.8, 0.2},
		{0.3, 0.7},
		{0.5, 0.5},
		{0.6, 0.4},
		{0.95, 0.05},
	}
	shared := make([]float64, len(parents)+1)
	for i := range shared {
		shared[i] = 1
	}

	tree, err := NewConvolutionTree(shared, parents)
	require.NoError(t, err)

	want := exactBernoulliSum(parents)
	got := tree.MessageToSharedLikelihood()
	require.Len(t, got, len(want))

	wantSum := 0.0
	for _, v := range want {
		wantSum += v
	}
	for i := range want {
		require.InDelta(t, want[i]/wantSum, got[i], 1e-6)
	}
}

func TestNewConvolutionTree_SingleParent(t *testing.T) {
	parents := [][]float64{{0.4, 0.6}}
	shared := []float64{1, 1}

	tree, err := NewConvolutionTree(shared, parents)
	require.NoError(t, err)
	require.Equal(t, 1, tree.NumParents())

	msg := tree.MessageToVariable(0)
	require.Len(t, msg, 2)
	sum := msg[0] + msg[1]
	require.InDelta(t, 1.0, sum, 1e-9)
	require.False(t, math.IsNaN(msg[0]))
}

func TestNewConvolutionTree_MessageToVariableLengthMatchesParent(t *testing.T) {
	parents := [][]float64{
		{0.9, 0.1},
		{0.4, 0.6},
		{0.8, 0.2},
	}
	shared := []float64{1, 1, 1, 1}

	tree, err := NewConvolutionTree(shared, parents)
	require.NoError(t, err)

	for i, p := range parents {
		msg := tree.MessageToVariable(i)
		require.Len(t, msg, len(p))
	}
}
