package arrmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	got := Normalize([]float64{1, 1, 2})
	require.InDelta(t, 0.25, got[0], 1e-12)
	require.InDelta(t, 0.25, got[1], 1e-12)
	require.InDelta(t, 0.5, got[2], 1e-12)
}

func TestLogNormalizeMatchesLinearNormalize(t *testing.T) {
	linear := []float64{0.2, 0.3, 0.5}
	logDomain := make([]float64, len(linear))
	for i, v := range linear {
		logDomain[i] = math.Log(v)
	}

	got := LogNormalize(logDomain)
	for i := range linear {
		require.InDelta(t, linear[i], got[i], 1e-9)
	}
}

func TestAvoidUnderflowFloors(t *testing.T) {
	got := AvoidUnderflow([]float64{0, 1e-40, 0.5})
	require.Equal(t, UnderflowFloor, got[0])
	require.Equal(t, UnderflowFloor, got[1])
	require.Equal(t, 0.5, got[2])
}

func TestCloneAllIsIndependentOfSource(t *testing.T) {
	src := [][]float64{{1, 2}, {3, 4, 5}}
	got := CloneAll(src)
	require.Equal(t, src, got)

	got[0][0] = 99
	require.Equal(t, 1.0, src[0][0])
}

func TestEqual(t *testing.T) {
	require.True(t, Equal([]float64{1, 2}, []float64{1, 2}))
	require.False(t, Equal([]float64{1, 2}, []float64{1, 3}))
	require.False(t, Equal([]float64{1, 2}, []float64{1}))
}

func TestMaxAbsLogResidual(t *testing.T) {
	r := MaxAbsLogResidual([]float64{1, 1}, []float64{1, 1})
	require.Equal(t, 0.0, r)

	r = MaxAbsLogResidual([]float64{math.E, 1}, []float64{1, 1})
	require.InDelta(t, 1.0, r, 1e-12)
}
