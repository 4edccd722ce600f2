package mvngrad

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatherOptionsDefaults(t *testing.T) {
	cfg := gatherOptions(nil)
	assert.Nil(t, cfg.mean, "default mean is the zero vector")
	assert.Nil(t, cfg.cov, "default covariance is the identity")
	assert.Equal(t, 1, cfg.workers, "default execution is serial")
}

func TestWithWorkers(t *testing.T) {
	assert.Equal(t, 3, gatherOptions([]Option{WithWorkers(3)}).workers)
	assert.Equal(t, runtime.NumCPU(), gatherOptions([]Option{WithWorkers(0)}).workers,
		"non-positive worker counts select NumCPU")
	assert.Equal(t, runtime.NumCPU(), gatherOptions([]Option{WithWorkers(-5)}).workers)
}

func TestOptionSlicesAreNotRetained(t *testing.T) {
	mean := []float64{1, 2}
	cov := []float64{2, 0, 0, 2}
	points := []float64{0.5, 0.5}

	first, err := DensityGradient(nil, points, 1, 2, WithMean(mean), WithCovariance(cov))
	require.NoError(t, err)

	// Mutating the option slices after the call must not disturb a
	// subsequent call with fresh copies of the original values.
	mean[0], cov[0] = 99, -1
	second, err := DensityGradient(nil, points, 1, 2,
		WithMean([]float64{1, 2}), WithCovariance([]float64{2, 0, 0, 2}))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLastOptionWins(t *testing.T) {
	points := []float64{1, 1}

	a, err := DensityGradient(nil, points, 1, 2,
		WithMean([]float64{5, 5}), WithMean([]float64{0, 0}))
	require.NoError(t, err)
	b, err := DensityGradient(nil, points, 1, 2, WithMean([]float64{0, 0}))
	require.NoError(t, err)
	assert.Equal(t, b, a)
}
