package anomaly

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drawbias/domain/core"
)

func uniformBaseline(n int) []float64 {
	baseline := make([]float64, n)
	for i := range baseline {
		baseline[i] = 1.0 / float64(n)
	}
	return baseline
}

func TestRollingScores_RecordPerWindow(t *testing.T) {
	draws := []int{0, 1, 2, 0, 1, 2, 0, 1, 2, 0}
	windowSize := 3

	records, err := RollingScores(draws, uniformBaseline(3), windowSize)
	require.NoError(t, err)
	require.Len(t, records, len(draws)-windowSize+1)

	for i, record := range records {
		assert.Equal(t, windowSize-1+i, record.Step, "record %d step index", i)
		assert.GreaterOrEqual(t, record.ChiSquare, 0.0)
		assert.GreaterOrEqual(t, record.PValue, 0.0)
		assert.LessOrEqual(t, record.PValue, 1.0)
	}
}

func TestRollingScores_SkewedWindowScoresWorse(t *testing.T) {
	// First half alternates fairly, second half is stuck on outcome 0.
	draws := make([]int, 120)
	for i := 0; i < 60; i++ {
		draws[i] = i % 3
	}

	records, err := RollingScores(draws, uniformBaseline(3), 30)
	require.NoError(t, err)

	first := records[0]
	last := records[len(records)-1]
	assert.Greater(t, last.ChiSquare, first.ChiSquare, "stuck outcome should raise the statistic")
	assert.Less(t, last.PValue, first.PValue)
	assert.Negative(t, last.EntropyGap, "stuck outcome concentrates the window")
}

func TestRollingScores_MatchesDirectComputation(t *testing.T) {
	draws := []int{0, 0, 1, 2, 1, 0, 2, 2, 1, 0, 1, 1}
	windowSize := 5
	baseline := uniformBaseline(3)

	records, err := RollingScores(draws, baseline, windowSize)
	require.NoError(t, err)

	// Recompute the final window from scratch to cross-check the
	// incremental count bookkeeping.
	lastWindow := draws[len(draws)-windowSize:]
	counts := make([]float64, 3)
	for _, d := range lastWindow {
		counts[d]++
	}
	expected := []float64{
		baseline[0] * float64(windowSize),
		baseline[1] * float64(windowSize),
		baseline[2] * float64(windowSize),
	}
	statistic, pValue, err := ChiSquareTest(counts, expected)
	require.NoError(t, err)

	last := records[len(records)-1]
	assert.InDelta(t, statistic, last.ChiSquare, 1e-12)
	assert.InDelta(t, pValue, last.PValue, 1e-12)
	assert.Equal(t, len(draws)-1, last.Step)
}

func TestRollingScores_Validation(t *testing.T) {
	baseline := uniformBaseline(3)

	_, err := RollingScores([]int{0, 1}, baseline, 5)
	assert.ErrorIs(t, err, core.ErrInvalidInput, "draws shorter than one window")

	_, err = RollingScores([]int{0, 1, 2}, baseline, 1)
	assert.ErrorIs(t, err, core.ErrInvalidInput, "window size of one")

	_, err = RollingScores([]int{0, 1, 2}, []float64{0.9, 0.9, 0.9}, 2)
	assert.ErrorIs(t, err, core.ErrInvalidInput, "baseline not a distribution")

	_, err = RollingScores([]int{0, 1, 7}, baseline, 2)
	assert.ErrorIs(t, err, core.ErrDrawOutOfRange)
}
