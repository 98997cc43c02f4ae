package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drawbias/adapters/rng"
	"drawbias/domain/bias"
	"drawbias/internal"
)

func newTestService() *CycleService {
	return NewCycleService(internal.NewLogger(internal.LogLevelError), rng.NewSeededFactory())
}

func testConfig() CycleConfig {
	cfg := DefaultCycleConfig()
	cfg.NSteps = 200
	cfg.WindowSize = 40
	return cfg
}

func TestCycleService_SeriesAligned(t *testing.T) {
	result, err := newTestService().Run(testConfig())
	require.NoError(t, err)

	cfg := testConfig()
	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.Weights, cfg.NOutcomes)
	assert.Len(t, result.BaselineProbs, cfg.NOutcomes)
	assert.Len(t, result.BetaSeries, cfg.NSteps)
	assert.Len(t, result.Probabilities, cfg.NSteps)
	assert.Len(t, result.Draws, cfg.NSteps)
	assert.Len(t, result.EWMABeta, cfg.NSteps)
	assert.Len(t, result.KalmanBeta, cfg.NSteps)
	assert.Len(t, result.Anomalies, cfg.NSteps-cfg.WindowSize+1)
	assert.Len(t, result.Correlations, cfg.NOutcomes)
	assert.Equal(t, cfg.NSteps-cfg.WindowSize+1, result.AnomalySummary.Windows)

	require.NoError(t, bias.ValidateDistribution(result.BaselineProbs))
	for tIdx, probs := range result.Probabilities {
		require.NoErrorf(t, bias.ValidateDistribution(probs), "step %d", tIdx)
	}
}

func TestCycleService_SeededRunsReproduce(t *testing.T) {
	service := newTestService()

	first, err := service.Run(testConfig())
	require.NoError(t, err)
	second, err := service.Run(testConfig())
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID, "run IDs are unique per run")
	assert.Equal(t, first.Weights, second.Weights)
	assert.Equal(t, first.BetaSeries, second.BetaSeries)
	assert.Equal(t, first.Draws, second.Draws)
	assert.Equal(t, first.EWMABeta, second.EWMABeta)
	assert.Equal(t, first.KalmanBeta, second.KalmanBeta)
}

func TestCycleService_CallerWeightsRespected(t *testing.T) {
	cfg := testConfig()
	cfg.WeightProfile = []float64{1.0, 1.1, 1.2, 1.3, 1.4, 1.5}

	result, err := newTestService().Run(cfg)
	require.NoError(t, err)
	assert.Equal(t, cfg.WeightProfile, result.Weights)

	// The heaviest outcome gets the least baseline mass.
	least := 0
	for i, p := range result.BaselineProbs {
		if p < result.BaselineProbs[least] {
			least = i
		}
	}
	assert.Equal(t, 5, least)
}

func TestCycleService_Validation(t *testing.T) {
	cfg := testConfig()
	cfg.WindowSize = cfg.NSteps
	_, err := newTestService().Run(cfg)
	assert.Error(t, err, "window must be smaller than the series")

	cfg = testConfig()
	cfg.NOutcomes = 1
	_, err = newTestService().Run(cfg)
	assert.Error(t, err)

	cfg = testConfig()
	cfg.WeightProfile = []float64{1.0, 2.0}
	_, err = newTestService().Run(cfg)
	assert.Error(t, err, "weight profile length must match outcomes")
}
