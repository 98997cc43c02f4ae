package anomaly

import (
	"drawbias/domain/bias"
	"drawbias/domain/core"
)

// Record holds the diagnostics for one rolling-window endpoint. Step is the
// absolute index of the window's last draw.
type Record struct {
	Step       int     `json:"step"`
	ChiSquare  float64 `json:"chi2_stat"`
	PValue     float64 `json:"chi2_pvalue"`
	EntropyGap float64 `json:"entropy_gap"`
}

// RollingScores slides a fixed-size window with stride 1 across a draw
// sequence and computes chi-square and entropy-gap diagnostics for each
// window against the baseline distribution. One record is produced per
// window, so the output length is len(draws) - windowSize + 1.
func RollingScores(draws []int, baseline []float64, windowSize int) ([]Record, error) {
	if windowSize <= 1 {
		return nil, core.NewInputError("windowSize", "must be greater than 1")
	}
	if err := bias.ValidateDistribution(baseline); err != nil {
		return nil, err
	}
	if len(draws) < windowSize {
		return nil, core.NewInputError("draws", "must contain at least one full window")
	}

	nOutcomes := len(baseline)
	expected := make([]float64, nOutcomes)
	for i, p := range baseline {
		expected[i] = p * float64(windowSize)
	}

	// Counts are maintained incrementally: each slide drops the draw
	// leaving the window and adds the one entering it.
	counts := make([]float64, nOutcomes)
	for _, d := range draws[:windowSize] {
		if d < 0 || d >= nOutcomes {
			return nil, core.NewDrawRangeError(d, nOutcomes)
		}
		counts[d]++
	}

	records := make([]Record, 0, len(draws)-windowSize+1)
	empirical := make([]float64, nOutcomes)

	for end := windowSize; ; end++ {
		statistic, pValue, err := ChiSquareTest(counts, expected)
		if err != nil {
			return nil, err
		}
		for i, c := range counts {
			empirical[i] = c / float64(windowSize)
		}
		gap, err := EntropyGap(empirical, baseline)
		if err != nil {
			return nil, err
		}
		records = append(records, Record{
			Step:       end - 1,
			ChiSquare:  statistic,
			PValue:     pValue,
			EntropyGap: gap,
		})

		if end == len(draws) {
			break
		}
		entering := draws[end]
		if entering < 0 || entering >= nOutcomes {
			return nil, core.NewDrawRangeError(entering, nOutcomes)
		}
		counts[draws[end-windowSize]]--
		counts[entering]++
	}
	return records, nil
}
