package anomaly

import (
	"math"

	"drawbias/domain/bias"
	"drawbias/domain/core"
)

// ShannonEntropy computes entropy in bits for a discrete probability
// vector. Zero-probability outcomes contribute nothing rather than NaN.
func ShannonEntropy(probabilities []float64) (float64, error) {
	if len(probabilities) == 0 {
		return 0, core.NewInputError("probabilities", "cannot be empty")
	}
	if err := bias.ValidateDistribution(probabilities); err != nil {
		return 0, err
	}

	entropy := 0.0
	for _, p := range probabilities {
		if p > 0 {
			entropy -= p * math.Log2(p)
		}
	}
	return entropy, nil
}

// EntropyGap computes the Shannon entropy difference between an empirical
// distribution and a baseline of the same shape. A negative gap indicates
// the empirical distribution is more concentrated than the baseline.
func EntropyGap(empirical, baseline []float64) (float64, error) {
	if len(empirical) != len(baseline) {
		return 0, core.NewShapeError(len(baseline), len(empirical))
	}

	empiricalEntropy, err := ShannonEntropy(empirical)
	if err != nil {
		return 0, err
	}
	baselineEntropy, err := ShannonEntropy(baseline)
	if err != nil {
		return 0, err
	}
	return empiricalEntropy - baselineEntropy, nil
}
