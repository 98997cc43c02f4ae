package anomaly

import (
	"gonum.org/v1/gonum/stat/distuv"

	"drawbias/domain/core"
)

// ChiSquareTest computes the goodness-of-fit statistic between observed and
// expected count vectors and the upper-tail p-value under a chi-square
// distribution with len(observed)-1 degrees of freedom. Expected counts
// must all be strictly positive.
func ChiSquareTest(observed, expected []float64) (statistic, pValue float64, err error) {
	if len(observed) != len(expected) {
		return 0, 0, core.NewShapeError(len(observed), len(expected))
	}
	if len(observed) < 2 {
		return 0, 0, core.NewInputError("observed", "needs at least two bins")
	}
	for _, e := range expected {
		if e <= 0 {
			return 0, 0, core.NewInputError("expected", "counts must be strictly positive")
		}
	}

	for i := range observed {
		diff := observed[i] - expected[i]
		statistic += diff * diff / expected[i]
	}

	dist := distuv.ChiSquared{K: float64(len(observed) - 1)}
	pValue = 1 - dist.CDF(statistic)
	return statistic, pValue, nil
}
