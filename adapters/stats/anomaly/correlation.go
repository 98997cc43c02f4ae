package anomaly

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"drawbias/domain/core"
)

// OutcomeCorrelation one-hot encodes a draw sequence and returns the
// Pearson correlation matrix between the outcome indicator columns. A
// column with zero variance (an outcome that never or always occurs) would
// produce NaN correlations; those entries are substituted with 0.
func OutcomeCorrelation(draws []int, nOutcomes int) ([][]float64, error) {
	if nOutcomes <= 1 {
		return nil, core.ErrTooFewOutcomes
	}
	if len(draws) == 0 {
		return nil, core.NewInputError("draws", "cannot be empty")
	}

	indicators := mat.NewDense(len(draws), nOutcomes, nil)
	for row, d := range draws {
		if d < 0 || d >= nOutcomes {
			return nil, core.NewDrawRangeError(d, nOutcomes)
		}
		indicators.Set(row, d, 1)
	}

	correlation := mat.NewSymDense(nOutcomes, nil)
	stat.CorrelationMatrix(correlation, indicators, nil)

	out := make([][]float64, nOutcomes)
	for i := range out {
		out[i] = make([]float64, nOutcomes)
		for j := range out[i] {
			v := correlation.At(i, j)
			if math.IsNaN(v) {
				v = 0
			}
			out[i][j] = v
		}
	}
	return out, nil
}
