package sim

import (
	"math/rand"

	"gonum.org/v1/gonum/floats"

	"drawbias/adapters/rng"
	"drawbias/domain/bias"
	"drawbias/domain/core"
)

// SampleFixed draws n independent identically distributed categorical
// samples from a static probability vector. A vector that does not sum to
// exactly 1 is renormalized silently, but negative entries are rejected.
func SampleFixed(probabilities []float64, nTrials int, seed *int64) ([]int, error) {
	if nTrials <= 0 {
		return nil, core.NewInputError("nTrials", "must be positive")
	}
	if len(probabilities) == 0 {
		return nil, core.NewInputError("probabilities", "cannot be empty")
	}
	for _, p := range probabilities {
		if p < 0 {
			return nil, core.ErrNotDistribution
		}
	}

	total := floats.Sum(probabilities)
	if total <= 0 {
		return nil, core.ErrMassCollapse
	}
	normalized := make([]float64, len(probabilities))
	for i, p := range probabilities {
		normalized[i] = p / total
	}

	stream := rng.Stream(seed)
	draws := make([]int, nTrials)
	for i := range draws {
		draws[i] = categorical(stream, normalized)
	}
	return draws, nil
}

// SampleStreaming draws one categorical sample per time step, with step t
// distributed according to the probabilities implied by betaSeries[t]. All
// steps share a single advancing stream, so the full sequence is a
// deterministic function of the seed and the whole bias history.
func SampleStreaming(betaSeries [][]float64, seed *int64) ([]int, error) {
	if len(betaSeries) == 0 {
		return nil, core.NewInputError("betaSeries", "cannot be empty")
	}
	nOutcomes := len(betaSeries[0])

	stream := rng.Stream(seed)
	draws := make([]int, len(betaSeries))
	for t, beta := range betaSeries {
		probabilities, err := bias.Probabilities(nOutcomes, beta)
		if err != nil {
			return nil, err
		}
		draws[t] = categorical(stream, probabilities)
	}
	return draws, nil
}

// BinCounts tallies draws into nOutcomes bins, failing fast on any draw
// outside [0, nOutcomes).
func BinCounts(draws []int, nOutcomes int) ([]float64, error) {
	counts := make([]float64, nOutcomes)
	for _, d := range draws {
		if d < 0 || d >= nOutcomes {
			return nil, core.NewDrawRangeError(d, nOutcomes)
		}
		counts[d]++
	}
	return counts, nil
}

// categorical inverts the CDF of a normalized probability vector.
func categorical(stream *rand.Rand, probabilities []float64) int {
	u := stream.Float64()
	cumulative := 0.0
	for i, p := range probabilities {
		cumulative += p
		if u < cumulative {
			return i
		}
	}
	// Floating rounding can leave the cumulative sum a hair under 1.
	return len(probabilities) - 1
}
