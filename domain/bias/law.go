package bias

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"drawbias/domain/core"
)

// SumTolerance is the absolute tolerance used when checking that a
// probability vector sums to 1.
const SumTolerance = 1e-9

// Probabilities maps bias coefficients onto a normalized probability vector.
//
// Each outcome starts from the uniform mass 1/nOutcomes and is scaled by
// (1 + beta_i). The adjusted masses are renormalized so the result always
// sums to 1. Negative adjusted mass or a non-positive total is rejected
// rather than clamped.
func Probabilities(nOutcomes int, beta []float64) ([]float64, error) {
	if nOutcomes < 2 {
		return nil, core.ErrTooFewOutcomes
	}
	if len(beta) != nOutcomes {
		return nil, core.NewShapeError(nOutcomes, len(beta))
	}

	base := 1.0 / float64(nOutcomes)
	adjusted := make([]float64, nOutcomes)
	for i, b := range beta {
		adjusted[i] = base * (1.0 + b)
		if adjusted[i] < 0 {
			return nil, core.ErrInvalidBias
		}
	}

	total := floats.Sum(adjusted)
	if total <= 0 {
		return nil, core.ErrMassCollapse
	}

	// Renormalization is skipped when the mass is already unit to avoid
	// introducing rounding noise on the common zero-bias path.
	if math.Abs(total-1.0) > 1e-12 {
		floats.Scale(1.0/total, adjusted)
	}
	return adjusted, nil
}

// BetaFromProbabilities inverts the bias law, recovering the coefficients
// implied by a probability vector relative to the uniform baseline.
func BetaFromProbabilities(probabilities []float64) ([]float64, error) {
	if len(probabilities) == 0 {
		return nil, core.NewInputError("probabilities", "cannot be empty")
	}
	if err := ValidateDistribution(probabilities); err != nil {
		return nil, err
	}

	baseline := 1.0 / float64(len(probabilities))
	beta := make([]float64, len(probabilities))
	for i, p := range probabilities {
		beta[i] = p/baseline - 1.0
	}
	return beta, nil
}

// InverseMassProbabilities converts outcome weights into a probability
// distribution under a simple physical metaphor: heavier outcomes are
// selected less often. Softness controls how quickly probability mass
// decreases with weight.
func InverseMassProbabilities(weights []float64, softness float64) ([]float64, error) {
	if len(weights) == 0 {
		return nil, core.NewInputError("weights", "cannot be empty")
	}
	if softness <= 0 {
		return nil, core.NewConfigError("softness", "must be positive")
	}
	for _, w := range weights {
		if w <= 0 {
			return nil, core.NewInputError("weights", "must be strictly positive")
		}
	}

	inverse := make([]float64, len(weights))
	for i, w := range weights {
		inverse[i] = 1.0 / math.Pow(w, softness)
	}
	total := floats.Sum(inverse)
	floats.Scale(1.0/total, inverse)
	return inverse, nil
}

// WeightProfile builds a default linear weight ramp from 1 to heaviness,
// giving later outcomes heavier tails.
func WeightProfile(nOutcomes int, heaviness float64) ([]float64, error) {
	if nOutcomes < 2 {
		return nil, core.ErrTooFewOutcomes
	}
	if heaviness <= 0 {
		return nil, core.NewConfigError("heaviness", "must be positive")
	}

	weights := make([]float64, nOutcomes)
	step := (heaviness - 1.0) / float64(nOutcomes-1)
	for i := range weights {
		weights[i] = 1.0 + step*float64(i)
	}
	return weights, nil
}

// ValidateDistribution checks that a vector is a probability distribution:
// all entries non-negative and summing to 1 within SumTolerance.
func ValidateDistribution(probabilities []float64) error {
	for _, p := range probabilities {
		if p < 0 || math.IsNaN(p) {
			return core.ErrNotDistribution
		}
	}
	if math.Abs(floats.Sum(probabilities)-1.0) > SumTolerance {
		return core.ErrNotDistribution
	}
	return nil
}

// Uniform returns the unbiased baseline distribution over nOutcomes.
func Uniform(nOutcomes int) []float64 {
	p := make([]float64, nOutcomes)
	for i := range p {
		p[i] = 1.0 / float64(nOutcomes)
	}
	return p
}
