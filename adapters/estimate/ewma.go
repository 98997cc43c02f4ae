package estimate

import (
	"gonum.org/v1/gonum/floats"

	"drawbias/domain/bias"
	"drawbias/domain/core"
	"drawbias/ports"
)

const (
	// betaClip bounds emitted coefficients away from the (-1, 1) edges.
	betaClip = 0.99
	// probabilityFloor prevents zero or negative mass accumulating from
	// floating error during repeated smoothing.
	probabilityFloor = 1e-12
)

// EWMA recovers bias coefficients from a draw stream by exponentially
// smoothing one-hot observations into a probability-vector estimate. The
// probability vector is the canonical state; coefficients are derived from
// it after every update.
type EWMA struct {
	nOutcomes     int
	alpha         float64
	probabilities []float64
	beta          []float64
}

// NewEWMA creates an estimator starting from the uniform distribution.
func NewEWMA(nOutcomes int, alpha float64) (*EWMA, error) {
	return NewEWMAWithInitial(nOutcomes, alpha, nil)
}

// NewEWMAWithInitial creates an estimator seeded with a caller-supplied
// probability vector, which is renormalized to sum to 1. A nil initial
// vector starts uniform.
func NewEWMAWithInitial(nOutcomes int, alpha float64, initial []float64) (*EWMA, error) {
	if nOutcomes < 2 {
		return nil, core.ErrTooFewOutcomes
	}
	if alpha <= 0 || alpha > 1 {
		return nil, core.NewConfigError("alpha", "must lie in (0, 1]")
	}

	var probabilities []float64
	if initial == nil {
		probabilities = bias.Uniform(nOutcomes)
	} else {
		if len(initial) != nOutcomes {
			return nil, core.NewShapeError(nOutcomes, len(initial))
		}
		probabilities = make([]float64, nOutcomes)
		copy(probabilities, initial)
		for i := range probabilities {
			if probabilities[i] < probabilityFloor {
				probabilities[i] = probabilityFloor
			}
		}
		floats.Scale(1.0/floats.Sum(probabilities), probabilities)
	}

	e := &EWMA{
		nOutcomes:     nOutcomes,
		alpha:         alpha,
		probabilities: probabilities,
		beta:          make([]float64, nOutcomes),
	}
	e.deriveBeta()
	return e, nil
}

// Observe folds one draw into the smoothed probability estimate and returns
// a copy of the updated bias coefficients.
func (e *EWMA) Observe(draw int) ([]float64, error) {
	if draw < 0 || draw >= e.nOutcomes {
		return nil, core.NewDrawRangeError(draw, e.nOutcomes)
	}

	for i := range e.probabilities {
		target := 0.0
		if i == draw {
			target = 1.0
		}
		e.probabilities[i] = (1-e.alpha)*e.probabilities[i] + e.alpha*target
		if e.probabilities[i] < probabilityFloor {
			e.probabilities[i] = probabilityFloor
		}
	}
	floats.Scale(1.0/floats.Sum(e.probabilities), e.probabilities)

	e.deriveBeta()
	return e.Estimate(), nil
}

// deriveBeta recomputes coefficients from the probability state, recenters
// them to zero mean, and clips to the working range.
func (e *EWMA) deriveBeta() {
	baseline := 1.0 / float64(e.nOutcomes)
	mean := 0.0
	for i, p := range e.probabilities {
		e.beta[i] = p/baseline - 1.0
		mean += e.beta[i]
	}
	mean /= float64(e.nOutcomes)
	for i := range e.beta {
		e.beta[i] = clamp(e.beta[i]-mean, -betaClip, betaClip)
	}
}

// Estimate returns a copy of the current bias coefficient vector.
func (e *EWMA) Estimate() []float64 {
	out := make([]float64, e.nOutcomes)
	copy(out, e.beta)
	return out
}

// Probabilities returns a copy of the smoothed probability estimate.
func (e *EWMA) Probabilities() []float64 {
	out := make([]float64, e.nOutcomes)
	copy(out, e.probabilities)
	return out
}

// Outcomes reports the fixed outcome count.
func (e *EWMA) Outcomes() int {
	return e.nOutcomes
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ ports.BiasEstimator = (*EWMA)(nil)
