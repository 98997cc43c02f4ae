package estimate

import (
	"drawbias/domain/core"
	"drawbias/ports"
)

// initialVariance is the default per-outcome uncertainty: the maximal
// variance a probability-like quantity can exhibit.
const initialVariance = 0.25

// Kalman tracks each outcome's bias coefficient with an independent scalar
// filter rather than a joint one. Each observed draw becomes a per-outcome
// measurement of the one-hot deviation from uniform, expressed in bias
// coefficient units: the observed outcome measures 1-baseline, every other
// outcome measures -baseline.
type Kalman struct {
	nOutcomes      int
	processVar     float64
	observationVar float64
	estimate       []float64
	variance       []float64
}

// NewKalman creates a filter starting from the zero bias vector with
// maximal uncertainty on every outcome.
func NewKalman(nOutcomes int, processVar, observationVar float64) (*Kalman, error) {
	return NewKalmanWithInitial(nOutcomes, processVar, observationVar, nil)
}

// NewKalmanWithInitial creates a filter seeded from a caller-supplied
// estimate vector. A nil initial vector starts at zero.
func NewKalmanWithInitial(nOutcomes int, processVar, observationVar float64, initial []float64) (*Kalman, error) {
	if nOutcomes < 2 {
		return nil, core.ErrTooFewOutcomes
	}
	if processVar <= 0 {
		return nil, core.NewConfigError("processVar", "must be positive")
	}
	if observationVar <= 0 {
		return nil, core.NewConfigError("observationVar", "must be positive")
	}

	estimate := make([]float64, nOutcomes)
	if initial != nil {
		if len(initial) != nOutcomes {
			return nil, core.NewShapeError(nOutcomes, len(initial))
		}
		copy(estimate, initial)
	}

	variance := make([]float64, nOutcomes)
	for i := range variance {
		variance[i] = initialVariance
	}

	return &Kalman{
		nOutcomes:      nOutcomes,
		processVar:     processVar,
		observationVar: observationVar,
		estimate:       estimate,
		variance:       variance,
	}, nil
}

// Observe runs one predict-then-update recursion for every outcome and
// returns a copy of the updated bias estimate.
func (k *Kalman) Observe(draw int) ([]float64, error) {
	if draw < 0 || draw >= k.nOutcomes {
		return nil, core.NewDrawRangeError(draw, k.nOutcomes)
	}

	baseline := 1.0 / float64(k.nOutcomes)
	mean := 0.0
	for i := range k.estimate {
		measurement := -baseline
		if i == draw {
			measurement = 1.0 - baseline
		}

		// Predict: inflate uncertainty by the process noise.
		k.variance[i] += k.processVar

		// Update: blend the measurement in proportionally to the gain.
		gain := k.variance[i] / (k.variance[i] + k.observationVar)
		k.estimate[i] += gain * (measurement - k.estimate[i])
		k.variance[i] *= 1.0 - gain

		mean += k.estimate[i]
	}

	// Recenter so the coefficient vector stays canonical, then clip.
	mean /= float64(k.nOutcomes)
	for i := range k.estimate {
		k.estimate[i] = clamp(k.estimate[i]-mean, -betaClip, betaClip)
	}

	return k.Estimate(), nil
}

// Estimate returns a copy of the current bias coefficient vector.
func (k *Kalman) Estimate() []float64 {
	out := make([]float64, k.nOutcomes)
	copy(out, k.estimate)
	return out
}

// Variances returns a copy of the per-outcome variance estimates.
func (k *Kalman) Variances() []float64 {
	out := make([]float64, k.nOutcomes)
	copy(out, k.variance)
	return out
}

// Outcomes reports the fixed outcome count.
func (k *Kalman) Outcomes() int {
	return k.nOutcomes
}

var _ ports.BiasEstimator = (*Kalman)(nil)
