package sim

import (
	"math"

	"drawbias/adapters/rng"
	"drawbias/domain/core"
)

// DriftConfig controls synthetic bias-coefficient drift generation.
type DriftConfig struct {
	NSteps       int     // Number of time steps to simulate
	NOutcomes    int     // Number of categorical outcomes
	WalkScale    float64 // Std dev of the Gaussian random-walk increment
	SinAmplitude float64 // Amplitude of the sinusoid applied to outcome 0
	SinPeriod    int     // Sinusoid period in steps; <= 0 disables it
	Clip         float64 // Maximum absolute bias coefficient, in (0, 1)
	Seed         *int64  // Optional seed; nil is non-reproducible
}

// DefaultDriftConfig returns the reference drift scenario: a slow random
// walk with a cyclical mechanical bias on the first outcome.
func DefaultDriftConfig() DriftConfig {
	seed := int64(7)
	return DriftConfig{
		NSteps:       400,
		NOutcomes:    6,
		WalkScale:    0.03,
		SinAmplitude: 0.08,
		SinPeriod:    120,
		Clip:         0.95,
		Seed:         &seed,
	}
}

// Drift generates a time series of drifting bias vectors.
//
// Every outcome follows a centered Gaussian random walk; the first outcome
// additionally receives a sinusoidal term whose phase is drawn once at the
// start of the simulation. Each step is mean-centered before clipping so the
// coefficient sum stays near zero and the implied probabilities stay valid.
// Identical configs (including seed) reproduce bit-identical series.
func Drift(cfg DriftConfig) ([][]float64, error) {
	if cfg.NOutcomes < 2 {
		return nil, core.ErrTooFewOutcomes
	}
	if cfg.NSteps <= 0 {
		return nil, core.ErrNonPositiveSteps
	}
	if cfg.Clip <= 0 || cfg.Clip >= 1 {
		return nil, core.ErrClipOutOfRange
	}

	stream := rng.Stream(cfg.Seed)
	phase := stream.Float64() * 2 * math.Pi

	series := make([][]float64, cfg.NSteps)
	current := make([]float64, cfg.NOutcomes)

	for t := 0; t < cfg.NSteps; t++ {
		mean := 0.0
		for i := range current {
			current[i] += stream.NormFloat64() * cfg.WalkScale
			mean += current[i]
		}
		mean /= float64(cfg.NOutcomes)
		for i := range current {
			current[i] -= mean
		}

		if cfg.SinPeriod > 0 && cfg.SinAmplitude != 0 {
			current[0] += cfg.SinAmplitude * math.Sin(2*math.Pi*float64(t)/float64(cfg.SinPeriod)+phase)
		}

		step := make([]float64, cfg.NOutcomes)
		for i, v := range current {
			step[i] = clamp(v, -cfg.Clip, cfg.Clip)
			current[i] = step[i]
		}
		series[t] = step
	}
	return series, nil
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
