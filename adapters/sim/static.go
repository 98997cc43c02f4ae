package sim

import (
	"math"

	"drawbias/adapters/rng"
	"drawbias/domain/bias"
	"drawbias/domain/core"
)

// Physical constants for the Coulomb-inspired charge-to-bias mapping.
// Exposed so experiments can document exactly which regime was simulated.
const (
	CoulombConstant     = 8.9875517923e9 // N·m²·C⁻²
	PairwiseDistanceM   = 0.05           // Assumed average ball separation
	ChargeBetaScale     = 1e-6           // Newtons → dimensionless bias
	MechanicalBetaScale = 0.01           // Residual non-electrostatic variability
	StaticBetaClip      = 0.95
)

// StaticConfig controls the electrostatic charge-accumulation toy model.
type StaticConfig struct {
	NOutcomes     int
	ChargeScale   float64 // Std dev of the Gaussian charge prior, in Coulombs
	Humidity      float64 // Relative humidity percentage; damps charge
	TrialsPerDraw int     // Synthetic draws used to produce counts
	Seed          *int64
}

// DefaultStaticConfig returns the reference electrostatic scenario.
func DefaultStaticConfig() StaticConfig {
	return StaticConfig{
		NOutcomes:     6,
		ChargeScale:   1e-9,
		Humidity:      40.0,
		TrialsPerDraw: 200,
	}
}

// StaticResult is the structured output of SimulateWithStatic.
type StaticResult struct {
	Charges       []float64 `json:"q"`      // Per-outcome charge in Coulombs
	Beta          []float64 `json:"beta"`   // Combined bias coefficients
	Probabilities []float64 `json:"probs"`  // Probabilities under the bias law
	Counts        []float64 `json:"counts"` // Synthetic multinomial counts
}

// humidityScale maps relative humidity to a charge damping multiplier. High
// humidity dissipates charge quickly; dry air lets it accumulate. Linear
// attenuation clipped to [0.1, 1.0].
func humidityScale(humidity float64) float64 {
	return clamp(1.0-humidity/100.0, 0.1, 1.0)
}

// SimulateWithStatic models outcome bias caused by electrostatic charge
// accumulation: per-outcome charges are sampled and damped by humidity, the
// net Coulomb force on each ball is converted to a bias contribution, small
// mechanical noise is added, and the combined bias vector is pushed through
// the probability law to produce synthetic draw counts.
func SimulateWithStatic(cfg StaticConfig) (*StaticResult, error) {
	if cfg.NOutcomes < 2 {
		return nil, core.ErrTooFewOutcomes
	}
	if cfg.TrialsPerDraw <= 0 {
		return nil, core.NewConfigError("TrialsPerDraw", "must be positive")
	}

	stream := rng.Stream(cfg.Seed)
	damping := humidityScale(cfg.Humidity)

	charges := make([]float64, cfg.NOutcomes)
	netCharge := 0.0
	for i := range charges {
		charges[i] = stream.NormFloat64() * cfg.ChargeScale * damping
		netCharge += charges[i]
	}

	beta := make([]float64, cfg.NOutcomes)
	for i, q := range charges {
		force := CoulombConstant * q * (netCharge - q) / (PairwiseDistanceM * PairwiseDistanceM)
		electrostatic := clamp(force*ChargeBetaScale, -StaticBetaClip, StaticBetaClip)
		mechanical := stream.NormFloat64() * MechanicalBetaScale
		beta[i] = clamp(electrostatic+mechanical, -StaticBetaClip, StaticBetaClip)
	}

	probabilities, err := bias.Probabilities(cfg.NOutcomes, beta)
	if err != nil {
		return nil, err
	}

	counts := make([]float64, cfg.NOutcomes)
	for i := 0; i < cfg.TrialsPerDraw; i++ {
		counts[categorical(stream, probabilities)]++
	}

	return &StaticResult{
		Charges:       charges,
		Beta:          beta,
		Probabilities: probabilities,
		Counts:        counts,
	}, nil
}

// EstimateStaticEffect fits a one-parameter linear model linking per-outcome
// charge to log-odds deviation from the fair baseline. A positive slope
// suggests higher positive charge increases the odds of being drawn.
func EstimateStaticEffect(charges, counts []float64, trials int) (float64, error) {
	if len(charges) != len(counts) {
		return 0, core.NewShapeError(len(charges), len(counts))
	}
	if len(charges) == 0 {
		return 0, core.NewInputError("charges", "cannot be empty")
	}
	if trials <= 0 {
		return 0, core.NewInputError("trials", "must be positive")
	}

	n := len(charges)
	baselineLogit := logit(1.0 / float64(n))

	chargeMean := 0.0
	for _, q := range charges {
		chargeMean += q
	}
	chargeMean /= float64(n)

	numerator := 0.0
	denominator := 1e-24
	for i, q := range charges {
		observed := clamp(counts[i]/float64(trials), 1e-9, 1-1e-9)
		y := logit(observed) - baselineLogit
		centered := q - chargeMean
		numerator += centered * y
		denominator += centered * centered
	}
	return numerator / denominator, nil
}

func logit(p float64) float64 {
	return math.Log(p / (1.0 - p))
}
