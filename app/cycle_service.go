package app

import (
	"time"

	"github.com/google/uuid"

	"drawbias/adapters/estimate"
	"drawbias/adapters/sim"
	"drawbias/adapters/stats/anomaly"
	"drawbias/domain/bias"
	"drawbias/domain/core"
	"drawbias/internal"
	"drawbias/ports"
)

// CycleService runs the full simulate-then-monitor loop: build a weighted
// baseline, drift it, sample draws, and recover the drift with both
// estimators while scoring the stream for anomalies.
type CycleService struct {
	logger *internal.Logger
	rng    ports.RNGPort
}

// NewCycleService creates a cycle service
func NewCycleService(logger *internal.Logger, rng ports.RNGPort) *CycleService {
	return &CycleService{logger: logger, rng: rng}
}

// CycleConfig defines one end-to-end monitoring cycle.
type CycleConfig struct {
	NOutcomes      int
	NSteps         int
	WeightProfile  []float64 // Optional; nil builds and shuffles a default ramp
	Softness       float64   // Weight-to-probability softness exponent
	Smoothing      float64   // EWMA smoothing factor
	ProcessVar     float64   // Kalman process noise variance
	ObservationVar float64   // Kalman observation noise variance
	WindowSize     int       // Rolling diagnostic window, must be < NSteps
	WalkScale      float64   // Drift random-walk scale
	SinAmplitude   float64   // Drift sinusoid amplitude on outcome 0
	SinPeriod      int       // Drift sinusoid period; <= 0 disables
	Clip           float64   // Drift clip bound
	Alpha          float64   // Significance level for the alarm summary
	Seed           *int64    // Optional; nil is non-reproducible
}

// DefaultCycleConfig returns the reference monitoring scenario.
func DefaultCycleConfig() CycleConfig {
	seed := int64(42)
	return CycleConfig{
		NOutcomes:      6,
		NSteps:         400,
		Softness:       1.0,
		Smoothing:      0.05,
		ProcessVar:     1e-4,
		ObservationVar: 0.25,
		WindowSize:     50,
		WalkScale:      0.05,
		SinAmplitude:   0.08,
		SinPeriod:      120,
		Clip:           0.95,
		Alpha:          0.05,
		Seed:           &seed,
	}
}

// CycleResult contains every series produced by one cycle, aligned on the
// step index so estimates can be compared against the ground-truth drift.
type CycleResult struct {
	RunID          string           `json:"run_id"`
	Weights        []float64        `json:"weights"`
	BaselineProbs  []float64        `json:"baseline_probabilities"`
	BaselineBeta   []float64        `json:"baseline_beta"`
	BetaSeries     [][]float64      `json:"beta_series"`
	Probabilities  [][]float64      `json:"probabilities"`
	Draws          []int            `json:"draws"`
	EWMABeta       [][]float64      `json:"ewma_beta"`
	KalmanBeta     [][]float64      `json:"kalman_beta"`
	Anomalies      []anomaly.Record `json:"anomalies"`
	AnomalySummary anomaly.Summary  `json:"anomaly_summary"`
	Correlations   [][]float64      `json:"correlations"`
	RuntimeMs      int64            `json:"runtime_ms"`
}

// Run executes the full cycle.
func (s *CycleService) Run(cfg CycleConfig) (*CycleResult, error) {
	start := time.Now()

	if cfg.NOutcomes < 2 {
		return nil, core.ErrTooFewOutcomes
	}
	if cfg.NSteps <= 0 {
		return nil, core.ErrNonPositiveSteps
	}
	if cfg.WindowSize <= 1 || cfg.WindowSize >= cfg.NSteps {
		return nil, core.NewConfigError("WindowSize", "must lie in (1, NSteps)")
	}

	weights, err := s.resolveWeights(cfg)
	if err != nil {
		return nil, err
	}

	baselineProbs, err := bias.InverseMassProbabilities(weights, cfg.Softness)
	if err != nil {
		return nil, err
	}
	baselineBeta, err := bias.BetaFromProbabilities(baselineProbs)
	if err != nil {
		return nil, err
	}

	driftSeries, err := sim.Drift(sim.DriftConfig{
		NSteps:       cfg.NSteps,
		NOutcomes:    cfg.NOutcomes,
		WalkScale:    cfg.WalkScale,
		SinAmplitude: cfg.SinAmplitude,
		SinPeriod:    cfg.SinPeriod,
		Clip:         cfg.Clip,
		Seed:         deriveSeed(cfg.Seed, 1),
	})
	if err != nil {
		return nil, err
	}

	betaSeries := combineDrift(baselineBeta, driftSeries)

	probabilities := make([][]float64, cfg.NSteps)
	for t, beta := range betaSeries {
		probabilities[t], err = bias.Probabilities(cfg.NOutcomes, beta)
		if err != nil {
			return nil, err
		}
	}

	draws, err := sim.SampleStreaming(betaSeries, deriveSeed(cfg.Seed, 2))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("cycle: sampled %d draws over %d outcomes", len(draws), cfg.NOutcomes)

	ewma, err := estimate.NewEWMA(cfg.NOutcomes, cfg.Smoothing)
	if err != nil {
		return nil, err
	}
	ewmaBeta, err := estimate.Batch(ewma, draws)
	if err != nil {
		return nil, err
	}

	kalman, err := estimate.NewKalman(cfg.NOutcomes, cfg.ProcessVar, cfg.ObservationVar)
	if err != nil {
		return nil, err
	}
	kalmanBeta, err := estimate.Batch(kalman, draws)
	if err != nil {
		return nil, err
	}

	records, err := anomaly.RollingScores(draws, baselineProbs, cfg.WindowSize)
	if err != nil {
		return nil, err
	}
	summary, err := anomaly.Summarize(records, cfg.Alpha)
	if err != nil {
		return nil, err
	}
	correlations, err := anomaly.OutcomeCorrelation(draws, cfg.NOutcomes)
	if err != nil {
		return nil, err
	}

	runtime := time.Since(start).Milliseconds()
	s.logger.Info("cycle complete: %d windows, alarm fraction %.3f, min p %.4g",
		summary.Windows, summary.AlarmFraction, summary.MinPValue)

	return &CycleResult{
		RunID:          uuid.New().String(),
		Weights:        weights,
		BaselineProbs:  baselineProbs,
		BaselineBeta:   baselineBeta,
		BetaSeries:     betaSeries,
		Probabilities:  probabilities,
		Draws:          draws,
		EWMABeta:       ewmaBeta,
		KalmanBeta:     kalmanBeta,
		Anomalies:      records,
		AnomalySummary: summary,
		Correlations:   correlations,
		RuntimeMs:      runtime,
	}, nil
}

// resolveWeights returns the caller's weight profile or builds the default
// ramp and shuffles it so the heavy outcome is not always the last one.
func (s *CycleService) resolveWeights(cfg CycleConfig) ([]float64, error) {
	if cfg.WeightProfile != nil {
		if len(cfg.WeightProfile) != cfg.NOutcomes {
			return nil, core.NewShapeError(cfg.NOutcomes, len(cfg.WeightProfile))
		}
		weights := make([]float64, cfg.NOutcomes)
		copy(weights, cfg.WeightProfile)
		return weights, nil
	}

	weights, err := bias.WeightProfile(cfg.NOutcomes, 1.5)
	if err != nil {
		return nil, err
	}
	stream := s.rng.EntropyStream()
	if cfg.Seed != nil {
		stream = s.rng.SeededStream("weights", *cfg.Seed)
	}
	stream.Shuffle(len(weights), func(i, j int) {
		weights[i], weights[j] = weights[j], weights[i]
	})
	return weights, nil
}

// combineDrift overlays the drift series on the baseline coefficients and,
// when the combination would drive some adjusted mass to zero or below,
// shrinks the drift toward the baseline until the law stays satisfiable.
func combineDrift(baselineBeta []float64, driftSeries [][]float64) [][]float64 {
	betaSeries := make([][]float64, len(driftSeries))
	minAdjusted := 1.0
	for t, drift := range driftSeries {
		step := make([]float64, len(baselineBeta))
		for i := range step {
			step[i] = baselineBeta[i] + drift[i]
			if 1+step[i] < minAdjusted {
				minAdjusted = 1 + step[i]
			}
		}
		betaSeries[t] = step
	}

	if minAdjusted > 0 {
		return betaSeries
	}

	minBaseline := 1.0
	for _, b := range baselineBeta {
		if 1+b < minBaseline {
			minBaseline = 1 + b
		}
	}
	safety := 0.95 * minBaseline
	factor := safety / (safety - minAdjusted)
	if factor < 0.5 {
		factor = 0.5
	}
	for _, step := range betaSeries {
		for i := range step {
			step[i] = baselineBeta[i] + (step[i]-baselineBeta[i])*factor
		}
	}
	return betaSeries
}

// deriveSeed offsets an optional seed so downstream stages draw from
// distinct deterministic streams. A nil seed stays nil.
func deriveSeed(seed *int64, offset int64) *int64 {
	if seed == nil {
		return nil
	}
	derived := *seed + offset
	return &derived
}
