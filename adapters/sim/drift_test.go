package sim

import (
	"math"
	"testing"

	"drawbias/domain/core"
)

func TestDrift_Reproducible(t *testing.T) {
	cfg := DefaultDriftConfig()
	cfg.NSteps = 200
	cfg.NOutcomes = 4

	first, err := Drift(cfg)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}
	second, err := Drift(cfg)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}

	for tIdx := range first {
		for i := range first[tIdx] {
			if first[tIdx][i] != second[tIdx][i] {
				t.Fatalf("step %d outcome %d: %v != %v (same seed must be bit-identical)",
					tIdx, i, first[tIdx][i], second[tIdx][i])
			}
		}
	}
}

func TestDrift_StaysWithinClip(t *testing.T) {
	seed := int64(0)
	cfg := DriftConfig{
		NSteps:    500,
		NOutcomes: 4,
		WalkScale: 0.2, // Aggressive walk to exercise the clip
		Clip:      0.95,
		Seed:      &seed,
	}
	series, err := Drift(cfg)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}
	if len(series) != cfg.NSteps {
		t.Fatalf("expected %d steps, got %d", cfg.NSteps, len(series))
	}
	for tIdx, step := range series {
		if len(step) != cfg.NOutcomes {
			t.Fatalf("step %d: expected %d outcomes, got %d", tIdx, cfg.NOutcomes, len(step))
		}
		for i, v := range step {
			if math.Abs(v) > cfg.Clip+1e-9 {
				t.Fatalf("step %d outcome %d: %v exceeds clip %v", tIdx, i, v, cfg.Clip)
			}
		}
	}
}

func TestDrift_SinusoidPerturbsFirstOutcome(t *testing.T) {
	seed := int64(3)
	base := DriftConfig{NSteps: 100, NOutcomes: 3, WalkScale: 0.01, Clip: 0.95, Seed: &seed}
	withSin := base
	withSin.SinAmplitude = 0.1
	withSin.SinPeriod = 25

	flat, err := Drift(base)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}
	cyclic, err := Drift(withSin)
	if err != nil {
		t.Fatalf("drift: %v", err)
	}

	// Same seed means identical walk noise, so any divergence comes from
	// the sinusoid. It is injected on outcome 0.
	differs := false
	for tIdx := range flat {
		if flat[tIdx][0] != cyclic[tIdx][0] {
			differs = true
			break
		}
	}
	if !differs {
		t.Fatal("sinusoid had no effect on outcome 0")
	}
}

func TestDrift_ConfigValidation(t *testing.T) {
	cases := []struct {
		name string
		cfg  DriftConfig
	}{
		{"one outcome", DriftConfig{NSteps: 10, NOutcomes: 1, Clip: 0.5}},
		{"zero steps", DriftConfig{NSteps: 0, NOutcomes: 3, Clip: 0.5}},
		{"clip too large", DriftConfig{NSteps: 10, NOutcomes: 3, Clip: 1.0}},
		{"clip zero", DriftConfig{NSteps: 10, NOutcomes: 3, Clip: 0.0}},
	}
	for _, tc := range cases {
		if _, err := Drift(tc.cfg); !core.IsConfigError(err) {
			t.Errorf("%s: expected config error, got %v", tc.name, err)
		}
	}
}
