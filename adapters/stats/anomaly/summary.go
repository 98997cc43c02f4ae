package anomaly

import (
	"github.com/montanaflynn/stats"

	"drawbias/domain/core"
)

// Summary aggregates a rolling diagnostic series into headline figures for
// reporting and alerting.
type Summary struct {
	Windows        int     `json:"windows"`
	MeanChiSquare  float64 `json:"mean_chi2"`
	MaxChiSquare   float64 `json:"max_chi2"`
	MinPValue      float64 `json:"min_pvalue"`
	MedianGap      float64 `json:"median_entropy_gap"`
	AlarmFraction  float64 `json:"alarm_fraction"` // Share of windows with p < alpha
	SignificanceAt float64 `json:"alpha"`
}

// Summarize reduces rolling records to a Summary at significance level
// alpha.
func Summarize(records []Record, alpha float64) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, core.NewInputError("records", "cannot be empty")
	}
	if alpha <= 0 || alpha >= 1 {
		return Summary{}, core.NewConfigError("alpha", "must lie in (0, 1)")
	}

	chiSeries := make([]float64, len(records))
	pSeries := make([]float64, len(records))
	gapSeries := make([]float64, len(records))
	alarms := 0
	for i, r := range records {
		chiSeries[i] = r.ChiSquare
		pSeries[i] = r.PValue
		gapSeries[i] = r.EntropyGap
		if r.PValue < alpha {
			alarms++
		}
	}

	meanChi, err := stats.Mean(chiSeries)
	if err != nil {
		return Summary{}, err
	}
	maxChi, err := stats.Max(chiSeries)
	if err != nil {
		return Summary{}, err
	}
	minP, err := stats.Min(pSeries)
	if err != nil {
		return Summary{}, err
	}
	medianGap, err := stats.Median(gapSeries)
	if err != nil {
		return Summary{}, err
	}

	return Summary{
		Windows:        len(records),
		MeanChiSquare:  meanChi,
		MaxChiSquare:   maxChi,
		MinPValue:      minP,
		MedianGap:      medianGap,
		AlarmFraction:  float64(alarms) / float64(len(records)),
		SignificanceAt: alpha,
	}, nil
}
