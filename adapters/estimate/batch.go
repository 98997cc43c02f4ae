package estimate

import (
	"drawbias/ports"
)

// Batch replays a full draw sequence through an estimator, returning one
// bias estimate per observation in input order. The estimator is mutated in
// place; re-construct it to reset.
func Batch(estimator ports.BiasEstimator, draws []int) ([][]float64, error) {
	history := make([][]float64, 0, len(draws))
	for _, draw := range draws {
		beta, err := estimator.Observe(draw)
		if err != nil {
			return nil, err
		}
		history = append(history, beta)
	}
	return history, nil
}
