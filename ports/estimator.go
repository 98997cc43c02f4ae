package ports

// BiasEstimator is the capability shared by all streaming estimators:
// consume one observed draw, expose the current bias estimate.
//
// Implementations are purely sequential. State is mutated only after the
// observation has been validated, so a failed Observe leaves the estimator
// exactly as it was.
type BiasEstimator interface {
	// Observe folds one draw into the estimator state and returns a copy
	// of the updated bias coefficient vector.
	Observe(draw int) ([]float64, error)

	// Estimate returns a copy of the current bias coefficient vector
	// without consuming an observation.
	Estimate() []float64

	// Outcomes reports the fixed outcome count the estimator was built for.
	Outcomes() int
}
