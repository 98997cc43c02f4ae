package ports

import (
	"math/rand"
)

// RNGPort provides seeded random number generation for deterministic simulations
type RNGPort interface {
	// SeededStream creates a deterministic random number generator for a named
	// operation. Equal (name, seed) pairs must yield identical streams so that
	// simulation stages can be replayed independently of each other.
	SeededStream(name string, seed int64) *rand.Rand

	// EntropyStream creates a non-reproducible generator drawing its seed
	// from the environment. Used when a caller deliberately omits a seed.
	EntropyStream() *rand.Rand
}
