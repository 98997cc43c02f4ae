package rng

import (
	"hash/fnv"
	"math/rand"
	"time"

	"drawbias/ports"
)

// SeededFactory creates independent deterministic random streams. Each named
// stream mixes the stage name into the base seed, so separate simulation
// stages sharing one run seed still draw from mutually independent streams.
type SeededFactory struct{}

// NewSeededFactory creates a seeded stream factory
func NewSeededFactory() *SeededFactory {
	return &SeededFactory{}
}

// SeededStream returns a deterministic generator for a named operation.
func (f *SeededFactory) SeededStream(name string, seed int64) *rand.Rand {
	h := fnv.New64a()
	h.Write([]byte(name))
	mixed := seed ^ int64(h.Sum64())
	return rand.New(rand.NewSource(mixed))
}

// EntropyStream returns a non-reproducible generator seeded from the clock.
func (f *SeededFactory) EntropyStream() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Stream resolves an optional seed into a generator. A nil seed draws
// entropy from the clock and yields a non-reproducible stream.
func Stream(seed *int64) *rand.Rand {
	if seed == nil {
		return NewSeededFactory().EntropyStream()
	}
	return rand.New(rand.NewSource(*seed))
}

var _ ports.RNGPort = (*SeededFactory)(nil)
