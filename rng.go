package tilemosaic

import "math/rand"

// Source is the randomness the optimizer draws from. *math/rand.Rand
// satisfies it. A Source is not safe for concurrent use.
type Source interface {
	// Intn returns a uniform value in [0, n). n must be positive.
	Intn(n int) int
	// Shuffle pseudo-randomizes the order of n elements.
	Shuffle(n int, swap func(i, j int))
}

// defaultSeed is used when a caller asks for seed 0, so the zero value
// still gives a reproducible stream.
const defaultSeed int64 = 1

// NewRand returns a deterministic Source for seed. Seed 0 maps to a fixed
// default seed.
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}
