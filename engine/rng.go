package engine

import (
	"math"
	"math/rand"
	"sync"
)

// countingSource counts every draw taken from the underlying source, so
// rejection loops inside math/rand are reflected in the position.
type countingSource struct {
	src rand.Source64
	n   int64
}

func (s *countingSource) Int63() int64 {
	s.n++
	return s.src.Int63()
}

func (s *countingSource) Uint64() uint64 {
	s.n++
	return s.src.Uint64()
}

func (s *countingSource) Seed(seed int64) {
	s.src.Seed(seed)
	s.n = 0
}

// RNG wraps math/rand.Rand with deterministic position tracking.
// Position counts source draws, enabling exact save/restore. Calls are
// serialized so concurrent reward events may share one source.
type RNG struct {
	mu   sync.Mutex
	seed int64
	cs   *countingSource
	rnd  *rand.Rand
}

// NewRNG creates a new deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	cs := &countingSource{src: rand.NewSource(seed).(rand.Source64)}
	return &RNG{
		seed: seed,
		cs:   cs,
		rnd:  rand.New(cs),
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Intn(sides) + 1
}

// RollInt returns a random integer in the inclusive range [lower, upper].
// Equal bounds return lower without drawing. Any pair of ints is a valid
// range, including the full int range.
func (r *RNG) RollInt(lower, upper int) int {
	if lower == upper {
		return lower
	}
	if upper < lower {
		lower, upper = upper, lower
	}
	// Width of the range minus one; exact in uint64 even when upper-lower
	// overflows int.
	width := uint64(upper) - uint64(lower)

	r.mu.Lock()
	defer r.mu.Unlock()

	var off uint64
	switch {
	case width < math.MaxInt32:
		off = uint64(r.rnd.Intn(int(width) + 1))
	case width < math.MaxInt64:
		off = uint64(r.rnd.Int63n(int64(width) + 1))
	case width == math.MaxUint64:
		off = r.rnd.Uint64()
	default:
		// At least half the uint64 range, so at least half the draws
		// are accepted.
		off = r.rnd.Uint64()
		for off > width {
			off = r.rnd.Uint64()
		}
	}
	return int(uint64(lower) + off)
}

// CheckHit draws a value in [0, 100) and reports whether it is strictly
// below probability. Probabilities at or outside the bounds never draw.
func (r *RNG) CheckHit(probability float64) bool {
	if probability <= 0 {
		return false
	}
	if probability >= 100 {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rnd.Float64()*100 < probability
}

// Position returns the number of source draws made since creation.
func (r *RNG) Position() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cs.n
}

// RestoreRNG creates an RNG and advances it to the given position.
// This reproduces the exact RNG state for saved sessions.
func RestoreRNG(seed int64, position int64) *RNG {
	rng := NewRNG(seed)
	for i := int64(0); i < position; i++ {
		rng.cs.src.Int63()
	}
	rng.cs.n = position
	return rng
}
