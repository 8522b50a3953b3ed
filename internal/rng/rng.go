// Package rng provides the seeded random stream that every dungeon generation
// step draws from. A given seed always reproduces the same sequence of draws,
// shuffles and identifiers.
package rng

import (
	"math/rand"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

// RNG wraps math/rand.Rand with a string seed and a draw counter.
type RNG struct {
	seed  string
	src   *rand.Rand
	draws int64
}

// New creates a stream from a string seed. The seed is hashed with xxhash so
// any printable value works as a seed.
func New(seed string) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(int64(xxhash.Sum64String(seed)))),
	}
}

// FromInt creates a stream from an integer seed. FromInt(42) and New("42")
// produce the same stream.
func FromInt(seed int64) *RNG {
	return New(strconv.FormatInt(seed, 10))
}

// Seed returns the seed the stream was created from.
func (r *RNG) Seed() string {
	return r.seed
}

// Draws returns the number of Next calls made since creation.
func (r *RNG) Draws() int64 {
	return r.draws
}

// Next returns a float in [0, 1).
func (r *RNG) Next() float64 {
	r.draws++
	return r.src.Float64()
}

// Intn returns an integer in [0, n). It returns 0 when n <= 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Next() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

// Chance reports whether a single draw falls below p.
func (r *RNG) Chance(p float64) bool {
	return r.Next() < p
}

// Read fills p with bytes taken from successive draws. It never fails.
func (r *RNG) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.Intn(256))
	}
	return len(p), nil
}

// UUID returns a version 4 shaped identifier built from the stream. It is
// reproducible for a given seed and is not suitable for anything secret.
func (r *RNG) UUID() string {
	return uuid.Must(uuid.NewRandomFromReader(r)).String()
}

// Shuffle returns a Fisher-Yates shuffled copy of items. The input slice is
// left untouched.
func Shuffle[T any](r *RNG, items []T) []T {
	out := slices.Clone(items)
	for i := len(out) - 1; i > 0; i-- {
		j := r.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Sample returns up to n items from a shuffled copy of items.
func Sample[T any](r *RNG, items []T, n int) []T {
	out := Shuffle(r, items)
	if n < len(out) {
		out = out[:max(n, 0)]
	}
	return out
}

// Pick returns a uniformly chosen element, or the zero value for an empty slice.
func Pick[T any](r *RNG, items []T) T {
	var zero T
	if len(items) == 0 {
		return zero
	}
	return items[r.Intn(len(items))]
}
