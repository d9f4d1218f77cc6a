// Package random provides seed helpers for the dice sources.
//
// A configured seed makes a match reproducible; otherwise crypto/rand supplies
// a high-entropy seed for the pseudo-random dice source.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}

	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// ResolveSeed returns configured when it is non-zero and a fresh crypto seed otherwise.
func ResolveSeed(configured int64) (int64, error) {
	if configured != 0 {
		return configured, nil
	}
	return NewSeed()
}

// NewSource returns a deterministic pseudo-random source for seed.
// The result is not safe for concurrent use; a match rolls from one goroutine.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
