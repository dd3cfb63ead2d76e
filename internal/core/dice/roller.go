// Package dice provides the die rolling capability and the roll log consumed
// by the formula evaluator.
package dice

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Roller produces one random face value per call.
//
// Implementations must return a uniformly distributed outcome in [1, sides]
// for any sides >= 1. The evaluator injects a Roller rather than selecting a
// randomness source itself, so deterministic rollers can be substituted in
// tests and replays.
type Roller interface {
	Roll(sides int) int
}

type randRoller struct {
	rng *rand.Rand
}

// NewSeeded returns a Roller backed by math/rand.
//
// The roller is deterministic with respect to seed: the same seed always
// produces the same outcome sequence for the same sequence of Roll calls.
func NewSeeded(seed int64) Roller {
	return &randRoller{rng: rand.New(rand.NewSource(seed))}
}

func (r *randRoller) Roll(sides int) int {
	return r.rng.Intn(sides) + 1
}

// CryptoSeed draws a non-negative seed from the OS entropy source.
// Live rolls generate their seed here and record it, so any roll can be
// replayed later with NewSeeded.
func CryptoSeed() (int64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	seed := int64(binary.BigEndian.Uint64(buf[:]) >> 1)
	return seed, nil
}
