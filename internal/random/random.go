// internal/random/random.go
//
// Bounded-range random integers for picking round targets.
// Responsibilities:
//   - Draw a uniformly distributed integer in a closed interval [min, max].
//   - Offer deterministic generators so tests (and replays) can pin targets.
//
// Notes:
//   - The default generator uses crypto/rand + math/big, so the span
//     max-min+1 never overflows even for the full int range.

package random

import (
	"crypto/rand"
	"math/big"
)

// Generator yields integers in a closed interval.
type Generator interface {
	// Next returns v with min <= v <= max. Callers guarantee min <= max.
	Next(min, max int) int
}

// Crypto draws from the process-wide crypto/rand reader.
type Crypto struct{}

// Next implements Generator.
func (Crypto) Next(min, max int) int {
	if min > max {
		panic("random: min > max")
	}
	if min == max {
		return min
	}
	span := new(big.Int).Sub(big.NewInt(int64(max)), big.NewInt(int64(min)))
	span.Add(span, big.NewInt(1))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		// crypto/rand only fails when the OS entropy source is gone.
		panic("random: " + err.Error())
	}
	return int(n.Add(n, big.NewInt(int64(min))).Int64())
}

// Fixed always returns the same value, clamped into [min, max].
type Fixed int

// Next implements Generator.
func (f Fixed) Next(min, max int) int {
	return clamp(int(f), min, max)
}

// Sequence replays values in order and then repeats the last one.
// Every value is clamped into the requested interval.
type Sequence struct {
	Values []int
	pos    int
}

// Next implements Generator.
func (s *Sequence) Next(min, max int) int {
	if len(s.Values) == 0 {
		return min
	}
	v := s.Values[s.pos]
	if s.pos < len(s.Values)-1 {
		s.pos++
	}
	return clamp(v, min, max)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
