// internal/game/engine.go
//
// Game session for one player guessing a hidden number.
// Responsibilities:
//   - Hold the current player, range, target and attempt counter.
//   - Validate names, ranges and raw guesses.
//   - Compare guesses with the target and track attempts.
//   - Track state transitions: awaiting_guess → round_won → awaiting_guess.
//
// Notes:
//   - Targets come from a random.Generator so tests can pin them.
//   - Every failing operation leaves the session untouched.
//   - A Session is owned by a single event loop; it is not safe for
//     concurrent use.
package game

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/robalobadob/guessnumber/internal/random"
)

const (
	DefaultMin = 1
	DefaultMax = 100
)

// Session is the mutable state of the game between rounds.
type Session struct {
	gen      random.Generator
	player   string
	min, max int
	target   int
	attempts int
	state    State
}

// NewSession creates a session over [min, max] with a freshly drawn target.
// The player is unset until Start is called.
func NewSession(gen random.Generator, min, max int) (*Session, error) {
	if err := checkRange(min, max); err != nil {
		return nil, err
	}
	if gen == nil {
		gen = random.Crypto{}
	}
	s := &Session{gen: gen, min: min, max: max}
	s.ResetRound()
	return s, nil
}

// Start sets the current player. Range and target are left alone.
func (s *Session) Start(name string) error {
	n, err := normalizeName(name)
	if err != nil {
		return err
	}
	s.player = n
	return nil
}

// SetRange switches to [min, max] and starts a fresh round.
func (s *Session) SetRange(min, max int) error {
	if err := checkRange(min, max); err != nil {
		return err
	}
	s.min, s.max = min, max
	s.ResetRound()
	return nil
}

// EvaluateGuess parses raw and compares it with the target.
//
// Validation rules:
//   - The round must not already be won.
//   - raw must parse as a base-10 integer (surrounding spaces allowed).
//
// Only valid guesses count as attempts. On Correct the session moves to
// RoundWon and the returned Result describes the round; the caller is
// expected to persist it and then call ResetRound.
func (s *Session) EvaluateGuess(raw string) (Outcome, *Result, error) {
	if s.state == RoundWon {
		return "", nil, ErrRoundOver
	}
	guess, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return "", nil, fmt.Errorf("%w: %q is not an integer", ErrInvalidInput, raw)
	}
	s.attempts++

	switch {
	case guess < s.target:
		return TooLow, nil, nil
	case guess > s.target:
		return TooHigh, nil, nil
	}
	s.state = RoundWon
	return Correct, &Result{Player: s.player, Attempts: s.attempts, Target: s.target}, nil
}

// ResetRound zeroes attempts and draws a new target over the current range.
func (s *Session) ResetRound() {
	s.attempts = 0
	s.target = s.gen.Next(s.min, s.max)
	s.state = AwaitingGuess
}

// ChangePlayer replaces the player and starts a fresh round.
func (s *Session) ChangePlayer(name string) error {
	n, err := normalizeName(name)
	if err != nil {
		return err
	}
	s.player = n
	s.ResetRound()
	return nil
}

// Player returns the current player's name ("" before Start).
func (s *Session) Player() string { return s.player }

// Range returns the active closed interval.
func (s *Session) Range() (min, max int) { return s.min, s.max }

// Attempts returns the number of valid guesses made this round.
func (s *Session) Attempts() int { return s.attempts }

// State reports the round lifecycle state.
func (s *Session) State() State { return s.state }

// Target exposes the hidden number. Front ends must not display it.
func (s *Session) Target() int { return s.target }

// ParseRange converts raw bound strings into a validated interval.
func ParseRange(rawMin, rawMax string) (int, int, error) {
	min, err := strconv.Atoi(strings.TrimSpace(rawMin))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: min %q is not an integer", ErrInvalidRange, rawMin)
	}
	max, err := strconv.Atoi(strings.TrimSpace(rawMax))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: max %q is not an integer", ErrInvalidRange, rawMax)
	}
	if err := checkRange(min, max); err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

func checkRange(min, max int) error {
	if min >= max {
		return fmt.Errorf("%w: min %d must be less than max %d", ErrInvalidRange, min, max)
	}
	return nil
}

// normalizeName trims whitespace and rejects empty names.
func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", fmt.Errorf("%w: player name must not be empty", ErrInvalidInput)
	}
	return n, nil
}
