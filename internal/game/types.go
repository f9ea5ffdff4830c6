// internal/game/types.go
//
// Core type definitions for the guessing game.
// Defines:
//   - Outcome: result of evaluating one guess (too_low/too_high/correct).
//   - State: where a session is in its round lifecycle.
//   - Result: snapshot of a finished round, ready to be persisted.
//   - The error taxonomy shared by the controller and front ends.

package game

import "errors"

// Outcome represents the evaluation result for a single guess.
// Possible values:
//   - "too_low":  the guess is below the target.
//   - "too_high": the guess is above the target.
//   - "correct":  the guess equals the target; the round is won.
type Outcome string

const (
	TooLow  Outcome = "too_low"
	TooHigh Outcome = "too_high"
	Correct Outcome = "correct"
)

// State is the coarse lifecycle state of a Session.
type State string

const (
	AwaitingGuess State = "awaiting_guess"
	RoundWon      State = "round_won"
)

// Result summarises a won round.
type Result struct {
	Player   string // Name of the player who found the target.
	Attempts int    // Number of evaluated guesses, starting from 1.
	Target   int    // The number that was guessed.
}

var (
	// ErrInvalidInput covers non-integer guesses and empty player names.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRange covers min >= max and non-integer bounds.
	ErrInvalidRange = errors.New("invalid range")

	// ErrRoundOver is returned when guessing after a win without ResetRound.
	ErrRoundOver = errors.New("round already won")
)
