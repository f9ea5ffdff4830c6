// internal/store/store.go
//
// Persistence contract for completed rounds.
// Implementations:
//   - sqlite.go: durable SQLite table "players" (default).
//   - memory.go: ephemeral slice-backed store for tests and throwaway runs.
//
// Both implementations assign ascending ids starting at 1 and restart the
// sequence after Clear.

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrStorage wraps any failure of the underlying persistence medium.
var ErrStorage = errors.New("storage error")

var errClosed = errors.New("store closed")

// Record is one persisted, completed round.
type Record struct {
	ID            int64  // Assigned by the store, ascending.
	PlayerName    string // Player who won the round.
	Attempts      int    // Guesses taken, > 0.
	GuessedNumber int    // The target that was found.
}

// Store defines the persistence interface for round results.
type Store interface {
	// Append persists r and returns it with its assigned ID.
	Append(ctx context.Context, r Record) (Record, error)

	// List returns every record ordered by ID ascending.
	// An empty store yields an empty slice and no error.
	List(ctx context.Context) ([]Record, error)

	// Clear deletes every record and restarts the ID sequence. Atomic.
	Clear(ctx context.Context) error

	// Close releases resources. Safe to call more than once.
	Close() error
}

// validate checks the fields a caller controls before anything is written.
func validate(r Record) (Record, error) {
	r.PlayerName = strings.TrimSpace(r.PlayerName)
	if r.PlayerName == "" {
		return r, errors.New("player name is required")
	}
	if r.Attempts <= 0 {
		return r, fmt.Errorf("attempts must be greater than zero, got %d", r.Attempts)
	}
	return r, nil
}

// storageErr tags err as a medium failure while keeping it inspectable.
func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStorage, op, err)
}
