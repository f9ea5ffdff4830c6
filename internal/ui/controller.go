// internal/ui/controller.go
//
// Glue between the front ends and the domain.
// Responsibilities:
//   - Forward player input to the game session.
//   - Persist won rounds, ring the win cue and start the next round.
//   - Turn domain results into the short texts the front ends display.
//
// Notes:
//   - Every call runs synchronously on the caller's event loop.
//   - Errors are returned untouched (errors.Is works against
//     game.ErrInvalidInput, game.ErrInvalidRange and store.ErrStorage);
//     the front ends decide how to show them.

package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessnumber/internal/game"
	"github.com/robalobadob/guessnumber/internal/sound"
	"github.com/robalobadob/guessnumber/internal/store"
)

// Controller owns the session, the result store and the sound cue.
type Controller struct {
	session *game.Session
	store   store.Store
	sound   sound.Player
}

// NewController wires the collaborators together. A nil sound player mutes the cue.
func NewController(s *game.Session, st store.Store, p sound.Player) *Controller {
	if p == nil {
		p = sound.Nop{}
	}
	return &Controller{session: s, store: st, sound: p}
}

// Feedback is what a front end shows after a guess.
type Feedback struct {
	Outcome game.Outcome
	Message string
	Record  *store.Record // saved result, set on a persisted win
}

// Session exposes the session for read-only rendering.
func (c *Controller) Session() *game.Session { return c.session }

// SubmitName sets the player at startup.
func (c *Controller) SubmitName(name string) error {
	if err := c.session.Start(name); err != nil {
		return err
	}
	log.Info().Str("player", c.session.Player()).Msg("player joined")
	return nil
}

// Guess evaluates raw against the target.
//
// On a correct guess the result is saved, the cue is played and a new
// round begins. The round is reset even when saving fails; the returned
// feedback still carries the success message alongside the error.
func (c *Controller) Guess(ctx context.Context, raw string) (Feedback, error) {
	out, res, err := c.session.EvaluateGuess(raw)
	if err != nil {
		log.Debug().Err(err).Str("input", raw).Msg("guess rejected")
		return Feedback{}, err
	}

	switch out {
	case game.TooLow:
		return Feedback{Outcome: out, Message: "The number is bigger"}, nil
	case game.TooHigh:
		return Feedback{Outcome: out, Message: "The number is smaller"}, nil
	}

	fb := Feedback{
		Outcome: out,
		Message: fmt.Sprintf("You guessed number %d in %d attempts", res.Target, res.Attempts),
	}
	rec, saveErr := c.store.Append(ctx, store.Record{
		PlayerName:    res.Player,
		Attempts:      res.Attempts,
		GuessedNumber: res.Target,
	})
	if err := c.sound.Play(); err != nil {
		log.Warn().Err(err).Msg("play win cue")
	}
	c.session.ResetRound()

	if saveErr != nil {
		log.Error().Err(saveErr).Str("player", res.Player).Msg("save result")
		return fb, saveErr
	}
	fb.Record = &rec
	log.Info().
		Int64("id", rec.ID).
		Str("player", rec.PlayerName).
		Int("attempts", rec.Attempts).
		Int("number", rec.GuessedNumber).
		Msg("round won")
	return fb, nil
}

// SetRange parses and applies a new range, which starts a fresh round.
func (c *Controller) SetRange(rawMin, rawMax string) (string, error) {
	min, max, err := game.ParseRange(rawMin, rawMax)
	if err != nil {
		return "", err
	}
	if err := c.session.SetRange(min, max); err != nil {
		return "", err
	}
	log.Info().Int("min", min).Int("max", max).Msg("range changed")
	return fmt.Sprintf("Range set to %d - %d. New game started", min, max), nil
}

// ChangePlayer switches to another player and starts a fresh round.
func (c *Controller) ChangePlayer(name string) (string, error) {
	if err := c.session.ChangePlayer(name); err != nil {
		return "", err
	}
	log.Info().Str("player", c.session.Player()).Msg("player changed")
	return fmt.Sprintf("Player %s added", c.session.Player()), nil
}

// Results lists every saved round.
func (c *Controller) Results(ctx context.Context) ([]store.Record, error) {
	recs, err := c.store.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("list results")
		return nil, err
	}
	return recs, nil
}

// ClearResults wipes the store and starts the current player over.
func (c *Controller) ClearResults(ctx context.Context) (string, error) {
	if err := c.store.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("clear results")
		return "", err
	}
	c.session.ResetRound()
	return "All results cleared. New game starts fresh.", nil
}

// Close releases the store and the audio device.
func (c *Controller) Close() error {
	return errors.Join(c.store.Close(), sound.Close(c.sound))
}

// describe maps domain errors to the text shown in error dialogs.
func describe(err error) string {
	switch {
	case errors.Is(err, game.ErrInvalidRange):
		return "Select numbers in a correct range: min must be less than max"
	case errors.Is(err, game.ErrInvalidInput):
		return "Please, enter an integer number"
	case errors.Is(err, game.ErrRoundOver):
		return "This round is already won"
	case errors.Is(err, store.ErrStorage):
		return "Results storage failed: " + err.Error()
	}
	return err.Error()
}
