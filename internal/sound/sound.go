// Package sound plays the short cue that marks a won round.
//
// Playback is fire-and-forget: Play returns once the cue is queued, and a
// failure never changes the outcome of a round. Callers log the error.
package sound

import (
	"io"
	"os"

	"github.com/rs/zerolog/log"
)

// Player is anything that can play the win cue.
type Player interface {
	Play() error
}

// Nop is a muted Player.
type Nop struct{}

// Play does nothing.
func (Nop) Play() error { return nil }

// Bell rings the terminal bell on W.
type Bell struct {
	W io.Writer
}

// Play writes the BEL control character.
func (b Bell) Play() error {
	w := b.W
	if w == nil {
		w = os.Stdout
	}
	_, err := w.Write([]byte{'\a'})
	return err
}

// Options selects a Player.
type Options struct {
	Mute bool   // no sound at all
	File string // WAV file; the built-in cue is used when it is missing
}

// New picks a Player for opts. Audio device problems fall back to the
// terminal bell so the player still gets a cue.
func New(opts Options) Player {
	if opts.Mute {
		return Nop{}
	}
	w, err := NewWAV(opts.File)
	if err != nil {
		log.Warn().Err(err).Str("file", opts.File).Msg("audio unavailable, using terminal bell")
		return Bell{}
	}
	return w
}

// Close releases the audio device if p holds one.
func Close(p Player) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
