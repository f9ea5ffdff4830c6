package sound

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessnumber/assets"
)

// WAV plays a wave file through the default audio device.
// A new Play cuts off the one still running.
type WAV struct {
	path string
	rate beep.SampleRate
}

// NewWAV prepares playback of path, or of the built-in cue when path is
// empty or does not exist. The speaker is initialised with the sample rate
// of the first decoded file.
func NewWAV(path string) (*WAV, error) {
	w := &WAV{path: path}
	if path != "" {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			log.Debug().Str("file", path).Msg("sound file missing, using built-in cue")
			w.path = ""
		}
	}

	s, format, err := w.decode()
	if err != nil {
		return nil, err
	}
	_ = s.Close()

	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	w.rate = format.SampleRate
	return w, nil
}

// Play queues the cue and returns immediately.
func (w *WAV) Play() error {
	s, format, err := w.decode()
	if err != nil {
		return err
	}
	var st beep.Streamer = s
	if format.SampleRate != w.rate {
		st = beep.Resample(4, format.SampleRate, w.rate, s)
	}
	speaker.Clear()
	speaker.Play(beep.Seq(st, beep.Callback(func() { _ = s.Close() })))
	return nil
}

// Close stops playback and releases the audio device.
func (w *WAV) Close() error {
	speaker.Close()
	return nil
}

func (w *WAV) decode() (beep.StreamSeekCloser, beep.Format, error) {
	src, err := w.open()
	if err != nil {
		return nil, beep.Format{}, err
	}
	s, format, err := wav.Decode(src)
	if err != nil {
		_ = src.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", w.name(), err)
	}
	return s, format, nil
}

func (w *WAV) open() (io.ReadCloser, error) {
	if w.path == "" {
		return assets.WinCue()
	}
	f, err := os.Open(w.path)
	if err != nil {
		return nil, fmt.Errorf("open sound: %w", err)
	}
	return f, nil
}

func (w *WAV) name() string {
	if w.path == "" {
		return "built-in cue"
	}
	return w.path
}
