package assets

import (
	"bytes"
	"embed"
	"io"
)

//go:embed win.wav
var FS embed.FS

// WinCue opens the built-in win sound, used when no sound file is configured
// or the configured one is missing.
func WinCue() (io.ReadSeekCloser, error) {
	b, err := FS.ReadFile("win.wav")
	if err != nil {
		return nil, err
	}
	return nopCloser{bytes.NewReader(b)}, nil
}

type nopCloser struct{ io.ReadSeeker }

func (nopCloser) Close() error { return nil }
