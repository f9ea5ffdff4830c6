// Package config loads runtime settings from the environment.
//
// Sources, highest priority first:
//  1. Process environment.
//  2. A .env file in the working directory (optional).
//  3. Struct defaults below.
package config

import (
	"fmt"
	"io"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds everything the game reads at startup.
type Config struct {
	DBPath      string `env:"GUESS_DB_PATH" envDefault:"Guess_Game.db"`
	SoundFile   string `env:"GUESS_SOUND_FILE" envDefault:"sounds/GAME-003.WAV"`
	Mute        bool   `env:"GUESS_MUTE" envDefault:"false"`
	RangeMin    int    `env:"GUESS_RANGE_MIN" envDefault:"1"`
	RangeMax    int    `env:"GUESS_RANGE_MAX" envDefault:"100"`
	NamePrompts int    `env:"GUESS_NAME_PROMPTS" envDefault:"0"` // plain mode; 0 = ask until answered
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	LogFile     string `env:"LOG_FILE"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RangeMin >= cfg.RangeMax {
		return Config{}, fmt.Errorf("GUESS_RANGE_MIN (%d) must be less than GUESS_RANGE_MAX (%d)", cfg.RangeMin, cfg.RangeMax)
	}
	if cfg.NamePrompts < 0 {
		return Config{}, fmt.Errorf("GUESS_NAME_PROMPTS must not be negative, got %d", cfg.NamePrompts)
	}
	return cfg, nil
}

// SetupLogging points the global zerolog logger at the right sink.
//
// With LOG_FILE set, logs are appended there. Otherwise interactive
// (full-screen) runs discard them so they do not tear the display, and
// line-mode runs write human-readable output to stderr.
// The returned closer must be called on exit.
func SetupLogging(cfg Config, interactive bool) (io.Closer, error) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return f, nil
	case interactive:
		log.Logger = zerolog.New(io.Discard)
	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
	return nopCloser{}, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
