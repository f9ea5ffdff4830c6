package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// chdirTemp moves into an empty directory so no stray .env is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{
		DBPath:    "Guess_Game.db",
		SoundFile: "sounds/GAME-003.WAV",
		RangeMin:  1,
		RangeMax:  100,
		LogLevel:  "info",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("GUESS_DB_PATH", "/tmp/x.db")
	t.Setenv("GUESS_MUTE", "true")
	t.Setenv("GUESS_RANGE_MIN", "-10")
	t.Setenv("GUESS_RANGE_MAX", "10")
	t.Setenv("GUESS_NAME_PROMPTS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath != "/tmp/x.db" || !cfg.Mute || cfg.RangeMin != -10 || cfg.RangeMax != 10 || cfg.NamePrompts != 3 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("GUESS_RANGE_MAX=500\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv never overrides variables that are already set, so make
	// sure the key is unset for this test and restored afterwards.
	t.Setenv("GUESS_RANGE_MAX", "")
	os.Unsetenv("GUESS_RANGE_MAX")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.RangeMax != 500 {
		t.Errorf("RangeMax = %d, want 500 from .env", cfg.RangeMax)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"inverted range", map[string]string{"GUESS_RANGE_MIN": "10", "GUESS_RANGE_MAX": "1"}, "must be less than"},
		{"equal range", map[string]string{"GUESS_RANGE_MIN": "5", "GUESS_RANGE_MAX": "5"}, "must be less than"},
		{"non-integer", map[string]string{"GUESS_RANGE_MIN": "one"}, "parse env"},
		{"negative prompts", map[string]string{"GUESS_NAME_PROMPTS": "-1"}, "must not be negative"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chdirTemp(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Errorf("Load() err = %v, want containing %q", err, tc.want)
			}
		})
	}
}

func TestSetupLoggingFile(t *testing.T) {
	prev := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prev
		zerolog.SetGlobalLevel(prevLevel)
	})

	path := filepath.Join(t.TempDir(), "game.log")
	c, err := SetupLogging(Config{LogLevel: "debug", LogFile: path}, true)
	if err != nil {
		t.Fatal(err)
	}
	log.Debug().Str("k", "v").Msg("hello")
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), `"message":"hello"`) {
		t.Errorf("log file = %q, want the debug line", b)
	}
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("global level = %s, want debug", zerolog.GlobalLevel())
	}
}
