package ui

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/robalobadob/guessnumber/internal/game"
	"github.com/robalobadob/guessnumber/internal/random"
	"github.com/robalobadob/guessnumber/internal/store"
)

// runPlain feeds input lines to a fresh plain session and returns its output.
func runPlain(t *testing.T, st store.Store, maxPrompts int, lines ...string) (string, *Controller, error) {
	t.Helper()
	sess, err := game.NewSession(&random.Sequence{Values: []int{42, 17}}, 1, 100)
	if err != nil {
		t.Fatal(err)
	}
	ctrl := NewController(sess, st, nil)
	var out bytes.Buffer
	p := NewPlain(ctrl, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	p.MaxNamePrompts = maxPrompts
	err = p.Run(context.Background())
	return out.String(), ctrl, err
}

func TestPlainFullRound(t *testing.T) {
	st := store.NewMemoryStore()
	out, ctrl, err := runPlain(t, st, 0,
		"", "  ", "Ann",
		"10", "abc", "90", "42",
		"/quit",
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{
		"WARNING! Player field shouldn't be empty",
		"Hi Ann! Try to guess a number from 1 to 100.",
		"The number is bigger",
		"ERROR: Please, enter an integer number",
		"The number is smaller",
		"CONGRATULATIONS! You guessed number 42 in 3 attempts",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if n := strings.Count(out, "WARNING!"); n != 2 {
		t.Errorf("name warnings = %d, want 2", n)
	}

	recs, _ := st.List(context.Background())
	want := []store.Record{{ID: 1, PlayerName: "Ann", Attempts: 3, GuessedNumber: 42}}
	if diff := cmp.Diff(want, recs); diff != "" {
		t.Errorf("stored (-want +got):\n%s", diff)
	}
	if ctrl.Session().Target() != 17 || ctrl.Session().Attempts() != 0 {
		t.Errorf("round not reset after win")
	}
}

func TestPlainNamePromptBounded(t *testing.T) {
	_, _, err := runPlain(t, store.NewMemoryStore(), 2, "", " ", "Ann")
	if !errors.Is(err, ErrNoPlayer) {
		t.Errorf("err = %v, want ErrNoPlayer after two blank names", err)
	}
}

func TestPlainNamePromptEOF(t *testing.T) {
	sess, _ := game.NewSession(random.Fixed(5), 1, 10)
	p := NewPlain(NewController(sess, store.NewMemoryStore(), nil), strings.NewReader(""), &bytes.Buffer{})
	if err := p.Run(context.Background()); !errors.Is(err, ErrNoPlayer) {
		t.Errorf("err = %v, want ErrNoPlayer", err)
	}
}

func TestPlainCommands(t *testing.T) {
	st := store.NewMemoryStore()
	out, ctrl, err := runPlain(t, st, 0,
		"Ann",
		"42",
		"/results",
		"/range 5 1",
		"/range 1",
		"/range 10 20",
		"/player",
		"/player Bob",
		"/clear", "n",
		"/results",
		"/clear", "yes",
		"/results",
		"/bogus",
		"/help",
	)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	for _, want := range []string{
		"Ann",
		"ERROR: Select numbers in a correct range",
		"usage: /range MIN MAX",
		"Range set to 10 - 20. New game started",
		"Player Bob added",
		"Clear all saved results? This cannot be undone. [y/N]:",
		"All results cleared. New game starts fresh.",
		"No results saved yet.",
		"unknown command /bogus",
		"/range MIN MAX    set a new range",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q\n%s", want, out)
		}
	}
	if got := strings.Count(out, "Guessed Number"); got != 2 {
		t.Errorf("results table rendered %d times, want 2 (before and after declined clear)", got)
	}
	if ctrl.Session().Player() != "Bob" {
		t.Errorf("player = %q, want Bob", ctrl.Session().Player())
	}
	recs, _ := st.List(context.Background())
	if len(recs) != 0 {
		t.Errorf("store not cleared: %v", recs)
	}
}

func TestPlainEndOfInputEndsQuietly(t *testing.T) {
	_, _, err := runPlain(t, store.NewMemoryStore(), 0, "Ann", "1")
	if err != nil {
		t.Errorf("Run at EOF = %v, want nil", err)
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
	}
	for _, tc := range tests {
		var out bytes.Buffer
		got := Confirm(bufio.NewScanner(strings.NewReader(tc.in)), &out, "Sure?")
		if got != tc.want {
			t.Errorf("Confirm(%q) = %v, want %v", tc.in, got, tc.want)
		}
		if out.String() != "Sure? [y/N]: " {
			t.Errorf("prompt = %q", out.String())
		}
	}
}

func TestRenderResults(t *testing.T) {
	if got := RenderResults(nil); got != "No results saved yet." {
		t.Errorf("empty render = %q", got)
	}
	got := RenderResults([]store.Record{
		{ID: 1, PlayerName: "Ann", Attempts: 3, GuessedNumber: 42},
		{ID: 2, PlayerName: "Bob", Attempts: 7, GuessedNumber: 5},
	})
	for _, want := range []string{"Player Name", "Attempts", "Guessed Number", "Ann", "42", "Bob", "7"} {
		if !strings.Contains(got, want) {
			t.Errorf("render missing %q:\n%s", want, got)
		}
	}
}

func TestPrintResults(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemoryStore()
	if _, err := st.Append(ctx, store.Record{PlayerName: "Ann", Attempts: 2, GuessedNumber: 9}); err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := PrintResults(ctx, st, &out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Ann") {
		t.Errorf("output = %q", out.String())
	}
}
