// internal/ui/plain.go
//
// Line-oriented front end, used when stdin/stdout are not a terminal
// (pipes, scripts, dumb terminals).
//
// Input grammar, one line each:
//   <integer>          a guess
//   /range MIN MAX     set the range and start a new round
//   /player NAME       switch player
//   /results           print saved results
//   /clear             wipe saved results (asks y/n first)
//   /help              list commands
//   /quit              leave
//
// End of input ends the session quietly.

package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/robalobadob/guessnumber/internal/game"
	"github.com/robalobadob/guessnumber/internal/store"
)

// ErrNoPlayer means the name prompt gave up before a valid name was entered.
var ErrNoPlayer = errors.New("no player name entered")

const plainHelp = `Commands:
  <number>          make a guess
  /range MIN MAX    set a new range (starts a new game)
  /player NAME      add a new player
  /results          show saved results
  /clear            clear saved results
  /help             show this help
  /quit             exit the game`

// Plain drives a Controller from line input.
type Plain struct {
	ctrl *Controller
	in   *bufio.Scanner
	out  io.Writer

	// MaxNamePrompts bounds the startup name prompt; 0 asks until a name
	// is given or input ends.
	MaxNamePrompts int
}

// NewPlain reads commands from r and writes dialogs to w.
func NewPlain(ctrl *Controller, r io.Reader, w io.Writer) *Plain {
	return &Plain{ctrl: ctrl, in: bufio.NewScanner(r), out: w}
}

// Run asks for the player's name and then processes lines until /quit or
// end of input.
func (p *Plain) Run(ctx context.Context) error {
	if err := p.askName(); err != nil {
		return err
	}
	min, max := p.ctrl.Session().Range()
	p.printf("Hi %s! Try to guess a number from %d to %d. Type /help for commands.\n", p.ctrl.Session().Player(), min, max)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := p.prompt("> ")
		if !ok {
			return p.in.Err()
		}
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "/") {
			p.guess(ctx, line)
			continue
		}
		if quit := p.command(ctx, line); quit {
			return nil
		}
	}
}

// askName loops until the session accepts a name. There is no recursion:
// each failed attempt just goes round again, up to MaxNamePrompts times.
func (p *Plain) askName() error {
	for i := 0; p.MaxNamePrompts == 0 || i < p.MaxNamePrompts; i++ {
		name, ok := p.prompt("Enter your name: ")
		if !ok {
			return ErrNoPlayer
		}
		if err := p.ctrl.SubmitName(name); err != nil {
			p.println("WARNING! Player field shouldn't be empty")
			continue
		}
		return nil
	}
	return ErrNoPlayer
}

func (p *Plain) guess(ctx context.Context, raw string) {
	fb, err := p.ctrl.Guess(ctx, raw)
	if fb.Outcome == game.Correct {
		p.println("CONGRATULATIONS! " + fb.Message)
	}
	if err != nil {
		p.println("ERROR: " + describe(err))
		return
	}
	if fb.Outcome != game.Correct {
		p.println(fb.Message)
	}
}

// command handles a slash command and reports whether to quit.
func (p *Plain) command(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "/quit", "/exit":
		return true
	case "/help":
		p.println(plainHelp)
	case "/range":
		fields := strings.Fields(arg)
		if len(fields) != 2 {
			p.println("usage: /range MIN MAX")
			return false
		}
		msg, err := p.ctrl.SetRange(fields[0], fields[1])
		if err != nil {
			p.println("ERROR: " + describe(err))
			return false
		}
		p.println(msg)
	case "/player":
		msg, err := p.ctrl.ChangePlayer(arg)
		if err != nil {
			p.println("WARNING! Player field shouldn't be empty")
			return false
		}
		p.println(msg)
	case "/results":
		recs, err := p.ctrl.Results(ctx)
		if err != nil {
			p.println("ERROR: " + describe(err))
			return false
		}
		p.println(RenderResults(recs))
	case "/clear":
		if !Confirm(p.in, p.out, "Clear all saved results? This cannot be undone.") {
			return false
		}
		msg, err := p.ctrl.ClearResults(ctx)
		if err != nil {
			p.println("ERROR: Failed to clear results: " + describe(err))
			return false
		}
		p.println(msg)
	default:
		p.printf("unknown command %s, type /help\n", name)
	}
	return false
}

// prompt writes label and reads one trimmed line; ok is false at end of input.
func (p *Plain) prompt(label string) (string, bool) {
	fmt.Fprint(p.out, label)
	if !p.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(p.in.Text()), true
}

func (p *Plain) println(s string) { fmt.Fprintln(p.out, s) }

func (p *Plain) printf(format string, args ...any) { fmt.Fprintf(p.out, format, args...) }

// Confirm asks a yes/no question on a line reader. Anything but y/yes is no.
func Confirm(in *bufio.Scanner, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	if !in.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(in.Text())) {
	case "y", "yes":
		return true
	}
	return false
}

// PrintResults lists saved results on w; used by the results subcommand.
func PrintResults(ctx context.Context, st store.Store, w io.Writer) error {
	recs, err := st.List(ctx)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, RenderResults(recs))
	return err
}
