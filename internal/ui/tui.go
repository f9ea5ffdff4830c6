package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/robalobadob/guessnumber/internal/game"
	"github.com/robalobadob/guessnumber/internal/store"
)

// ---------- screens ----------

type mode int

const (
	modeName         mode = iota // startup name prompt, shown until a name is accepted
	modePlay                     // guess entry
	modeRange                    // two bound fields
	modePlayer                   // new player name
	modeConfirmClear             // y/n before wiping results
	modeResults                  // results table
)

// dialog is a modal message dismissed with enter, esc or space.
type dialog struct {
	title string
	text  string
	kind  dialogKind
}

type dialogKind int

const (
	dialogInfo dialogKind = iota
	dialogWarn
	dialogError
)

// ---------- styles ----------

var (
	appStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	feedbackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Bold(true)

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true)

	dialogStyles = map[dialogKind]lipgloss.Style{
		dialogInfo:  dialogBorder("63"),
		dialogWarn:  dialogBorder("214"),
		dialogError: dialogBorder("196"),
	}

	resultsBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("37"))
)

func dialogBorder(color string) lipgloss.Style {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(color)).
		Padding(0, 1)
}

// ---------- model ----------

// Model is the bubbletea model for the full-screen game.
type Model struct {
	ctx  context.Context
	ctrl *Controller

	mode     mode
	input    textinput.Model    // name, guess and new-player entry
	bounds   [2]textinput.Model // min/max entry
	boundIdx int                // focused bound field

	// At most one live results view; opening again replaces it.
	results *table.Model

	dialog   *dialog
	feedback string
}

// NewModel starts at the name prompt.
func NewModel(ctx context.Context, ctrl *Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = 64
	ti.Width = 30
	ti.Focus()

	var bounds [2]textinput.Model
	for i := range bounds {
		b := textinput.New()
		b.CharLimit = 19
		b.Width = 8
		bounds[i] = b
	}

	return Model{ctx: ctx, ctrl: ctrl, mode: modeName, input: ti, bounds: bounds}
}

// RunTUI runs the full-screen game until the player quits.
func RunTUI(ctx context.Context, ctrl *Controller) error {
	p := tea.NewProgram(NewModel(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if w := msg.Width - 8; w > 10 && w < 40 {
			m.input.Width = w
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.dialog != nil {
			switch msg.String() {
			case "enter", "esc", " ":
				m.dialog = nil
			}
			return m, nil
		}
		switch m.mode {
		case modeName:
			return m.updateName(msg)
		case modePlay:
			return m.updatePlay(msg)
		case modeRange:
			return m.updateRange(msg)
		case modePlayer:
			return m.updatePlayer(msg)
		case modeConfirmClear:
			return m.updateConfirm(msg)
		case modeResults:
			return m.updateResults(msg)
		}
	}

	// Non-key messages (cursor blink) go to whatever has focus.
	return m.updateFocused(msg)
}

func (m Model) updateName(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "enter":
		err := m.ctrl.SubmitName(m.input.Value())
		m.input.Reset()
		if err != nil {
			m.dialog = &dialog{title: "WARNING!", text: "Player field shouldn't be empty", kind: dialogWarn}
			return m, nil
		}
		m.toPlay()
		min, max := m.ctrl.Session().Range()
		m.feedback = fmt.Sprintf("Hi %s! Try to guess a number from %d to %d", m.ctrl.Session().Player(), min, max)
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updatePlay(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit
	case "enter":
		return m.submitGuess()
	case "ctrl+r":
		min, max := m.ctrl.Session().Range()
		m.bounds[0].SetValue(fmt.Sprint(min))
		m.bounds[1].SetValue(fmt.Sprint(max))
		m.focusBound(0)
		m.input.Blur()
		m.mode = modeRange
		return m, nil
	case "ctrl+n":
		m.input.Reset()
		m.input.Placeholder = "new player name"
		m.mode = modePlayer
		return m, nil
	case "ctrl+t":
		m.openResults()
		return m, nil
	case "ctrl+x":
		m.mode = modeConfirmClear
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submitGuess() (tea.Model, tea.Cmd) {
	raw := m.input.Value()
	m.input.Reset()
	fb, err := m.ctrl.Guess(m.ctx, raw)

	if fb.Outcome == game.Correct {
		m.feedback = ""
		text := fb.Message
		kind := dialogInfo
		if err != nil {
			text += "\n\n" + describe(err)
			kind = dialogError
		}
		m.dialog = &dialog{title: "CONGRATULATIONS!", text: text, kind: kind}
		return m, nil
	}
	if err != nil {
		m.dialog = &dialog{title: "Error", text: describe(err), kind: dialogError}
		return m, nil
	}
	m.feedback = fb.Message
	return m, nil
}

func (m Model) updateRange(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.toPlay()
		return m, nil
	case "tab", "shift+tab", "up", "down":
		m.focusBound(1 - m.boundIdx)
		return m, nil
	case "enter":
		text, err := m.ctrl.SetRange(m.bounds[0].Value(), m.bounds[1].Value())
		if err != nil {
			m.dialog = &dialog{title: "ERROR", text: describe(err), kind: dialogError}
			return m, nil
		}
		m.toPlay()
		m.feedback = ""
		m.dialog = &dialog{title: "Range set", text: text, kind: dialogInfo}
		return m, nil
	}
	var cmd tea.Cmd
	m.bounds[m.boundIdx], cmd = m.bounds[m.boundIdx].Update(msg)
	return m, cmd
}

func (m Model) updatePlayer(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.toPlay()
		return m, nil
	case "enter":
		text, err := m.ctrl.ChangePlayer(m.input.Value())
		m.toPlay()
		if err != nil {
			m.dialog = &dialog{title: "WARNING!", text: "Player field shouldn't be empty", kind: dialogWarn}
			return m, nil
		}
		m.feedback = ""
		m.dialog = &dialog{title: "New Player", text: text, kind: dialogInfo}
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch strings.ToLower(msg.String()) {
	case "y":
		text, err := m.ctrl.ClearResults(m.ctx)
		m.toPlay()
		if err != nil {
			m.dialog = &dialog{title: "Error", text: "Failed to clear results:\n" + describe(err), kind: dialogError}
			return m, nil
		}
		m.results = nil
		m.feedback = ""
		m.dialog = &dialog{title: "Done", text: text, kind: dialogInfo}
	case "n", "esc", "enter":
		m.toPlay()
	}
	return m, nil
}

func (m Model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "enter":
		m.results = nil
		m.toPlay()
		return m, nil
	case "ctrl+t":
		m.openResults()
		return m, nil
	case "ctrl+x":
		m.mode = modeConfirmClear
		return m, nil
	}
	t, cmd := m.results.Update(msg)
	m.results = &t
	return m, cmd
}

func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.mode {
	case modeName, modePlay, modePlayer:
		m.input, cmd = m.input.Update(msg)
	case modeRange:
		m.bounds[m.boundIdx], cmd = m.bounds[m.boundIdx].Update(msg)
	}
	return m, cmd
}

// openResults loads the results into a fresh table, replacing any open one.
func (m *Model) openResults() {
	recs, err := m.ctrl.Results(m.ctx)
	if err != nil {
		m.dialog = &dialog{title: "Error", text: describe(err), kind: dialogError}
		return
	}
	t := newResultsTable(recs)
	m.results = &t
	m.input.Blur()
	m.mode = modeResults
}

func (m *Model) toPlay() {
	m.mode = modePlay
	m.input.Reset()
	m.input.Placeholder = "your guess"
	m.input.Focus()
	m.bounds[0].Blur()
	m.bounds[1].Blur()
}

func (m *Model) focusBound(i int) {
	m.boundIdx = i
	m.bounds[i].Focus()
	m.bounds[1-i].Blur()
}

func newResultsTable(recs []store.Record) table.Model {
	cols := []table.Column{
		{Title: resultHeaders[0], Width: 16},
		{Title: resultHeaders[1], Width: 10},
		{Title: resultHeaders[2], Width: 16},
	}
	rows := make([]table.Row, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, table.Row(resultRow(r)))
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("230")).
		Background(lipgloss.Color("37")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// ---------- view ----------

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Guess Number"))
	b.WriteString("\n\n")

	sess := m.ctrl.Session()
	switch m.mode {
	case modeName:
		b.WriteString("Enter your name\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("enter confirm • esc quit"))

	case modeResults:
		b.WriteString(labelStyle.Render("Player Results"))
		b.WriteString("\n")
		if len(m.results.Rows()) == 0 {
			b.WriteString("No results saved yet.")
		} else {
			b.WriteString(resultsBorderStyle.Render(m.results.View()))
		}
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("↑/↓ scroll • ctrl+t reload • ctrl+x clear • esc close"))

	default:
		min, max := sess.Range()
		fmt.Fprintf(&b, "%s %s   %s %d - %d   %s %d\n\n",
			labelStyle.Render("Player"), sess.Player(),
			labelStyle.Render("Range"), min, max,
			labelStyle.Render("Attempts"), sess.Attempts())
		b.WriteString(m.modeBody())
	}

	out := b.String()
	if m.dialog != nil {
		out += "\n\n" + renderDialog(*m.dialog, "enter ok")
	}
	return appStyle.Render(out)
}

func (m Model) modeBody() string {
	var b strings.Builder
	switch m.mode {
	case modeRange:
		for i, label := range []string{"Min Number", "Max Number"} {
			st := labelStyle
			if i == m.boundIdx {
				st = focusedLabelStyle
			}
			fmt.Fprintf(&b, "%s %s\n", st.Render(label), m.bounds[i].View())
		}
		b.WriteString("\n")
		b.WriteString(hintStyle.Render("tab switch field • enter set range • esc cancel"))

	case modePlayer:
		b.WriteString("Enter the name of the new player\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		b.WriteString(hintStyle.Render("enter add • esc cancel"))

	case modeConfirmClear:
		b.WriteString(renderDialog(dialog{
			title: "Confirm",
			text:  "Clear all saved results? This cannot be undone.",
			kind:  dialogWarn,
		}, "y yes • n no"))

	default:
		b.WriteString("Try to guess the number from the selected range\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
		if m.feedback != "" {
			b.WriteString(feedbackStyle.Render(m.feedback))
			b.WriteString("\n\n")
		}
		b.WriteString(hintStyle.Render("enter submit • ctrl+r range • ctrl+n new player • ctrl+t results • ctrl+x clear • esc quit"))
	}
	return b.String()
}

func renderDialog(d dialog, hint string) string {
	body := lipgloss.NewStyle().Bold(true).Render(d.title) + "\n" + d.text + "\n\n" + hintStyle.Render(hint)
	return dialogStyles[d.kind].Render(body)
}
