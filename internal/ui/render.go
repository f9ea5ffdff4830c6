package ui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/robalobadob/guessnumber/internal/store"
)

var resultHeaders = []string{"Player Name", "Attempts", "Guessed Number"}

// RenderResults draws records as a bordered text table for line output.
func RenderResults(recs []store.Record) string {
	if len(recs) == 0 {
		return "No results saved yet."
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(resultHeaders...).
		StyleFunc(func(row, col int) lipgloss.Style {
			return lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Center)
		})
	for _, r := range recs {
		t.Row(resultRow(r)...)
	}
	return t.Render()
}

func resultRow(r store.Record) []string {
	return []string{r.PlayerName, strconv.Itoa(r.Attempts), strconv.Itoa(r.GuessedNumber)}
}
