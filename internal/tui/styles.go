package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ------- styling helpers (Lip Gloss) -------
var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	accentStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)

	selectedStyle = lipgloss.NewStyle().Bold(true).Reverse(true)
	helpStyle     = lipgloss.NewStyle().Faint(true)
	labelStyle    = lipgloss.NewStyle().Faint(true).Width(12)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 2)
)

func panelString(inner string) string { return panelStyle.Render(inner) }

func helpLine(pairs ...string) string {
	parts := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		parts = append(parts, accentStyle.Render(pairs[i])+" "+pairs[i+1])
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

// dialog is a modal message box; the owning screen decides what dismissal does.
type dialog struct {
	visible bool
	title   string
	body    string
	isError bool
	actions string
}

func (d *dialog) show(title, body string, isError bool) {
	d.visible, d.title, d.body, d.isError = true, title, body, isError
	d.actions = helpLine("enter", "OK")
}

func (d *dialog) confirm(title, body string) {
	d.visible, d.title, d.body, d.isError = true, title, body, false
	d.actions = helpLine("y", "confirm", "n", "cancel")
}

func (d *dialog) hide() { *d = dialog{} }

func (d dialog) View() string {
	t := titleStyle.Render(d.title)
	if d.isError {
		t = errorStyle.Render(d.title)
	}
	return dialogStyle.Render(t + "\n\n" + d.body + "\n\n" + d.actions)
}
