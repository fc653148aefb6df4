package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// form is a vertical stack of text inputs with tab/shift+tab focus cycling.
type form struct {
	labels []string
	inputs []textinput.Model
	focus  int
}

type field struct {
	label       string
	placeholder string
	secret      bool
}

func newForm(fields ...field) form {
	f := form{}
	for _, fd := range fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = fd.placeholder
		ti.CharLimit = 200
		if fd.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '•'
		}
		ti.Cursor.SetMode(cursor.CursorStatic)
		f.labels = append(f.labels, fd.label)
		f.inputs = append(f.inputs, ti)
	}
	f.setFocus(0)
	return f
}

func (f *form) setFocus(i int) {
	n := len(f.inputs)
	f.focus = ((i % n) + n) % n
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f form) value(i int) string { return f.inputs[i].Value() }

func (f form) trimmed(i int) string { return strings.TrimSpace(f.inputs[i].Value()) }

func (f *form) set(i int, v string) {
	f.inputs[i].SetValue(v)
	f.inputs[i].CursorEnd()
}

func (f form) onLast() bool { return f.focus == len(f.inputs)-1 }

// update handles focus keys itself and forwards the rest to the focused input.
func (f *form) update(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "tab", "down":
			f.setFocus(f.focus + 1)
			return nil
		case "shift+tab", "up":
			f.setFocus(f.focus - 1)
			return nil
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f form) View() string {
	var b strings.Builder
	for i, in := range f.inputs {
		label := labelStyle.Render(f.labels[i])
		if i == f.focus {
			label = accentStyle.Width(12).Render(f.labels[i])
		}
		b.WriteString(label + in.View() + "\n")
	}
	return b.String()
}
