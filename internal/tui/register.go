package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/easycontact/internal/auth"
	"github.com/idilsaglam/easycontact/internal/model"
)

type registerResultMsg struct{ err error }

type registerScreen struct {
	deps    Deps
	form    form
	busy    bool
	success bool
	dlg     dialog
}

func newRegisterScreen(deps Deps) *registerScreen {
	return &registerScreen{
		deps: deps,
		form: newForm(
			field{label: "Username", placeholder: "username"},
			field{label: "Email", placeholder: "you@example.com"},
			field{label: "Password", placeholder: "password", secret: true},
		),
	}
}

func (s *registerScreen) Enter() tea.Cmd { return nil }

func (s *registerScreen) submit() tea.Cmd {
	s.busy = true
	reg := model.Registration{
		Username: s.form.trimmed(0),
		Email:    s.form.trimmed(1),
		Password: s.form.value(2),
	}
	flow, ctx := s.deps.Auth, s.deps.ctx()
	return func() tea.Msg { return registerResultMsg{err: flow.Register(ctx, reg)} }
}

func (s *registerScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case registerResultMsg:
		s.busy = false
		s.success = msg.err == nil
		if msg.err != nil {
			s.dlg.show("Registration Failed", auth.Message(msg.err), true)
		} else {
			s.dlg.show("Success", "Account created. You can log in now.", false)
		}
		return s, nil

	case tea.KeyMsg:
		if s.dlg.visible {
			switch msg.String() {
			case "enter", "esc", " ":
				s.dlg.hide()
				if s.success {
					return s, back
				}
			}
			return s, nil
		}
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, back
		case "enter":
			if s.form.onLast() {
				return s, s.submit()
			}
			s.form.setFocus(s.form.focus + 1)
			return s, nil
		}
	}
	return s, s.form.update(msg)
}

func (s *registerScreen) View() string {
	if s.dlg.visible {
		return s.dlg.View()
	}
	body := titleStyle.Render("Create an account") + "\n\n" + s.form.View() + "\n"
	if s.busy {
		body += mutedStyle.Render("Registering…") + "\n"
	}
	body += helpLine("enter", "register", "tab", "next field", "esc", "back")
	return panelString(body)
}
