package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/easycontact/internal/auth"
)

type loginResultMsg struct{ err error }

type loginScreen struct {
	deps    Deps
	form    form
	busy    bool
	success bool
	dlg     dialog
}

func newLoginScreen(deps Deps) *loginScreen {
	return &loginScreen{
		deps: deps,
		form: newForm(
			field{label: "Username", placeholder: "username"},
			field{label: "Password", placeholder: "password", secret: true},
		),
	}
}

func (s *loginScreen) Enter() tea.Cmd { return nil }

func (s *loginScreen) submit() tea.Cmd {
	s.busy = true
	username, password := s.form.trimmed(0), s.form.value(1)
	flow, ctx := s.deps.Auth, s.deps.ctx()
	return func() tea.Msg {
		return loginResultMsg{err: flow.Login(ctx, username, password)}
	}
}

func (s *loginScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		s.busy = false
		if msg.err != nil {
			s.success = false
			s.dlg.show("Login Failed", auth.Message(msg.err), true)
			return s, nil
		}
		s.success = true
		s.dlg.show("Success", auth.LoginSuccessMessage, false)
		return s, nil

	case tea.KeyMsg:
		if s.dlg.visible {
			switch msg.String() {
			case "enter", "esc", " ":
				s.dlg.hide()
				if s.success {
					return s, replace(newExploreScreen(s.deps))
				}
			}
			return s, nil
		}
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, tea.Quit
		case "ctrl+r":
			return s, navigate(newRegisterScreen(s.deps))
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

func (s *loginScreen) View() string {
	if s.dlg.visible {
		return s.dlg.View()
	}
	body := titleStyle.Render("Welcome To Easycontact") + "\n" +
		mutedStyle.Render("Log in to continue") + "\n\n" +
		s.form.View() + "\n"
	if s.busy {
		body += mutedStyle.Render("Signing in…") + "\n"
	}
	body += helpLine("enter", "login", "tab", "next field", "ctrl+r", "register", "esc", "quit")
	return panelString(body)
}
