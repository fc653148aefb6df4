package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/easycontact/internal/api"
	"github.com/idilsaglam/easycontact/internal/model"
)

const updatedMessage = "Todo updated successfully"

type (
	todoLoadedMsg struct {
		todo model.Todo
		err  error
	}
	todoSavedMsg struct {
		todo model.Todo
		err  error
	}
)

type detailScreen struct {
	deps    Deps
	id      string
	todo    *model.Todo
	loading bool
	saving  bool
	errMsg  string
	form    form
	dlg     dialog
	saved   bool
}

func newDetailScreen(deps Deps, id string) *detailScreen {
	return &detailScreen{
		deps: deps,
		id:   id,
		form: newForm(
			field{label: "Title", placeholder: "Title"},
			field{label: "Description", placeholder: "Description"},
		),
	}
}

// Enter fetches the record fresh from the server.
func (s *detailScreen) Enter() tea.Cmd {
	s.loading = true
	backend, ctx, id := s.deps.API, s.deps.ctx(), s.id
	return func() tea.Msg {
		t, err := backend.GetTodo(ctx, id)
		return todoLoadedMsg{todo: t, err: err}
	}
}

func (s *detailScreen) save() tea.Cmd {
	s.saving = true
	s.errMsg = ""
	in := model.TodoInput{Title: s.form.value(0), Description: s.form.value(1)}
	backend, todos, ctx, id := s.deps.API, s.deps.Todos, s.deps.ctx(), s.id
	// The store is updated here so the result lands even if the screen was left.
	return func() tea.Msg {
		t, err := backend.UpdateTodo(ctx, id, in)
		if err == nil {
			todos.Update(t)
			todos.AddToExplore(t)
		}
		return todoSavedMsg{todo: t, err: err}
	}
}

func (s *detailScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case todoLoadedMsg:
		s.loading = false
		if msg.err != nil {
			s.deps.Log.WithError(msg.err).WithField("id", s.id).Error("failed to fetch todo")
			s.errMsg = "Failed to load contact: " + api.UserMessage(msg.err, api.DefaultMessage)
			return s, nil
		}
		t := msg.todo
		s.todo = &t
		s.form.set(0, t.Title)
		s.form.set(1, t.Description)
		return s, nil

	case todoSavedMsg:
		s.saving = false
		if msg.err != nil {
			s.deps.Log.WithError(msg.err).WithField("id", s.id).Error("failed to update todo")
			s.errMsg = "Failed to update: " + api.UserMessage(msg.err, api.DefaultMessage)
			return s, nil
		}
		t := msg.todo
		s.todo = &t
		s.saved = true
		s.dlg.show("Success", updatedMessage, false)
		return s, nil

	case tea.KeyMsg:
		k := msg.String()
		if s.dlg.visible {
			if k == "enter" || k == "esc" || k == " " {
				s.dlg.hide()
				if s.saved {
					return s, back
				}
			}
			return s, nil
		}
		if k == "esc" {
			return s, back
		}
		if s.todo == nil || s.saving {
			return s, nil
		}
		switch k {
		case "ctrl+s":
			return s, s.save()
		case "enter":
			if s.form.onLast() {
				return s, s.save()
			}
			s.form.setFocus(s.form.focus + 1)
			return s, nil
		}
	}
	if s.todo == nil {
		return s, nil
	}
	return s, s.form.update(msg)
}

func (s *detailScreen) View() string {
	if s.dlg.visible {
		return s.dlg.View()
	}
	body := titleStyle.Render("Edit contact") + "\n\n"
	switch {
	case s.loading:
		body += mutedStyle.Render("Loading…") + "\n"
	case s.todo != nil:
		body += s.form.View() + "\n"
	}
	if s.saving {
		body += mutedStyle.Render("Saving…") + "\n"
	}
	if s.errMsg != "" {
		body += errorStyle.Render(s.errMsg) + "\n"
	}
	body += helpLine("ctrl+s", "update", "tab", "next field", "esc", "back")
	return panelString(body)
}
