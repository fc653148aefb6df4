package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/easycontact/internal/api"
	"github.com/idilsaglam/easycontact/internal/model"
)

// contactItem adapts model.Todo to bubbles/list.Item
type contactItem struct{ todo model.Todo }

func (i contactItem) Title() string       { return i.todo.Title }
func (i contactItem) Description() string { return i.todo.Description }
func (i contactItem) FilterValue() string { return i.todo.Title + " " + i.todo.Description }

// Two-line rendering: name, then the muted description.
type contactDelegate struct{}

func (d contactDelegate) Height() int                               { return 2 }
func (d contactDelegate) Spacing() int                              { return 0 }
func (d contactDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d contactDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, _ := item.(contactItem)
	prefix := "  "
	title := titleStyle.Render(it.todo.Title)
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}
	desc := it.todo.Description
	if strings.TrimSpace(desc) == "" {
		desc = "—"
	}
	fmt.Fprintf(w, "%s%s\n  %s", prefix, title, mutedStyle.Render(desc))
}

type (
	fetchedMsg struct{ err error }
	deletedMsg struct {
		id  string
		err error
	}
	createdMsg struct {
		todo model.Todo
		err  error
	}
)

type exploreScreen struct {
	deps    Deps
	list    list.Model
	loading bool
	errMsg  string
	notice  string

	confirmID string // delete awaiting y/n
	confirm   dialog
	dlg       dialog

	adding bool
	add    form
}

func newExploreScreen(deps Deps) *exploreScreen {
	l := list.New(nil, contactDelegate{}, 80, 20)
	l.Title = "Explore Contacts"
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.Styles.PaginationStyle = helpStyle
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("contact", "contacts")

	bindings := []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "edit")),
		key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
	}
	l.AdditionalShortHelpKeys = func() []key.Binding { return bindings }
	l.AdditionalFullHelpKeys = func() []key.Binding { return bindings }

	return &exploreScreen{
		deps: deps,
		list: l,
		add: newForm(
			field{label: "Name", placeholder: "Contact name"},
			field{label: "Details", placeholder: "Phone, email, notes…"},
		),
	}
}

// Enter loads the collection from the server.
func (s *exploreScreen) Enter() tea.Cmd {
	s.loading = true
	s.errMsg = ""
	store, ctx := s.deps.Todos, s.deps.ctx()
	return func() tea.Msg { return fetchedMsg{err: store.FetchAll(ctx)} }
}

// refresh mirrors the store's explore list into the widget.
func (s *exploreScreen) refresh() tea.Cmd {
	todos := s.deps.Todos.ExploreTodos()
	items := make([]list.Item, 0, len(todos))
	for _, t := range todos {
		items = append(items, contactItem{todo: t})
	}
	return s.list.SetItems(items)
}

func (s *exploreScreen) selected() (model.Todo, bool) {
	it, ok := s.list.SelectedItem().(contactItem)
	return it.todo, ok
}

func (s *exploreScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h := msg.Height - 4
		if s.adding {
			h -= 5
		}
		s.list.SetSize(msg.Width-4, h)
		return s, nil

	case resumedMsg:
		return s, s.refresh()

	case fetchedMsg:
		s.loading = false
		if msg.err != nil {
			s.errMsg = "Failed to fetch contacts: " + api.UserMessage(msg.err, api.DefaultMessage)
			return s, nil
		}
		return s, s.refresh()

	case deletedMsg:
		s.loading = false
		if msg.err != nil {
			s.dlg.show("Delete Failed", api.UserMessage(msg.err, api.DefaultMessage), true)
			return s, nil
		}
		s.notice = "Contact deleted"
		return s, s.refresh()

	case createdMsg:
		if msg.err != nil {
			s.loading = false
			s.dlg.show("Add Failed", api.UserMessage(msg.err, api.DefaultMessage), true)
			return s, nil
		}
		s.notice = "Added " + msg.todo.Title
		return s, s.Enter()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *exploreScreen) handleKey(msg tea.KeyMsg) (Screen, tea.Cmd) {
	k := msg.String()

	if s.dlg.visible {
		if k == "enter" || k == "esc" || k == " " {
			s.dlg.hide()
		}
		return s, nil
	}

	if s.confirmID != "" {
		switch k {
		case "y", "enter":
			id := s.confirmID
			s.confirmID = ""
			s.confirm.hide()
			s.loading = true
			store, ctx := s.deps.Todos, s.deps.ctx()
			return s, func() tea.Msg { return deletedMsg{id: id, err: store.Delete(ctx, id)} }
		case "n", "esc":
			s.confirmID = ""
			s.confirm.hide()
		}
		return s, nil
	}

	if s.adding {
		switch k {
		case "esc":
			s.adding = false
			return s, nil
		case "enter":
			if !s.add.onLast() {
				s.add.setFocus(s.add.focus + 1)
				return s, nil
			}
			in := model.TodoInput{Title: s.add.trimmed(0), Description: s.add.trimmed(1)}
			if in.Title == "" {
				s.errMsg = "Name cannot be empty"
				return s, nil
			}
			s.adding = false
			s.errMsg = ""
			s.loading = true
			backend, ctx := s.deps.API, s.deps.ctx()
			return s, func() tea.Msg {
				t, err := backend.CreateTodo(ctx, in)
				return createdMsg{todo: t, err: err}
			}
		}
		return s, s.add.update(msg)
	}

	if s.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		s.list, cmd = s.list.Update(msg)
		return s, cmd
	}

	s.notice = ""
	switch k {
	case "q":
		return s, tea.Quit
	case "r":
		return s, s.Enter()
	case "p":
		return s, navigate(newProfileScreen(s.deps))
	case "a":
		s.adding = true
		s.add.set(0, "")
		s.add.set(1, "")
		s.add.setFocus(0)
		return s, nil
	case "d":
		if t, ok := s.selected(); ok {
			s.confirmID = t.ID
			s.confirm.confirm("Confirm Delete", fmt.Sprintf("Are you sure you want to delete %q?", t.Title))
		}
		return s, nil
	case "enter":
		if t, ok := s.selected(); ok {
			return s, navigate(newDetailScreen(s.deps, t.ID))
		}
		return s, nil
	}

	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return s, cmd
}

func (s *exploreScreen) View() string {
	if s.dlg.visible {
		return s.dlg.View()
	}
	if s.confirm.visible {
		return s.confirm.View()
	}

	var b strings.Builder
	if len(s.list.Items()) == 0 && !s.loading {
		b.WriteString(titleStyle.Render("Explore Contacts") + "\n\n")
		b.WriteString(mutedStyle.Render("No contacts available. Add some!") + "\n\n")
		b.WriteString(helpLine("a", "add", "r", "reload", "p", "profile", "q", "quit"))
	} else {
		b.WriteString(s.list.View())
	}
	if s.loading {
		b.WriteString("\n" + mutedStyle.Render("Loading…"))
	}
	if s.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(s.errMsg))
	}
	if s.notice != "" {
		b.WriteString("\n" + successStyle.Render("✔ "+s.notice))
	}
	if s.adding {
		b.WriteString("\n" + panelString(titleStyle.Render("Add contact")+"\n"+s.add.View()))
	}
	return panelString(b.String())
}
