// Package tui renders the interactive screens with Bubble Tea.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/easycontact/internal/auth"
	"github.com/idilsaglam/easycontact/internal/model"
	"github.com/idilsaglam/easycontact/internal/store/todostore"
)

// Backend is the part of the API the screens call directly.
type Backend interface {
	CreateTodo(ctx context.Context, in model.TodoInput) (model.Todo, error)
	GetTodo(ctx context.Context, id string) (model.Todo, error)
	UpdateTodo(ctx context.Context, id string, in model.TodoInput) (model.Todo, error)
	GetProfile(ctx context.Context) (model.UserProfile, error)
	UpdateAvatar(ctx context.Context, avatar string) error
}

// Deps are owned by the application root and shared by reference with every screen.
type Deps struct {
	API   Backend
	Todos *todostore.Store
	Auth  *auth.Flow
	Log   logrus.FieldLogger
}

func (d Deps) ctx() context.Context { return context.Background() }

// Screen is one navigable view. Enter runs when the screen is pushed and
// returns the command that loads its data.
type Screen interface {
	Enter() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View() string
}

type (
	navigateMsg struct{ to Screen }
	replaceMsg  struct{ to Screen } // drop the whole stack
	backMsg     struct{}
	resumedMsg  struct{} // the screen became visible again after a pop
)

func navigate(s Screen) tea.Cmd { return func() tea.Msg { return navigateMsg{to: s} } }
func replace(s Screen) tea.Cmd  { return func() tea.Msg { return replaceMsg{to: s} } }
func back() tea.Msg             { return backMsg{} }

// App is the root model: a stack of screens.
type App struct {
	deps   Deps
	stack  []Screen
	width  int
	height int
}

// NewApp starts on the explore list when a session token is already stored, on login otherwise.
func NewApp(deps Deps) *App {
	if deps.Log == nil {
		deps.Log = logrus.StandardLogger()
	}
	a := &App{deps: deps, width: 80, height: 24}
	if deps.Auth.Resume() == auth.Authenticated {
		a.stack = []Screen{newExploreScreen(deps)}
	} else {
		a.stack = []Screen{newLoginScreen(deps)}
	}
	return a
}

func (a *App) Top() Screen { return a.stack[len(a.stack)-1] }

func (a *App) Init() tea.Cmd { return a.Top().Enter() }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, a.forward(msg)
	case navigateMsg:
		a.stack = append(a.stack, msg.to)
		return a, tea.Batch(a.sizeCmd(), msg.to.Enter())
	case replaceMsg:
		a.stack = []Screen{msg.to}
		return a, tea.Batch(a.sizeCmd(), msg.to.Enter())
	case backMsg:
		if len(a.stack) == 1 {
			return a, tea.Quit
		}
		a.stack = a.stack[:len(a.stack)-1]
		return a, a.forward(resumedMsg{})
	}
	return a, a.forward(msg)
}

func (a *App) forward(msg tea.Msg) tea.Cmd {
	top, cmd := a.Top().Update(msg)
	a.stack[len(a.stack)-1] = top
	return cmd
}

func (a *App) sizeCmd() tea.Cmd {
	w, h := a.width, a.height
	return func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} }
}

func (a *App) View() string { return a.Top().View() }

// Run blocks until the user quits.
func Run(deps Deps) error {
	_, err := tea.NewProgram(NewApp(deps), tea.WithAltScreen()).Run()
	return err
}
