package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/easycontact/internal/api"
	"github.com/idilsaglam/easycontact/internal/api/apitest"
	"github.com/idilsaglam/easycontact/internal/auth"
	"github.com/idilsaglam/easycontact/internal/logger"
	"github.com/idilsaglam/easycontact/internal/model"
	"github.com/idilsaglam/easycontact/internal/session"
	"github.com/idilsaglam/easycontact/internal/store/todostore"
)

type harness struct {
	t      *testing.T
	srv    *apitest.Server
	tokens session.Store
	deps   Deps
	app    *App
}

func newHarness(t *testing.T, loggedIn bool, seed ...model.Todo) *harness {
	t.Helper()
	srv := apitest.New()
	t.Cleanup(srv.Close)
	srv.AddUser("alice", "secret", "abc123")
	srv.Seed(seed...)

	tokens := session.NewFileStore(t.TempDir())
	if loggedIn {
		require.NoError(t, tokens.Set("abc123"))
	}
	log := logger.Discard()
	client := api.New(srv.URL, tokens, api.WithLogger(log))
	deps := Deps{
		API:   client,
		Todos: todostore.New(client, log),
		Auth:  auth.NewFlow(client, tokens, log),
		Log:   log,
	}
	h := &harness{t: t, srv: srv, tokens: tokens, deps: deps, app: NewApp(deps)}
	h.run(h.app.Init())
	return h
}

// run executes cmd and every command it leads to, feeding messages back into the app.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		require.Less(h.t, steps, 200, "command loop did not settle")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			return
		default:
			_, next := h.app.Update(msg)
			queue = append(queue, next)
		}
	}
}

func (h *harness) send(msg tea.Msg) {
	h.t.Helper()
	_, cmd := h.app.Update(msg)
	h.run(cmd)
}

func (h *harness) press(keys ...string) {
	h.t.Helper()
	for _, k := range keys {
		h.send(keyMsg(k))
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+r":
		return tea.KeyMsg{Type: tea.KeyCtrlR}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func top[T Screen](t *testing.T, h *harness) T {
	t.Helper()
	s, ok := h.app.Top().(T)
	require.True(t, ok, "unexpected top screen %T", h.app.Top())
	return s
}

func TestApp_StartsOnLoginWithoutToken(t *testing.T) {
	h := newHarness(t, false)
	top[*loginScreen](t, h)
	assert.Contains(t, h.app.View(), "Welcome To Easycontact")
}

func TestLogin_SuccessNavigatesToExplore(t *testing.T) {
	h := newHarness(t, false, model.Todo{ID: "1", Title: "Bob", Description: "555"})
	ls := top[*loginScreen](t, h)
	ls.form.set(0, "alice")
	ls.form.set(1, "secret")

	h.press("enter", "enter")
	assert.True(t, ls.dlg.visible)
	assert.Equal(t, auth.LoginSuccessMessage, ls.dlg.body)

	got, err := h.tokens.Get()
	require.NoError(t, err)
	assert.Equal(t, "abc123", got)

	h.press("enter")
	es := top[*exploreScreen](t, h)
	assert.Len(t, es.list.Items(), 1)
	assert.Equal(t, auth.Authenticated, h.deps.Auth.State())
}

func TestLogin_FailureShowsServerMessage(t *testing.T) {
	h := newHarness(t, false)
	ls := top[*loginScreen](t, h)
	ls.form.set(0, "alice")
	ls.form.set(1, "wrong")
	ls.form.setFocus(1)

	h.press("enter")
	assert.True(t, ls.dlg.visible)
	assert.Equal(t, "Invalid credentials", ls.dlg.body)

	h.press("enter")
	top[*loginScreen](t, h)
	got, err := h.tokens.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRegister_ThenBackToLogin(t *testing.T) {
	h := newHarness(t, false)
	h.press("ctrl+r")
	rs := top[*registerScreen](t, h)
	rs.form.set(0, "bob")
	rs.form.set(1, "bob@example.com")
	rs.form.set(2, "pw")
	rs.form.setFocus(2)

	h.press("enter")
	assert.True(t, rs.success)
	h.press("enter")
	top[*loginScreen](t, h)
}

func TestExplore_LoadsOnEnter(t *testing.T) {
	h := newHarness(t, true,
		model.Todo{ID: "1", Title: "Alice"},
		model.Todo{ID: "2", Title: "Bob"},
	)
	es := top[*exploreScreen](t, h)
	assert.False(t, es.loading)
	assert.Len(t, es.list.Items(), 2)
	assert.Equal(t, h.srv.Todos(), h.deps.Todos.ExploreTodos())
}

func TestDetail_UpdateMirrorsIntoStore(t *testing.T) {
	h := newHarness(t, true, model.Todo{ID: "1", Title: "Old", Description: "d"})

	h.press("enter")
	ds := top[*detailScreen](t, h)
	require.NotNil(t, ds.todo)
	assert.Equal(t, "Old", ds.form.value(0))

	ds.form.set(0, "New")
	h.press("ctrl+s")
	assert.True(t, ds.dlg.visible)
	assert.Equal(t, updatedMessage, ds.dlg.body)

	updated := model.Todo{ID: "1", Title: "New", Description: "d"}
	assert.Equal(t, []model.Todo{updated}, h.deps.Todos.Todos())
	assert.Equal(t, []model.Todo{{ID: "1", Title: "Old", Description: "d"}, updated}, h.deps.Todos.ExploreTodos())

	h.press("enter")
	es := top[*exploreScreen](t, h)
	assert.Len(t, es.list.Items(), 2)
}

func TestDetail_UpdateFailureLeavesStore(t *testing.T) {
	h := newHarness(t, true, model.Todo{ID: "1", Title: "Old", Description: "d"})
	h.press("enter")
	ds := top[*detailScreen](t, h)

	ds.form.set(0, "  ")
	h.press("ctrl+s")
	assert.False(t, ds.dlg.visible)
	assert.Contains(t, ds.errMsg, "Title is required")
	assert.Equal(t, []model.Todo{{ID: "1", Title: "Old", Description: "d"}}, h.deps.Todos.Todos())
}

func TestExplore_DeleteNeedsConfirmation(t *testing.T) {
	h := newHarness(t, true, model.Todo{ID: "1", Title: "Alice"}, model.Todo{ID: "2", Title: "Bob"})
	es := top[*exploreScreen](t, h)

	h.press("d", "n")
	assert.Len(t, h.srv.Todos(), 2)

	h.press("d", "y")
	assert.Equal(t, []model.Todo{{ID: "2", Title: "Bob"}}, h.srv.Todos())
	assert.Len(t, es.list.Items(), 1)
	assert.Equal(t, h.srv.Todos(), h.deps.Todos.Todos())
}

func TestExplore_DeleteFailureKeepsLists(t *testing.T) {
	h := newHarness(t, true, model.Todo{ID: "1", Title: "Alice"})
	es := top[*exploreScreen](t, h)
	h.srv.FailNext("DELETE /api/todos/{id}", 404)

	h.press("d", "y")
	assert.True(t, es.dlg.visible)
	assert.Len(t, es.list.Items(), 1)
	assert.Len(t, h.deps.Todos.ExploreTodos(), 1)
}

func TestExplore_AddRefetches(t *testing.T) {
	h := newHarness(t, true)
	es := top[*exploreScreen](t, h)

	h.press("a")
	es.add.set(0, "Carol")
	es.add.set(1, "friend")
	h.press("tab", "enter")

	require.Len(t, h.srv.Todos(), 1)
	assert.Len(t, es.list.Items(), 1)
	assert.Equal(t, "Carol", h.deps.Todos.Todos()[0].Title)
}

func TestProfile_AvatarAndLogout(t *testing.T) {
	h := newHarness(t, true)
	h.press("p")
	ps := top[*profileScreen](t, h)
	require.NotNil(t, ps.profile)
	assert.Equal(t, "alice", ps.profile.Username)

	h.press("v", "3")
	assert.Equal(t, AvatarOptions[2], ps.profile.Avatar)
	assert.Equal(t, AvatarOptions[2], h.srv.Profile("alice").Avatar)
	assert.False(t, ps.picking)

	h.press("o", "n")
	top[*profileScreen](t, h)
	assert.Equal(t, auth.Authenticated, h.deps.Auth.State())

	h.press("o", "y")
	top[*loginScreen](t, h)
	assert.Equal(t, auth.Anonymous, h.deps.Auth.State())
	got, err := h.tokens.Get()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestProfile_UnauthenticatedShowsFallback(t *testing.T) {
	h := newHarness(t, true)
	require.NoError(t, h.tokens.Clear())
	h.press("p")
	ps := top[*profileScreen](t, h)
	assert.Nil(t, ps.profile)
	assert.Equal(t, "Unauthorized", ps.errMsg)
	assert.Contains(t, h.app.View(), "No profile data available")
}

func TestDetail_SaveLandsAfterLeavingScreen(t *testing.T) {
	h := newHarness(t, true, model.Todo{ID: "1", Title: "Old", Description: "d"})
	h.press("enter")
	ds := top[*detailScreen](t, h)
	ds.form.set(0, "New")

	_, save := h.app.Update(keyMsg("ctrl+s"))
	require.NotNil(t, save)
	h.press("esc")
	top[*exploreScreen](t, h)

	h.run(save)
	updated := model.Todo{ID: "1", Title: "New", Description: "d"}
	assert.Equal(t, []model.Todo{updated}, h.srv.Todos())
	assert.Equal(t, []model.Todo{updated}, h.deps.Todos.Todos())
	explore := h.deps.Todos.ExploreTodos()
	require.NotEmpty(t, explore)
	assert.Equal(t, updated, explore[len(explore)-1])
}
