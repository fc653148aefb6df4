package todostore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idilsaglam/easycontact/internal/logger"
	"github.com/idilsaglam/easycontact/internal/model"
)

type fakeBackend struct {
	list      []model.Todo
	listErr   error
	deleteErr error
	deleted   []string
}

func (f *fakeBackend) ListTodos(context.Context) ([]model.Todo, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.list, nil
}

func (f *fakeBackend) DeleteTodo(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

var (
	alice = model.Todo{ID: "1", Title: "Alice", Description: "a"}
	bob   = model.Todo{ID: "2", Title: "Bob", Description: "b"}
	carol = model.Todo{ID: "3", Title: "Carol", Description: "c"}
)

func seeded(t *testing.T, todos ...model.Todo) (*Store, *fakeBackend) {
	t.Helper()
	fb := &fakeBackend{list: todos}
	s := New(fb, logger.Discard())
	require.NoError(t, s.FetchAll(context.Background()))
	return s, fb
}

func TestFetchAll_ReplacesBothListsInServerOrder(t *testing.T) {
	s, fb := seeded(t, carol, alice)
	s.AddToExplore(bob)

	fb.list = []model.Todo{bob, alice, carol}
	require.NoError(t, s.FetchAll(context.Background()))

	assert.Equal(t, []model.Todo{bob, alice, carol}, s.Todos())
	assert.Equal(t, []model.Todo{bob, alice, carol}, s.ExploreTodos())
}

func TestFetchAll_FailureLeavesStateUntouched(t *testing.T) {
	s, fb := seeded(t, alice, bob)
	fb.listErr = errors.New("network down")

	err := s.FetchAll(context.Background())
	assert.ErrorIs(t, err, fb.listErr)
	assert.Equal(t, []model.Todo{alice, bob}, s.Todos())
	assert.Equal(t, []model.Todo{alice, bob}, s.ExploreTodos())
}

func TestFetchAll_NilCollectionYieldsEmptyLists(t *testing.T) {
	s, _ := seeded(t)
	assert.NotNil(t, s.Todos())
	assert.Empty(t, s.Todos())
	assert.Empty(t, s.ExploreTodos())
}

func TestUpdate_ReplacesByIDOnly(t *testing.T) {
	s, fb := seeded(t, alice, bob, carol)

	bob2 := model.Todo{ID: "2", Title: "Robert", Description: "b"}
	s.Update(bob2)

	assert.Equal(t, []model.Todo{alice, bob2, carol}, s.Todos())
	assert.Equal(t, []model.Todo{alice, bob, carol}, s.ExploreTodos(), "explore is only touched by AddToExplore")
	assert.Empty(t, fb.deleted)
}

func TestUpdate_UnknownIDIsNoop(t *testing.T) {
	s, _ := seeded(t, alice)
	s.Update(model.Todo{ID: "999", Title: "Ghost"})
	assert.Equal(t, []model.Todo{alice}, s.Todos())
}

func TestAddToExplore_AlwaysAppends(t *testing.T) {
	s, _ := seeded(t, alice, bob)

	s.AddToExplore(alice)
	assert.Equal(t, []model.Todo{alice, bob, alice}, s.ExploreTodos())

	s.AddToExplore(carol)
	assert.Len(t, s.ExploreTodos(), 4)
	assert.Equal(t, carol, s.ExploreTodos()[3])
	assert.Equal(t, []model.Todo{alice, bob}, s.Todos())
}

func TestUpdateThenAddToExplore_KeepsDuplicate(t *testing.T) {
	old := model.Todo{ID: "1", Title: "Old", Description: "d"}
	s, _ := seeded(t, old)

	updated := model.Todo{ID: "1", Title: "New", Description: "d"}
	s.Update(updated)
	s.AddToExplore(updated)

	assert.Equal(t, []model.Todo{updated}, s.Todos())
	assert.Equal(t, []model.Todo{old, updated}, s.ExploreTodos())
}

func TestDelete_RemovesFromBothLists(t *testing.T) {
	s, fb := seeded(t, alice, bob, carol)
	s.AddToExplore(bob)

	require.NoError(t, s.Delete(context.Background(), "2"))

	assert.Equal(t, []string{"2"}, fb.deleted)
	assert.Equal(t, []model.Todo{alice, carol}, s.Todos())
	assert.Equal(t, []model.Todo{alice, carol}, s.ExploreTodos())
}

func TestDelete_FailureLeavesStateUntouched(t *testing.T) {
	s, fb := seeded(t, alice, bob)
	fb.deleteErr = errors.New("404 Todo not found")

	err := s.Delete(context.Background(), "999")
	assert.ErrorIs(t, err, fb.deleteErr)
	assert.Equal(t, []model.Todo{alice, bob}, s.Todos())
	assert.Equal(t, []model.Todo{alice, bob}, s.ExploreTodos())
}

func TestAccessorsReturnCopies(t *testing.T) {
	s, _ := seeded(t, alice)
	got := s.Todos()
	got[0].Title = "mutated"
	assert.Equal(t, "Alice", s.Todos()[0].Title)
}
