// Package todostore keeps the client-side view of the todo collection.
//
// Two lists are held: Todos (the primary list) and ExploreTodos (seeded by
// FetchAll, appended to by AddToExplore). A successful Delete removes an id
// from both. AddToExplore never deduplicates, so an update that follows a
// fetch leaves the explore list holding the same id twice.
package todostore

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/easycontact/internal/logger"
	"github.com/idilsaglam/easycontact/internal/model"
)

// Backend is the slice of the API the store calls itself.
type Backend interface {
	ListTodos(ctx context.Context) ([]model.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
}

type Store struct {
	backend Backend
	log     logrus.FieldLogger

	mu      sync.Mutex
	todos   []model.Todo
	explore []model.Todo
}

func New(backend Backend, log logrus.FieldLogger) *Store {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Store{
		backend: backend,
		log:     logger.Component(log, "todostore"),
		todos:   []model.Todo{},
		explore: []model.Todo{},
	}
}

// FetchAll replaces both lists with the server collection. On error nothing changes.
func (s *Store) FetchAll(ctx context.Context) error {
	list, err := s.backend.ListTodos(ctx)
	if err != nil {
		s.log.WithError(err).Error("failed to fetch todos")
		return fmt.Errorf("fetch todos: %w", err)
	}

	s.mu.Lock()
	s.todos = append([]model.Todo{}, list...)
	s.explore = append([]model.Todo{}, list...)
	s.mu.Unlock()
	return nil
}

// Update replaces entries of the primary list that share todo's id.
// It does not call the backend; pass the server-confirmed record.
func (s *Store) Update(todo model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.todos {
		if s.todos[i].ID == todo.ID {
			s.todos[i] = todo
		}
	}
}

// AddToExplore appends unconditionally.
func (s *Store) AddToExplore(todo model.Todo) {
	s.mu.Lock()
	s.explore = append(s.explore, todo)
	s.mu.Unlock()
}

// Delete removes id on the server, then from both lists. On error nothing changes.
func (s *Store) Delete(ctx context.Context, id string) error {
	if err := s.backend.DeleteTodo(ctx, id); err != nil {
		s.log.WithError(err).WithField("id", id).Error("failed to delete todo")
		return fmt.Errorf("delete todo %s: %w", id, err)
	}

	s.mu.Lock()
	s.todos = without(s.todos, id)
	s.explore = without(s.explore, id)
	s.mu.Unlock()
	return nil
}

func (s *Store) Todos() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Todo{}, s.todos...)
}

func (s *Store) ExploreTodos() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Todo{}, s.explore...)
}

func without(list []model.Todo, id string) []model.Todo {
	out := make([]model.Todo, 0, len(list))
	for _, t := range list {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}
