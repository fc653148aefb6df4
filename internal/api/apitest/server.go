// Package apitest runs an in-memory Easycontact backend for tests.
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/gorilla/mux"

	"github.com/idilsaglam/easycontact/internal/model"
)

type account struct {
	password string
	token    string
	profile  model.UserProfile
}

// Server mimics the backend closely enough for client tests.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	todos    []model.Todo
	accounts map[string]*account
	nextID   int
	failNext map[string]int // "METHOD path-template" -> status
	authSeen []string
}

func New() *Server {
	s := &Server{accounts: map[string]*account{}, failNext: map[string]int{}, nextID: 1}

	r := mux.NewRouter()
	r.HandleFunc("/api/auth/login", s.login).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/api/todos", s.listTodos).Methods(http.MethodGet)
	r.HandleFunc("/api/todos", s.requireAuth(s.createTodo)).Methods(http.MethodPost)
	r.HandleFunc("/api/todos/{id}", s.requireAuth(s.getTodo)).Methods(http.MethodGet)
	r.HandleFunc("/api/todos/{id}", s.requireAuth(s.updateTodo)).Methods(http.MethodPut)
	r.HandleFunc("/api/todos/{id}", s.requireAuth(s.deleteTodo)).Methods(http.MethodDelete)
	r.HandleFunc("/api/profile", s.requireAuth(s.getProfile)).Methods(http.MethodGet)
	r.HandleFunc("/api/profile/avatar", s.requireAuth(s.updateAvatar)).Methods(http.MethodPut)
	r.Use(s.recordAuth, s.injectFailures)

	s.Server = httptest.NewServer(r)
	return s
}

// AddUser registers an account whose login yields token.
func (s *Server) AddUser(username, password, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[username] = &account{
		password: password,
		token:    token,
		profile:  model.UserProfile{Username: username, Email: username + "@example.com"},
	}
}

// Seed replaces the server's collection.
func (s *Server) Seed(todos ...model.Todo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.todos = append([]model.Todo(nil), todos...)
}

func (s *Server) Todos() []model.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Todo(nil), s.todos...)
}

func (s *Server) Profile(username string) model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a, ok := s.accounts[username]; ok {
		return a.profile
	}
	return model.UserProfile{}
}

// FailNext makes the next request matching route (e.g. "DELETE /api/todos/{id}") answer status.
func (s *Server) FailNext(route string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext[route] = status
}

// AuthHeaders lists the Authorization header of every request, in order.
func (s *Server) AuthHeaders() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.authSeen...)
}

func (s *Server) recordAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.authSeen = append(s.authSeen, r.Header.Get("Authorization"))
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) injectFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tpl, _ := mux.CurrentRoute(r).GetPathTemplate()
		key := r.Method + " " + tpl
		s.mu.Lock()
		status, ok := s.failNext[key]
		delete(s.failNext, key)
		s.mu.Unlock()
		if ok {
			writeError(w, status, http.StatusText(status))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) requireAuth(h func(http.ResponseWriter, *http.Request, *account)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a := s.accountFor(r)
		if a == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		h(w, r, a)
	}
}

func (s *Server) accountFor(r *http.Request) *account {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.token == token {
			return a
		}
	}
	return nil
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var creds model.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	s.mu.Lock()
	a, ok := s.accounts[creds.Username]
	s.mu.Unlock()
	if !ok || a.password != creds.Password {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	writeData(w, http.StatusOK, model.LoginResult{Token: a.token})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var reg model.Registration
	if err := json.NewDecoder(r.Body).Decode(&reg); err != nil || reg.Username == "" || reg.Password == "" {
		writeError(w, http.StatusBadRequest, "Username and password are required")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[reg.Username]; exists {
		writeError(w, http.StatusConflict, "Username already taken")
		return
	}
	s.accounts[reg.Username] = &account{
		password: reg.Password,
		token:    "token-" + reg.Username,
		profile:  model.UserProfile{Username: reg.Username, Email: reg.Email},
	}
	writeData(w, http.StatusCreated, map[string]string{"username": reg.Username})
}

func (s *Server) listTodos(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, s.Todos())
}

func (s *Server) createTodo(w http.ResponseWriter, r *http.Request, _ *account) {
	var in model.TodoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Title) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Title is required")
		return
	}
	s.mu.Lock()
	t := model.Todo{ID: strconv.Itoa(s.nextID), Title: in.Title, Description: in.Description}
	s.nextID++
	for s.indexLocked(t.ID) >= 0 {
		t.ID = strconv.Itoa(s.nextID)
		s.nextID++
	}
	s.todos = append(s.todos, t)
	s.mu.Unlock()
	writeData(w, http.StatusCreated, t)
}

func (s *Server) getTodo(w http.ResponseWriter, r *http.Request, _ *account) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	i := s.indexLocked(id)
	var t model.Todo
	if i >= 0 {
		t = s.todos[i]
	}
	s.mu.Unlock()
	if i < 0 {
		writeError(w, http.StatusNotFound, "Todo not found")
		return
	}
	writeData(w, http.StatusOK, t)
}

func (s *Server) updateTodo(w http.ResponseWriter, r *http.Request, _ *account) {
	id := mux.Vars(r)["id"]
	var in model.TodoInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || strings.TrimSpace(in.Title) == "" {
		writeError(w, http.StatusUnprocessableEntity, "Title is required")
		return
	}
	s.mu.Lock()
	i := s.indexLocked(id)
	var t model.Todo
	if i >= 0 {
		s.todos[i].Title = in.Title
		s.todos[i].Description = in.Description
		t = s.todos[i]
	}
	s.mu.Unlock()
	if i < 0 {
		writeError(w, http.StatusNotFound, "Todo not found")
		return
	}
	writeData(w, http.StatusOK, t)
}

func (s *Server) deleteTodo(w http.ResponseWriter, r *http.Request, _ *account) {
	id := mux.Vars(r)["id"]
	s.mu.Lock()
	i := s.indexLocked(id)
	if i >= 0 {
		s.todos = append(s.todos[:i], s.todos[i+1:]...)
	}
	s.mu.Unlock()
	if i < 0 {
		writeError(w, http.StatusNotFound, "Todo not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request, a *account) {
	s.mu.Lock()
	p := a.profile
	s.mu.Unlock()
	writeData(w, http.StatusOK, p)
}

func (s *Server) updateAvatar(w http.ResponseWriter, r *http.Request, a *account) {
	var in model.AvatarUpdate
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Avatar == "" {
		writeError(w, http.StatusBadRequest, "Avatar is required")
		return
	}
	s.mu.Lock()
	a.profile.Avatar = in.Avatar
	s.mu.Unlock()
	writeData(w, http.StatusOK, map[string]string{"avatar": in.Avatar})
}

func (s *Server) indexLocked(id string) int {
	for i, t := range s.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func writeData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.Envelope[any]{Data: data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(model.ErrorBody{Message: msg})
}
