// Package auth drives the anonymous/authenticated session lifecycle.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/easycontact/internal/api"
	"github.com/idilsaglam/easycontact/internal/logger"
	"github.com/idilsaglam/easycontact/internal/model"
	"github.com/idilsaglam/easycontact/internal/session"
)

type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

const LoginSuccessMessage = "Login successful!"

var (
	ErrNoLogoutPending = errors.New("logout was not requested")
	ErrMissingFields   = errors.New("username and password are required")
)

// Authenticator is the part of the API client the flow needs.
type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (string, error)
	Register(ctx context.Context, r model.Registration) error
}

type Flow struct {
	api    Authenticator
	tokens session.Store
	log    logrus.FieldLogger

	mu            sync.Mutex
	state         State
	logoutPending bool
}

func NewFlow(a Authenticator, tokens session.Store, log logrus.FieldLogger) *Flow {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Flow{api: a, tokens: tokens, log: logger.Component(log, "auth")}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Resume picks up a token persisted by an earlier run. Storage errors are logged and treated as anonymous.
func (f *Flow) Resume() State {
	token, err := f.tokens.Get()
	if err != nil {
		f.log.WithError(err).Warn("read token")
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if token != "" {
		f.state = Authenticated
	} else {
		f.state = Anonymous
	}
	return f.state
}

// Login posts credentials and persists the returned token.
// On failure the state and the token store are left as they were.
func (f *Flow) Login(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return ErrMissingFields
	}
	token, err := f.api.Login(ctx, model.Credentials{Username: username, Password: password})
	if err != nil {
		f.log.WithError(err).WithField("username", username).Info("login rejected")
		return err
	}
	if err := f.tokens.Set(token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}

	f.mu.Lock()
	f.state = Authenticated
	f.logoutPending = false
	f.mu.Unlock()
	f.log.WithField("username", username).Info("logged in")
	return nil
}

func (f *Flow) Register(ctx context.Context, r model.Registration) error {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)
	if r.Username == "" || r.Password == "" {
		return ErrMissingFields
	}
	return f.api.Register(ctx, r)
}

// RequestLogout is the first half of the two-step logout.
func (f *Flow) RequestLogout() {
	f.mu.Lock()
	f.logoutPending = true
	f.mu.Unlock()
}

func (f *Flow) CancelLogout() {
	f.mu.Lock()
	f.logoutPending = false
	f.mu.Unlock()
}

func (f *Flow) LogoutPending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.logoutPending
}

// ConfirmLogout clears the token and returns to Anonymous.
// A token supplied through the environment cannot be cleared; the state still changes
// and session.ErrEnvManaged is returned so the caller can tell the user.
func (f *Flow) ConfirmLogout() error {
	f.mu.Lock()
	if !f.logoutPending {
		f.mu.Unlock()
		return ErrNoLogoutPending
	}
	f.mu.Unlock()

	err := f.tokens.Clear()
	if err != nil && !errors.Is(err, session.ErrEnvManaged) {
		return fmt.Errorf("clear token: %w", err)
	}

	f.mu.Lock()
	f.state = Anonymous
	f.logoutPending = false
	f.mu.Unlock()
	f.log.Info("logged out")
	return err
}

// Message turns a login/register error into the text shown to the user.
func Message(err error) string {
	if errors.Is(err, ErrMissingFields) {
		return "Username and password are required"
	}
	return api.UserMessage(err, api.DefaultMessage)
}
