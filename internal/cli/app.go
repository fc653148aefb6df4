package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/easycontact/internal/api"
	"github.com/idilsaglam/easycontact/internal/auth"
	"github.com/idilsaglam/easycontact/internal/config"
	"github.com/idilsaglam/easycontact/internal/logger"
	"github.com/idilsaglam/easycontact/internal/session"
	"github.com/idilsaglam/easycontact/internal/store/todostore"
	"github.com/idilsaglam/easycontact/internal/tui"
)

// app is the object graph owned by one invocation.
type app struct {
	cfg     *config.Config
	log     *logrus.Logger
	backend session.Store // persistent store, without the env override
	tokens  session.Store
	client  *api.Client
	todos   *todostore.Store
	flow    *auth.Flow
	closers []io.Closer
}

func newApp(cfg *config.Config, interactive bool) (*app, error) {
	logFile := cfg.LogFile
	log, logCloser, err := logger.New(logger.Options{Level: cfg.LogLevel, Format: cfg.LogFormat, File: logFile})
	if err != nil {
		return nil, err
	}
	if interactive && logFile == "" {
		// the alt screen owns the terminal
		log.SetOutput(io.Discard)
	}
	a := &app{cfg: cfg, log: log, closers: []io.Closer{logCloser}}

	switch cfg.TokenBackend {
	case config.BackendSQLite:
		s, err := session.OpenSQLite(cfg.Home)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.backend = s
		a.closers = append(a.closers, s)
	default:
		a.backend = session.NewFileStore(cfg.Home)
	}
	a.tokens = session.WithEnvOverride(cfg.EnvToken, a.backend)

	a.client = api.New(cfg.APIURL, a.tokens, api.WithTimeout(cfg.HTTPTimeout), api.WithLogger(log))
	a.todos = todostore.New(a.client, log)
	a.flow = auth.NewFlow(a.client, a.tokens, log)
	a.flow.Resume()
	return a, nil
}

func (a *app) tuiDeps() tui.Deps {
	return tui.Deps{API: a.client, Todos: a.todos, Auth: a.flow, Log: a.log}
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close: %w", errors.Join(errs...))
	}
	return nil
}
