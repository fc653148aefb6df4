package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/idilsaglam/easycontact/internal/model"
)

var errNoToken = errors.New("login response carried no token")

// Login exchanges credentials for a token. It does not persist the token.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (string, error) {
	var env model.Envelope[model.LoginResult]
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", false, creds, &env); err != nil {
		return "", err
	}
	if env.Data.Token == "" {
		return "", &Error{Kind: KindDecode, Op: "POST /api/auth/login", Status: http.StatusOK, Err: errNoToken}
	}
	return env.Data.Token, nil
}

func (c *Client) Register(ctx context.Context, r model.Registration) error {
	return c.do(ctx, http.MethodPost, "/api/auth/register", false, r, nil)
}

// ListTodos sends the bearer token when one is stored; the endpoint also answers anonymously.
func (c *Client) ListTodos(ctx context.Context) ([]model.Todo, error) {
	var env model.Envelope[[]model.Todo]
	if err := c.do(ctx, http.MethodGet, "/api/todos", true, nil, &env); err != nil {
		return nil, err
	}
	if env.Data == nil {
		return []model.Todo{}, nil
	}
	return env.Data, nil
}

func (c *Client) CreateTodo(ctx context.Context, in model.TodoInput) (model.Todo, error) {
	var env model.Envelope[model.Todo]
	err := c.do(ctx, http.MethodPost, "/api/todos", true, in, &env)
	return env.Data, err
}

func (c *Client) GetTodo(ctx context.Context, id string) (model.Todo, error) {
	var env model.Envelope[model.Todo]
	err := c.do(ctx, http.MethodGet, todoPath(id), true, nil, &env)
	return env.Data, err
}

// UpdateTodo returns the server-confirmed record.
func (c *Client) UpdateTodo(ctx context.Context, id string, in model.TodoInput) (model.Todo, error) {
	var env model.Envelope[model.Todo]
	err := c.do(ctx, http.MethodPut, todoPath(id), true, in, &env)
	return env.Data, err
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, todoPath(id), true, nil, nil)
}

func (c *Client) GetProfile(ctx context.Context) (model.UserProfile, error) {
	var env model.Envelope[model.UserProfile]
	err := c.do(ctx, http.MethodGet, "/api/profile", true, nil, &env)
	return env.Data, err
}

func (c *Client) UpdateAvatar(ctx context.Context, avatar string) error {
	return c.do(ctx, http.MethodPut, "/api/profile/avatar", true, model.AvatarUpdate{Avatar: avatar}, nil)
}

func todoPath(id string) string {
	return "/api/todos/" + url.PathEscape(id)
}
