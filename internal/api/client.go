// Package api talks to the Easycontact REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/idilsaglam/easycontact/internal/logger"
	"github.com/idilsaglam/easycontact/internal/model"
	"github.com/idilsaglam/easycontact/internal/session"
)

// Client issues one HTTP request per call. The bearer token is read from the
// session store right before each protected request, never cached.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  session.Store
	log     *logrus.Entry
	newID   func() string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets a per-request timeout; zero keeps net/http's default (none).
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d, Transport: c.http.Transport}
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) { c.log = logger.Component(l, "api") }
}

func New(baseURL string, tokens session.Store, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		tokens:  tokens,
		log:     logger.Component(logrus.StandardLogger(), "api"),
		newID:   func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// do sends body as JSON (when non-nil) and decodes a 2xx response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, authed bool, body, out any) error {
	op := method + " " + path
	requestID := c.newID()
	entry := c.log.WithFields(logrus.Fields{"op": op, "request_id": requestID})

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindUnknown, Op: op, Err: fmt.Errorf("marshal: %w", err)}
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		c.authorize(req, entry)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		entry.WithError(err).Warn("request failed")
		return &Error{Kind: KindTransport, Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}
	entry = entry.WithFields(logrus.Fields{
		"status":      resp.StatusCode,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb model.ErrorBody
		_ = json.Unmarshal(raw, &eb)
		kind := kindForStatus(resp.StatusCode)
		entry.WithField("kind", kind.String()).Info("request rejected")
		return &Error{Kind: kind, Op: op, Status: resp.StatusCode, Message: eb.Message}
	}
	entry.Debug("request completed")

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &Error{Kind: KindDecode, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

// authorize attaches the bearer header. A missing or unreadable token sends the request as-is.
func (c *Client) authorize(req *http.Request, entry *logrus.Entry) {
	if c.tokens == nil {
		return
	}
	token, err := c.tokens.Get()
	if err != nil {
		entry.WithError(err).Warn("read token")
		return
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
