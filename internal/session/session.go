// Package session persists the bearer token across runs.
package session

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyToken = errors.New("empty token")
	// ErrEnvManaged is returned by Clear when the token comes from EASYCONTACT_TOKEN.
	ErrEnvManaged = errors.New("token is provided by EASYCONTACT_TOKEN")
)

// Store holds a single opaque token. Get returns "" with a nil error when nothing is stored.
type Store interface {
	Set(token string) error
	Get() (string, error)
	Clear() error
}

// TokenInfo is what the file backend writes to disk.
type TokenInfo struct {
	Token     string     `json:"token"`
	Source    string     `json:"source"`     // "env" | "file" | "sqlite"
	CreatedAt time.Time  `json:"created_at"` // when we saved it
	ExpiresAt *time.Time `json:"expires_at"` // from JWT claims when available
}

func normalize(token string) (string, error) {
	token = stripBearer(strings.TrimSpace(token))
	if token == "" {
		return "", ErrEmptyToken
	}
	return token, nil
}

func stripBearer(s string) string {
	if strings.HasPrefix(strings.ToLower(s), "bearer ") {
		return strings.TrimSpace(s[7:])
	}
	return s
}
