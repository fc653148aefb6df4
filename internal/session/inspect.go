package session

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrOpaqueToken means the token is not a JWT and cannot be introspected locally.
var ErrOpaqueToken = errors.New("opaque token")

type tokenClaims struct {
	Username string `json:"username,omitempty"`
	UserID   any    `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// Claims is the locally readable part of a JWT. Nothing here is verified.
type Claims struct {
	Algorithm string
	Subject   string
	Username  string
	UserID    any
	Issuer    string
	IssuedAt  *time.Time
	ExpiresAt *time.Time
}

// Expired reports whether exp is set and in the past relative to now.
func (c Claims) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// Inspect decodes JWT claims without checking the signature. Display only.
func Inspect(token string) (*Claims, error) {
	token = stripBearer(strings.TrimSpace(token))
	if strings.Count(token, ".") != 2 {
		return nil, ErrOpaqueToken
	}
	var tc tokenClaims
	parsed, _, err := jwt.NewParser().ParseUnverified(token, &tc)
	if err != nil {
		return nil, ErrOpaqueToken
	}
	c := &Claims{
		Subject:  tc.Subject,
		Username: tc.Username,
		UserID:   tc.UserID,
		Issuer:   tc.Issuer,
	}
	if parsed.Method != nil {
		c.Algorithm = parsed.Method.Alg()
	}
	if tc.IssuedAt != nil {
		t := tc.IssuedAt.Time
		c.IssuedAt = &t
	}
	if tc.ExpiresAt != nil {
		t := tc.ExpiresAt.Time
		c.ExpiresAt = &t
	}
	return c, nil
}
