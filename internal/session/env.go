package session

// EnvOverride serves a fixed token (EASYCONTACT_TOKEN) ahead of the persistent backend.
type EnvOverride struct {
	Token string
	Next  Store
}

// WithEnvOverride returns next unchanged when token is empty.
func WithEnvOverride(token string, next Store) Store {
	token = stripBearer(token)
	if token == "" {
		return next
	}
	return &EnvOverride{Token: token, Next: next}
}

func (e *EnvOverride) Get() (string, error) { return e.Token, nil }

// Set still persists so the token survives once the env var is unset.
func (e *EnvOverride) Set(token string) error { return e.Next.Set(token) }

func (e *EnvOverride) Clear() error { return ErrEnvManaged }
