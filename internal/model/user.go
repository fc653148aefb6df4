package model

// UserProfile is the signed-in user's profile. Only Avatar is mutable from the client.
type UserProfile struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type Registration struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AvatarUpdate struct {
	Avatar string `json:"avatar"`
}

// LoginResult is the payload inside the login envelope.
type LoginResult struct {
	Token string `json:"token"`
}

// Envelope wraps every successful response body.
type Envelope[T any] struct {
	Data T `json:"data"`
}

// ErrorBody is what the backend sends with a non-2xx status.
type ErrorBody struct {
	Message string `json:"message"`
}
