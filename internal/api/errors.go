package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed call so callers can branch without reading messages.
type Kind int

const (
	KindUnknown Kind = iota
	KindTransport
	KindAuth
	KindNotFound
	KindValidation
	KindServer
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// DefaultMessage is shown when the server gave no message of its own.
const DefaultMessage = "An error occurred"

// Error is returned by every Client method.
type Error struct {
	Kind    Kind
	Op      string // e.g. "GET /api/todos/1"
	Status  int    // 0 for transport failures
	Message string // server-provided "message", if any
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("%s: %s (%d): %s", e.Op, e.Kind, e.Status, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
	default:
		return fmt.Sprintf("%s: %s (%d)", e.Op, e.Kind, e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

func kindForStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return KindValidation
	default:
		return KindServer
	}
}

// KindOf returns the Kind of err, or KindUnknown if it is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// UserMessage picks the server message when there is one, fallback otherwise.
func UserMessage(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
