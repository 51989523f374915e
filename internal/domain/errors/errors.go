package errors

import (
	stdErrors "errors"
	"fmt"
)

// Error kinds. Every error returned by the engine wraps exactly one of them.
var (
	ErrNotFound           = stdErrors.New("not found")
	ErrInvalidInput       = stdErrors.New("invalid input")
	ErrInvalidState       = stdErrors.New("invalid state")
	ErrConflict           = stdErrors.New("conflict")
	ErrVerificationFailed = stdErrors.New("verification failed")
	ErrUnavailable        = stdErrors.New("unavailable")

	ErrInvalidCredentials = stdErrors.New("invalid credentials")
	ErrForbidden          = stdErrors.New("forbidden")
)

// Error carries a kind together with a caller-facing message explaining which
// precondition failed.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// New builds an error of the given kind.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an error of the given kind with a formatted message.
func Newf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Kind reports the kind wrapped by err, or nil when err carries none.
func Kind(err error) error {
	for _, kind := range []error{
		ErrNotFound,
		ErrInvalidInput,
		ErrInvalidState,
		ErrConflict,
		ErrVerificationFailed,
		ErrUnavailable,
		ErrInvalidCredentials,
		ErrForbidden,
	} {
		if stdErrors.Is(err, kind) {
			return kind
		}
	}
	return nil
}

// Message returns the caller-facing message of err. Errors without a kind get
// a generic message so that internal details never leave the process.
func Message(err error) string {
	var e *Error
	if stdErrors.As(err, &e) {
		return e.Error()
	}
	if kind := Kind(err); kind != nil {
		return kind.Error()
	}
	return "internal error"
}
