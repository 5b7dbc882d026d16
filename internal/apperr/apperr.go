package apperr

import "errors"

// Kind classifies a domain error so the HTTP layer can map it to a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindConflict
	KindBadRequest
	KindUnavailable
)

// Error is a typed domain error raised by services.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) *Error {
	return New(KindNotFound, message)
}

func Conflict(message string) *Error {
	return New(KindConflict, message)
}

func BadRequest(message string) *Error {
	return New(KindBadRequest, message)
}

func Unavailable(message string) *Error {
	return New(KindUnavailable, message)
}

func Internal(message string) *Error {
	return New(KindInternal, message)
}

// KindOf returns the kind of err, or KindInternal when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
