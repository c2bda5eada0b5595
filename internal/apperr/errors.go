package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies business-rule failures so controllers can map them to
// HTTP statuses without string matching.
type Kind int

const (
	KindValidation Kind = iota
	KindNotFound
	KindConflict
	KindForbidden
)

type Error struct {
	Kind    Kind
	Message string
	// Extra is merged into the JSON error body, e.g. a prior result
	// summary on a duplicate-attempt conflict.
	Extra map[string]interface{}
	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func Validation(format string, args ...interface{}) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...interface{}) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...interface{}) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) WithExtra(key string, value interface{}) *Error {
	if e.Extra == nil {
		e.Extra = map[string]interface{}{}
	}
	e.Extra[key] = value
	return e
}

func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// Status maps an error to its HTTP status. Anything that is not an *Error
// is an unexpected internal failure.
func Status(err error) int {
	var ae *Error
	if !errors.As(err, &ae) {
		return http.StatusInternalServerError
	}
	switch ae.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Body builds the JSON error payload. Internal details never leak: for
// non-taxonomy errors the client sees a generic message only.
func Body(err error) (int, map[string]interface{}) {
	status := Status(err)
	if status == http.StatusInternalServerError {
		return status, map[string]interface{}{"message": "Server error"}
	}
	var ae *Error
	errors.As(err, &ae)
	body := map[string]interface{}{"message": ae.Message}
	for k, v := range ae.Extra {
		body[k] = v
	}
	return status, body
}
