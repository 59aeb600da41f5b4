// Package apperr defines the error kinds that cross component boundaries.
// Repositories and the pipeline manager translate every storage or input
// failure into one of these before it reaches the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies the error class the transport layer maps to a status code.
type Kind string

const (
	KindValidation        Kind = "validation_error"
	KindUnauthorized      Kind = "unauthorized"
	KindNotFound          Kind = "not_found"
	KindStorageBusy       Kind = "storage_busy"
	KindIndex             Kind = "index_error"
	KindInvalidTransition Kind = "invalid_transition"
	KindInternal          Kind = "internal"
)

var (
	ErrUnauthorized = &Error{Kind: KindUnauthorized, Msg: "unauthorized"}
	ErrNotFound     = &Error{Kind: KindNotFound, Msg: "not found"}
	ErrStorageBusy  = &Error{Kind: KindStorageBusy, Msg: "storage busy, retries exhausted"}
)

type Error struct {
	Kind   Kind
	Msg    string
	Fields []string // set for validation errors
	Err    error    // wrapped cause, never shown to clients
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("%s: %s", e.Msg, strings.Join(e.Fields, ", "))
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Validation reports missing or malformed client input, naming the fields.
func Validation(fields ...string) *Error {
	return &Error{Kind: KindValidation, Msg: "missing or invalid fields", Fields: fields}
}

// ValidationMsg is Validation with a custom message for a single field.
func ValidationMsg(field, msg string) *Error {
	return &Error{Kind: KindValidation, Msg: msg, Fields: []string{field}}
}

// NotFound reports a missing entity by name.
func NotFound(what string) *Error {
	return &Error{Kind: KindNotFound, Msg: what + " not found"}
}

// Index reports a comment index outside the thread's bounds.
func Index(idx, size int) *Error {
	return &Error{Kind: KindIndex, Msg: fmt.Sprintf("index %d out of range (%d comments)", idx, size)}
}

// InvalidTransition reports a state change not in the transition table.
func InvalidTransition(from, to string) *Error {
	return &Error{Kind: KindInvalidTransition, Msg: fmt.Sprintf("invalid transition %q -> %q", from, to)}
}

// Internal wraps an unexpected failure; the cause is logged, not returned.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Msg: msg, Err: err}
}

// KindOf extracts the Kind from any error, defaulting to KindInternal.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// FieldsOf returns the named fields when err is a validation error.
func FieldsOf(err error) []string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return nil
}
