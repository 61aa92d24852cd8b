// Package apperr defines the application error kinds shared by the store,
// the services and the HTTP layer.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the caller.
type Kind uint8

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindUnauthorized
	KindForbidden
	KindBadRequest
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindBadRequest:
		return "bad_request"
	default:
		return "internal"
	}
}

// Error is an error carrying a Kind, a stable code and a caller-safe message.
type Error struct {
	parent error
	kind   Kind
	code   string
	msg    string
}

// New creates an Error without a parent.
//
// code example: PRODUCT_NOT_FOUND
func New(kind Kind, code, msg string) *Error {
	return &Error{kind: kind, code: code, msg: msg}
}

func (e *Error) Error() string {
	if e.parent != nil {
		return fmt.Sprintf("%s: %s (%v)", e.code, e.msg, e.parent)
	}
	return fmt.Sprintf("%s: %s", e.code, e.msg)
}

// Wrap returns a copy of e with parent attached.
func (e *Error) Wrap(parent error) *Error {
	if parent == nil {
		return e
	}
	cp := *e
	cp.parent = parent
	return &cp
}

// WithMsg returns a copy of e with a different message.
func (e *Error) WithMsg(format string, args ...any) *Error {
	cp := *e
	cp.msg = fmt.Sprintf(format, args...)
	return &cp
}

func (e *Error) Unwrap() error { return e.parent }

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Code() string { return e.code }

// Msg is the message that is safe to return to API callers.
func (e *Error) Msg() string { return e.msg }

// Is matches on kind and code so that wrapped copies of a predefined error
// still compare equal to it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind && e.code == t.code
}

// KindOf returns the kind of the first *Error in err's chain, or KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

func Validation(msg string) *Error { return New(KindValidation, "VALIDATION_FAILED", msg) }

func Conflict(code, msg string) *Error { return New(KindConflict, code, msg) }

func NotFound(code, msg string) *Error { return New(KindNotFound, code, msg) }

func BadRequest(code, msg string) *Error { return New(KindBadRequest, code, msg) }

func Unauthorized(code, msg string) *Error { return New(KindUnauthorized, code, msg) }

func Forbidden(code, msg string) *Error { return New(KindForbidden, code, msg) }
