// Package apperr defines the error taxonomy shared by the domain
// services. Every failure a service raises carries a Kind and a fixed
// message; callers (the HTTP layer, tests) match on both.
package apperr

import "errors"

type Kind int

const (
	KindBadRequest Kind = iota
	KindNotFound
	KindInternal
)

func (k Kind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindNotFound:
		return "not_found"
	case KindInternal:
		return "internal"
	}
	return "unknown"
}

// Error is a typed service error. Messages are part of the contract
// and must stay stable.
type Error struct {
	Kind    Kind
	Message string
	// Err holds the underlying cause, if any. Not part of the contract.
	Err error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Internal(message string, cause error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: cause}
}

// KindOf extracts the Kind from err. Errors that did not originate in
// a service are reported as KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// IsKind reports whether err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
