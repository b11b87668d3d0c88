package errs

import (
	"errors"
	"fmt"
	"maps"
)

// Kind classifies an error for callers.
type Kind string

const (
	KindUnknown              Kind = ""
	KindConfigurationInvalid Kind = "configuration_invalid"
	KindNotFound             Kind = "not_found"
	KindPreconditionFailed   Kind = "precondition_failed"
	KindCollaboratorFailure  Kind = "collaborator_failure"
)

// Error is a tagged error value. Two errors are considered the same by
// errors.Is when their codes match.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Info    map[string]any
	Err     error
}

// New declares a sentinel error.
func New(kind Kind, code, message string) *Error {
	return &Error{Kind: kind, Code: code, Message: message}
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithInfo returns a copy of sentinel carrying the given details.
func WithInfo(sentinel *Error, info map[string]any) *Error {
	e := *sentinel
	if len(info) > 0 {
		e.Info = maps.Clone(info)
	}
	return &e
}

// Wrap returns a copy of sentinel with cause attached.
func Wrap(sentinel *Error, cause error, info map[string]any) *Error {
	e := WithInfo(sentinel, info)
	e.Err = cause
	return e
}

// Collaborator tags err as a collaborator failure for operation op.
// The original error stays reachable through errors.Is and errors.As.
// Errors that already carry a kind are returned unchanged, so a store's
// NotFound stays NotFound. Returns nil when err is nil.
func Collaborator(op string, err error) error {
	if err == nil {
		return nil
	}
	var tagged *Error
	if errors.As(err, &tagged) && tagged.Kind != KindUnknown {
		return err
	}
	return &Error{
		Kind:    KindCollaboratorFailure,
		Code:    "collaborator_failure",
		Message: op,
		Err:     err,
	}
}

// KindOf returns the kind of the outermost tagged error in err's chain.
func KindOf(err error) Kind {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Kind
	}
	return KindUnknown
}

// InfoOf returns the structured details of the outermost tagged error.
func InfoOf(err error) map[string]any {
	var tagged *Error
	if errors.As(err, &tagged) {
		return tagged.Info
	}
	return nil
}

// ErrCollaboratorFailure matches any error produced by Collaborator.
var ErrCollaboratorFailure = New(KindCollaboratorFailure, "collaborator_failure", "collaborator failure")
