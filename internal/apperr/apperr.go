// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package apperr defines the error taxonomy shared by services and handlers.
// Every domain failure is an *Error with a Kind; handlers map kinds to HTTP
// status codes in exactly one place.
package apperr

import "fmt"

// Kind classifies an error for HTTP mapping.
type Kind int

const (
	// Validation is malformed or out-of-range input (400).
	Validation Kind = iota
	// Unauthenticated means no or invalid session (401).
	Unauthenticated
	// Forbidden means authenticated but lacking ownership or role (403).
	Forbidden
	// NotFound means a referenced entity is absent (404).
	NotFound
	// Conflict is a failed domain precondition, e.g. resolving a question
	// without answers (400).
	Conflict
	// RateLimited is the OTP request cooldown (429).
	RateLimited
	// Internal is an unexpected persistence failure (500). The message is
	// suppressed from clients and logged server-side.
	Internal
)

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates an error with the given kind and message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Wrap creates an Internal error around an unexpected failure.
func Wrap(msg string, err error) *Error {
	return &Error{Kind: Internal, Msg: msg, Err: err}
}
