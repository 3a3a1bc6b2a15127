// Package errors defines the coded errors shared by the game core, storage and CLI.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies an Error.
type Code string

const (
	// CodeValidation marks malformed input, such as a board that cannot be repaired.
	CodeValidation Code = "validation"
	// CodeCapacity marks a rejected change that would break a team, category or row bound.
	CodeCapacity Code = "capacity"
	// CodeNotFound marks a missing session, team or question.
	CodeNotFound Code = "not_found"
	// CodePersistence marks a storage read or write failure.
	CodePersistence Code = "persistence"
)

// Error is a coded error with an optional list of details and a wrapped cause.
type Error struct {
	Code    Code
	Message string
	Details []string
	err     error
}

// New creates an Error. The message defaults to the code.
func New(code Code, opts ...Option) *Error {
	e := &Error{
		Code:    code,
		Message: string(code),
	}

	for _, opt := range opts {
		opt.apply(e)
	}

	return e
}

func (e *Error) Error() string {
	s := e.Message
	if len(e.Details) > 0 {
		s += ":\n" + strings.Join(e.Details, "\n")
	}
	if e.err != nil {
		s += fmt.Sprintf(": %s", e.err)
	}

	return s
}

func (e *Error) Unwrap() error {
	return e.err
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// IsCode reports whether err or anything it wraps is an Error with the given code.
func IsCode(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// Validation builds a CodeValidation error listing every problem found.
func Validation(message string, details []string) *Error {
	return New(CodeValidation, WithMessagef("%s", message), WithDetails(details))
}

// Capacityf builds a CodeCapacity error.
func Capacityf(format string, args ...any) *Error {
	return New(CodeCapacity, WithMessagef(format, args...))
}

// NotFoundf builds a CodeNotFound error.
func NotFoundf(format string, args ...any) *Error {
	return New(CodeNotFound, WithMessagef(format, args...))
}

// Persistence wraps a storage failure.
func Persistence(op string, err error) *Error {
	return New(CodePersistence, WithMessagef("storage: %s", op), WithCause(err))
}

type Option interface {
	apply(*Error)
}

type optionFunc func(*Error)

func (f optionFunc) apply(e *Error) {
	f(e)
}

func WithCause(err error) Option {
	return optionFunc(func(e *Error) {
		e.err = err
	})
}

func WithMessagef(format string, args ...any) Option {
	return optionFunc(func(e *Error) {
		e.Message = fmt.Sprintf(format, args...)
	})
}

func WithDetails(details []string) Option {
	return optionFunc(func(e *Error) {
		e.Details = append([]string(nil), details...)
	})
}
