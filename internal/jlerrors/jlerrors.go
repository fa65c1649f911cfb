// Package jlerrors holds the typed error taxonomy used across jl: every
// fatal condition the program can encounter (bad arguments, a pattern that
// does not parse, a malformed document, an I/O failure) is reported as one
// of a small fixed set of Kinds so that callers can distinguish them with
// errors.Is without string-matching messages.
package jlerrors

import (
	"errors"
	"fmt"
)

// Kind identifies which part of the system raised an error.
type Kind int

const (
	// Usage indicates wrong argument counts, missing flag values, or a
	// malformed config file.
	Usage Kind = iota

	// Pattern indicates the extraction DSL did not parse.
	Pattern

	// Lex indicates the document lexer encountered invalid input.
	Lex

	// Parse indicates the document did not match the expected token
	// grammar at the point the runtime required a specific token.
	Parse

	// Io indicates an underlying read (or write) failure.
	Io
)

func (k Kind) String() string {
	switch k {
	case Usage:
		return "usage error"
	case Pattern:
		return "invalid pattern"
	case Lex:
		return "lex error"
	case Parse:
		return "parse error"
	case Io:
		return "io error"
	default:
		return "error"
	}
}

// Error is a typed, wrappable error tagged with a Kind. It is compatible
// with errors.Is/errors.As: errors.Is(err, jlerrors.IsLex) is true for any
// Error whose Kind is Lex, and the identity of the specific Error value
// also matches itself.
type Error struct {
	kind Kind
	msg  string
	wrap error
}

// Error returns the message associated with e, with its wrapped cause (if
// any) appended after a colon.
func (e *Error) Error() string {
	if e.wrap != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.wrap.Error())
	}
	return e.msg
}

// Unwrap gives the cause e wraps, if any.
func (e *Error) Unwrap() error {
	return e.wrap
}

// Kind returns the Kind of e.
func (e *Error) Kind() Kind {
	return e.kind
}

// Is allows errors.Is(err, jlerrors.IsUsage) (etc.) to succeed by comparing
// e's Kind against the Kind carried by one of the sentinel values below.
func (e *Error) Is(target error) bool {
	if k, ok := target.(kindSentinel); ok {
		return e.kind == Kind(k)
	}
	return false
}

type kindSentinel Kind

func (k kindSentinel) Error() string { return Kind(k).String() }

// Sentinel values usable with errors.Is, e.g. errors.Is(err, jlerrors.IsLex).
var (
	IsUsage   error = kindSentinel(Usage)
	IsPattern error = kindSentinel(Pattern)
	IsLex     error = kindSentinel(Lex)
	IsParse   error = kindSentinel(Parse)
	IsIo      error = kindSentinel(Io)
)

// New creates an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error of the given kind with a formatted message that
// wraps cause. errors.Is(resultingErr, cause) will succeed.
func Wrap(kind Kind, cause error, format string, args ...interface{}) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...), wrap: cause}
}

// KindOf returns the Kind of err if it is (or wraps) a *Error, and ok=false
// otherwise.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return 0, false
}
