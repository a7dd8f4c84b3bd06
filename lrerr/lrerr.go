// Package lrerr holds the typed errors returned by the grammar, lex,
// automaton, and parse packages. Every error kind named in the design is a
// sentinel that callers can check with errors.Is, plus a wrapping Error type
// that carries the message actually shown to the caller.
//
// This mirrors the shape of a typical DAO-layer error package: a handful of
// package-level sentinels for errors.Is checks, and a concrete type that
// wraps one of them along with a human-readable message and any underlying
// cause.
package lrerr

import (
	"errors"
	"fmt"
)

var (
	// ErrGrammarSyntax is wrapped by errors produced while parsing rule
	// lines into a Grammar: a missing or duplicated "->", an unterminated
	// quote, a trailing escape, an alternative that lexes to zero tokens, or
	// a non-terminal left with zero productions.
	ErrGrammarSyntax = errors.New("grammar syntax error")

	// ErrUnrecognizedToken is wrapped by lex errors: no literal terminal or
	// regex terminal matches at the current input position.
	ErrUnrecognizedToken = errors.New("unrecognized token")

	// ErrConflict is wrapped by construction errors: a shift/reduce or
	// reduce/reduce conflict that the supplied Resolver refused to settle.
	ErrConflict = errors.New("unresolved grammar conflict")

	// ErrNoTransition is wrapped by parse errors: the current state has
	// neither a shift nor a reduce action for the current lookahead.
	ErrNoTransition = errors.New("no transition for symbol")

	// ErrInternal is wrapped by errors that indicate a bug in the
	// implementation rather than a problem with caller-supplied grammar or
	// input: a reduce that finds the stack too shallow, or whose popped
	// symbols don't match the production being reduced.
	ErrInternal = errors.New("internal parser error")
)

// Error is the concrete error type returned by this module's packages. It
// carries a message plus the sentinel(s) it should compare equal to under
// errors.Is, and optionally an underlying cause.
type Error struct {
	msg    string
	cause  error
	labels []error
}

// New creates an Error with the given message that wraps sentinel as well as
// any optional cause. sentinel is required; cause may be nil.
func New(sentinel error, msg string, cause error) *Error {
	return &Error{msg: msg, cause: cause, labels: []error{sentinel}}
}

// Newf is like New but builds msg from a format string and arguments.
func Newf(sentinel error, cause error, format string, a ...interface{}) *Error {
	return New(sentinel, fmt.Sprintf(format, a...), cause)
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.msg, e.cause.Error())
	}
	return e.msg
}

// Unwrap gives the underlying cause, if one was supplied. This lets
// errors.Is/As see through to whatever error triggered this one, in addition
// to the sentinel(s) checked by Is.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is one of the sentinels this Error was built
// with, satisfying the errors.Is contract independent of Unwrap.
func (e *Error) Is(target error) bool {
	for _, l := range e.labels {
		if errors.Is(l, target) {
			return true
		}
	}
	return false
}

// base is embedded by the named wrapper types below. Embedding *Error
// directly would create a field named Error that hides the Error method;
// embedding through this alias names the field base, so Error, Unwrap and
// Is are all promoted.
type base = Error

// GrammarError wraps ErrGrammarSyntax: a problem parsing rule lines into a
// Grammar.
type GrammarError struct{ *base }

// NewGrammarError builds a GrammarError with the given message and cause.
func NewGrammarError(msg string, cause error) *GrammarError {
	return &GrammarError{New(ErrGrammarSyntax, msg, cause)}
}

// LexError wraps ErrUnrecognizedToken: no terminal matches at the current
// input position.
type LexError struct{ *base }

// NewLexError builds a LexError with the given message and cause.
func NewLexError(msg string, cause error) *LexError {
	return &LexError{New(ErrUnrecognizedToken, msg, cause)}
}

// ConflictError wraps ErrConflict: a construction-time shift/reduce or
// reduce/reduce conflict a Resolver declined to settle.
type ConflictError struct{ *base }

// NewConflictError builds a ConflictError with the given message and cause.
func NewConflictError(msg string, cause error) *ConflictError {
	return &ConflictError{New(ErrConflict, msg, cause)}
}

// ParseError wraps ErrNoTransition: no shift or reduce action for the
// current lookahead in the current state.
type ParseError struct{ *base }

// NewParseError builds a ParseError with the given message and cause.
func NewParseError(msg string, cause error) *ParseError {
	return &ParseError{New(ErrNoTransition, msg, cause)}
}

// InternalError wraps ErrInternal: a violated invariant that indicates a bug
// in this module rather than a problem with caller-supplied grammar or
// input.
type InternalError struct{ *base }

// NewInternalError builds an InternalError with the given message and
// cause.
func NewInternalError(msg string, cause error) *InternalError {
	return &InternalError{New(ErrInternal, msg, cause)}
}
