// Package errors defines the error taxonomy shared by the core analyser,
// the registry and the auxiliary subsystems (fuzzy matching, caching).
//
// Every fatal condition the analyser or the registry can raise is tagged
// with a Kind so that callers (and Arparma.ErrorInfo) can switch on the
// failure class without string-matching messages.
package errors

import "fmt"

// Kind classifies a parsing or registry failure.
type Kind uint8

// Error kinds, in the order spec.md §7 lists them.
const (
	// Unknown is the zero value; it should never be returned deliberately.
	Unknown Kind = iota

	// HeaderMissing means no registered header matched the input's head token(s).
	HeaderMissing

	// FuzzyMatchSuccess is non-fatal: it carries a suggested header or alias.
	FuzzyMatchSuccess

	// UnexpectedToken means a token was seen that the current analyser state
	// does not know how to consume.
	UnexpectedToken

	// ArgMissing means a required argument slot was never fed a token.
	ArgMissing

	// ArgInvalid means a pattern failed to match/convert a fed token.
	ArgInvalid

	// DuplicateCommand is raised at compile/registration time on a fingerprint
	// or node-name collision.
	DuplicateCommand

	// BehaveCancelled is raised by a Behavior to skip itself silently.
	BehaveCancelled

	// OutBoundsBehave is raised by a Behavior to demote the whole result to failed.
	OutBoundsBehave

	// AmbiguousQuery means a dotted-path query name collides between an
	// option and a subcommand at the same scope.
	AmbiguousQuery
)

var kindNames = [...]string{
	"unknown",
	"header missing",
	"fuzzy match suggestion",
	"unexpected token",
	"argument missing",
	"argument invalid",
	"duplicate command",
	"behavior cancelled",
	"behavior out of bounds",
	"ambiguous query",
}

// String renders the kind's name.
func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "unrecognized error kind"
	}
	return kindNames[k]
}

// Error is the concrete error type produced by the analyser and the registry.
// It carries a Kind for programmatic dispatch plus a human message, and may
// wrap an underlying cause (e.g. a Pattern's conversion error).
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same Kind, so that
// errors.Is(err, errors.New(ArgMissing, "")) style checks work on the Kind alone.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New builds an *Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf builds an *Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an *Error of the given kind around a cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf extracts the Kind from err, returning Unknown if err is not (or does
// not wrap) an *Error.
func KindOf(err error) Kind {
	var e *Error
	if ok := asError(err, &e); ok {
		return e.Kind
	}
	return Unknown
}

// asError is a tiny local errors.As so this package need not import the
// stdlib "errors" package under a name that collides with itself.
func asError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
