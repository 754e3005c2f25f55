// Package errors defines the error taxonomy Skillet's core surfaces to
// callers: lexing, parsing, and evaluation all fail with a typed *Error
// rather than a bare fmt.Errorf string.
package errors

import "fmt"

// Kind identifies which category of failure an Error represents.
type Kind int

const (
	LexError Kind = iota
	ParseError
	TypeError
	ArityError
	MissingVariable
	DivisionByZero
	IndexError
	NullMethod
	PluginError
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case ParseError:
		return "ParseError"
	case TypeError:
		return "TypeError"
	case ArityError:
		return "ArityError"
	case MissingVariable:
		return "MissingVariable"
	case DivisionByZero:
		return "DivisionByZero"
	case IndexError:
		return "IndexError"
	case NullMethod:
		return "NullMethod"
	case PluginError:
		return "PluginError"
	default:
		return "UnknownError"
	}
}

// Error is the single error type returned by the lexer, parser, and
// evaluator. Offset is the byte position in the source expression, or
// -1 when the failure has no natural source location (e.g. a plugin
// error returned from a script backend).
type Error struct {
	Kind    Kind
	Message string
	Offset  int
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Offset: -1}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return New(kind, fmt.Sprintf(format, args...))
}

func At(kind Kind, offset int, message string) *Error {
	return &Error{Kind: kind, Message: message, Offset: offset}
}

func Atf(kind Kind, offset int, format string, args ...interface{}) *Error {
	return At(kind, offset, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s at byte %d: %s", e.Kind, e.Offset, e.Message)
}

// WithOffset returns a copy of e with Offset set, useful when a lower
// layer raises an error that only the caller knows the source position
// for (e.g. a builtin handler that doesn't see the call-site offset).
func (e *Error) WithOffset(offset int) *Error {
	cp := *e
	cp.Offset = offset
	return &cp
}

// Is reports whether err is an *Error of the given kind, so callers can
// branch on failure category with errors.Is-style code without a type
// assertion at every call site.
func Is(err error, kind Kind) bool {
	se, ok := err.(*Error)
	return ok && se.Kind == kind
}
