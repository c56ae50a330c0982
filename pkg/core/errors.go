package core

import (
	"fmt"
	"strings"
)

// ErrorKind is the closed set of structural error kinds.
type ErrorKind int

const (
	KindSyntax ErrorKind = iota
	KindArity
	KindCast
	KindUndefinedSymbol
	KindGeneric
	KindIO
)

// LispError is a structured error carrying one of the closed ErrorKinds.
type LispError struct {
	Kind ErrorKind

	// Syntax / Generic / IO
	Message string

	// Arity
	Expected   int
	Actual     int
	Vararg     bool
	CalleeName string

	// Cast
	FromRendered string
	ToName       string

	// UndefinedSymbol
	Name           string
	IsFunctionSlot bool
}

func (e *LispError) Error() string {
	switch e.Kind {
	case KindSyntax:
		return e.Message
	case KindArity:
		callee := e.CalleeName
		if callee == "" {
			callee = "<unknown>"
		}
		plus := ""
		if e.Vararg {
			plus = "+"
		}
		return fmt.Sprintf("wrong number of arguments (%d) passed to %s, expected %d%s",
			e.Actual, callee, e.Expected, plus)
	case KindCast:
		return fmt.Sprintf("cannot cast %s to %s", e.FromRendered, e.ToName)
	case KindUndefinedSymbol:
		slot := "symbol"
		if e.IsFunctionSlot {
			slot = "function"
		}
		return fmt.Sprintf("undefined %s %s", slot, e.Name)
	case KindGeneric:
		return e.Message
	case KindIO:
		return e.Message
	default:
		return "unknown error"
	}
}

// NewSyntaxError builds a Syntax error from a formatted message.
func NewSyntaxError(format string, args ...any) error {
	return &LispError{Kind: KindSyntax, Message: fmt.Sprintf(format, args...)}
}

// NewArityError builds an Arity error.
func NewArityError(expected, actual int, vararg bool, calleeName string) error {
	return &LispError{
		Kind:       KindArity,
		Expected:   expected,
		Actual:     actual,
		Vararg:     vararg,
		CalleeName: calleeName,
	}
}

// NewCastError builds a Cast error: fromRendered is the printed form of
// the source value, toName is the target tag's name.
func NewCastError(fromRendered, toName string) error {
	return &LispError{Kind: KindCast, FromRendered: fromRendered, ToName: toName}
}

// NewUndefinedSymbolError builds an UndefinedSymbol error.
func NewUndefinedSymbolError(name string, isFunctionSlot bool) error {
	return &LispError{Kind: KindUndefinedSymbol, Name: name, IsFunctionSlot: isFunctionSlot}
}

// NewGenericError builds the catch-all Generic error raised by the
// `error` primitive and internal plumbing.
func NewGenericError(format string, args ...any) error {
	return &LispError{Kind: KindGeneric, Message: fmt.Sprintf(format, args...)}
}

// NewIOError builds an IO error.
func NewIOError(details string) error {
	return &LispError{Kind: KindIO, Message: details}
}

// ErrorWithStackTrace wraps any error raised during evaluation with the
// stack trace captured at the frame that first detected it.
type ErrorWithStackTrace struct {
	Inner error
	Trace *Frame
}

func (e *ErrorWithStackTrace) Error() string { return e.Inner.Error() }

func (e *ErrorWithStackTrace) Unwrap() error { return e.Inner }

// Render produces the REPL's multi-line diagnostic:
//
//	error: <message>
//	stack trace:
//	  <frame-0>
//	  <frame-1>
//	  ...
//	  <top>
func (e *ErrorWithStackTrace) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "error: %s\n", e.Inner.Error())
	b.WriteString("stack trace:\n")
	for f := e.Trace; f != nil; f = f.parent {
		fmt.Fprintf(&b, "  %s\n", f.render())
	}
	return strings.TrimRight(b.String(), "\n")
}

// WrapError attaches trace to err unless err is already wrapped, in
// which case it is returned unchanged (wrapping is idempotent).
func WrapError(err error, trace *Frame) error {
	if err == nil {
		return nil
	}
	if already, ok := err.(*ErrorWithStackTrace); ok {
		return already
	}
	return &ErrorWithStackTrace{Inner: err, Trace: trace}
}

// PopFrame strips the youngest frame from a wrapped error's trace,
// leaving unwrapped errors unchanged. The `error` primitive does not go
// through it: it wraps its error with its caller's trace directly.
func PopFrame(err error) error {
	wrapped, ok := err.(*ErrorWithStackTrace)
	if !ok || wrapped.Trace == nil {
		return err
	}
	return &ErrorWithStackTrace{Inner: wrapped.Inner, Trace: wrapped.Trace.parent}
}
