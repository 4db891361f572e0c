package briar

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind is the taxonomy of failures the interpreter can raise. Exactly
// one applies to any failure raised out of CORE.
type ErrorKind int

const (
	KindSyntax ErrorKind = iota
	KindName
	KindType
	KindIndex
	KindArithmetic
)

func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "SyntaxError"
	case KindName:
		return "NameError"
	case KindType:
		return "TypeError"
	case KindIndex:
		return "IndexError"
	case KindArithmetic:
		return "ArithmeticError"
	default:
		return "Error"
	}
}

// RuntimeError is the concrete error type raised by every CORE failure. It
// carries the kind, a source location (nil for failures with no useful
// position, such as an indentation pass error), and a human message.
// newErr wraps it with a github.com/pkg/errors stack at construction, and
// callers can still errors.As it back out of the wrapped chain.
type RuntimeError struct {
	Kind ErrorKind
	Loc *SrcLoc
	Msg string
	// Val is set only for user-raised exceptions (the error() builtin,
	// interpreter-level supplement); it carries the exact Value the script
	// passed to error(), not just its display string.
	Val Value
}

func (e *RuntimeError) Error() string {
	if e.Loc != nil {
		return fmt.Sprintf("%s: %s: %s", e.Loc, e.Kind, e.Msg)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newErr(kind ErrorKind, loc *SrcLoc, format string, args ...interface{}) error {
	return errors.WithStack(&RuntimeError{
		Kind: kind,
		Loc: loc,
		Msg: fmt.Sprintf(format, args...),
	})
}

func newSyntaxError(loc *SrcLoc, format string, args ...interface{}) error {
	return newErr(KindSyntax, loc, format, args...)
}

func newNameError(loc *SrcLoc, name string) error {
	return newErr(KindName, loc, "name '%s' is not defined", name)
}

func newTypeError(loc *SrcLoc, expected, got string) error {
	return newErr(KindType, loc, "expected %s, got %s", expected, got)
}

func newIndexError(loc *SrcLoc, index, length int) error {
	return newErr(KindIndex, loc, "index %d out of range for length %d", index, length)
}

func newArithmeticError(loc *SrcLoc, msg string) error {
	return newErr(KindArithmetic, loc, "%s", msg)
}

// newException wraps a user-raised Value from the error() builtin
// (interpreter-level supplement). It still aborts evaluation like any other
// RuntimeError; there is no user-level catch in this language.
func newException(loc *SrcLoc, val Value) error {
	msg := "exception"
	if s, ok := val.(*ValueStr); ok {
		msg = s.S
	}
	return errors.WithStack(&RuntimeError{
		Kind: KindType,
		Loc: loc,
		Msg: msg,
		Val: val,
	})
}

// KindOf unwraps err (following any github.com/pkg/errors wrapping) to the
// ErrorKind it carries, or false if err is not a RuntimeError.
func KindOf(err error) (ErrorKind, bool) {
	var re *RuntimeError
	if errors.As(err, &re) {
		return re.Kind, true
	}
	return 0, false
}
