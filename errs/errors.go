/*
Package errs holds the error taxonomy shared by all packages of this module.

Every failure raised by packages of this module is an *Error carrying a
Kind. Clients test for a kind with errors.Is
against one of the sentinels:

	if errors.Is(err, errs.ErrDuplicateLabel) { … }

An *Error may wrap an underlying cause (e.g., an *fs.PathError for IO
failures), which stays reachable through errors.Is and errors.As.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package errs

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind int

const (
	KindUnknown       Kind = iota
	KindDuplicateLabel     // label name already present in a document
	KindCapability         // item cannot be rendered as text
	KindRange              // bit position or byte index out of bounds
	KindOverflow           // value does not fit its target format
	KindInvalidFormat      // unrecognized literal format, font magic or layout
	KindTruncatedFile      // input too short for the structure it claims to hold
	KindIO                 // file open/read/write failure
)

// String returns a human-readable representation of the error kind.
func (k Kind) String() string {
	switch k {
	case KindDuplicateLabel:
		return "DUPLICATE-LABEL"
	case KindCapability:
		return "CAPABILITY"
	case KindRange:
		return "RANGE"
	case KindOverflow:
		return "OVERFLOW"
	case KindInvalidFormat:
		return "INVALID-FORMAT"
	case KindTruncatedFile:
		return "TRUNCATED-FILE"
	case KindIO:
		return "IO"
	default:
		return "UNKNOWN"
	}
}

// Error is the error type of this module.
type Error struct {
	Kind   Kind   // classification
	Op     string // operation which failed (e.g., "psf.Parse", "asm.AddLabel")
	Issue  string // human-readable description of the issue
	Offset int    // byte offset or bit position the error refers to; -1 if not applicable
	Err    error  // underlying cause, may be nil
}

// Sentinels to match against with errors.Is.
var (
	ErrDuplicateLabel = &Error{Kind: KindDuplicateLabel}
	ErrCapability     = &Error{Kind: KindCapability}
	ErrRange          = &Error{Kind: KindRange}
	ErrOverflow       = &Error{Kind: KindOverflow}
	ErrInvalidFormat  = &Error{Kind: KindInvalidFormat}
	ErrTruncatedFile  = &Error{Kind: KindTruncatedFile}
	ErrIO             = &Error{Kind: KindIO}
)

// New creates an error of kind k without an offset.
func New(k Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: k, Op: op, Issue: fmt.Sprintf(format, args...), Offset: -1}
}

// At creates an error of kind k referring to an offset or position.
func At(k Kind, op string, offset int, format string, args ...any) *Error {
	return &Error{Kind: k, Op: op, Issue: fmt.Sprintf(format, args...), Offset: offset}
}

// Wrap creates an error of kind k with cause err. A nil err yields nil.
func Wrap(k Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, Op: op, Issue: err.Error(), Offset: -1, Err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("[%s] %s at offset %d: %s", e.Kind, e.Op, e.Offset, e.Issue)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Kind, e.Op, e.Issue)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. This lets the
// sentinels above match any error of their kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
