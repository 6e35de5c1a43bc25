package stream

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code classifies an Error.
type Code int

const (
	// ProviderFailure is an opaque internal or transport error. It's never
	// retried, and is propagated to the caller as-is.
	ProviderFailure Code = iota + 1
	// EOF is returned when a read is attempted past the last Field.
	EOF
	// FormatError is returned for a conversion outside of the conversion
	// matrix, an invalid WriteObject type, or an interleaved read of a
	// partially consumed Bytes Field.
	FormatError
	// NullValueError is returned when a null Field is read as a type having
	// no defined null conversion (Char).
	NullValueError
	// NotReadable is returned when reading a Message in WriteOnly mode.
	NotReadable
	// NotWriteable is returned when writing a Message in ReadOnly mode.
	NotWriteable
)

func (c Code) String() string {
	switch c {
	case ProviderFailure:
		return "provider failure"
	case EOF:
		return "end of stream"
	case FormatError:
		return "format error"
	case NullValueError:
		return "null value"
	case NotReadable:
		return "not readable"
	case NotWriteable:
		return "not writeable"
	default:
		return fmt.Sprintf("Code(%d)", int(c))
	}
}

// Error is the error type returned by all Message operations.
type Error struct {
	Code Code
	// Reason describes the specific failure.
	Reason string
	// VendorCode is an optional provider-specific error code.
	VendorCode string
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	var s = "stream: " + e.Code.String()
	if e.Reason != "" {
		s += ": " + e.Reason
	}
	if e.VendorCode != "" {
		s += " (" + e.VendorCode + ")"
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the underlying cause of the Error.
func (e *Error) Unwrap() error { return e.Err }

// Cause returns the underlying cause of the Error, for errors.Cause.
func (e *Error) Cause() error { return e.Err }

// Is matches |target| if it's an *Error of the same Code, and either
// |target| has no Reason or the Reasons are equal. The package sentinels
// therefore match any Error of their Code.
func (e *Error) Is(target error) bool {
	var t, ok = target.(*Error)
	if !ok || t.Code != e.Code {
		return false
	}
	return t.Reason == "" || t.Reason == e.Reason
}

// Sentinels for use with errors.Is.
var (
	ErrProviderFailure = &Error{Code: ProviderFailure}
	ErrEOF             = &Error{Code: EOF}
	ErrFormat          = &Error{Code: FormatError}
	ErrNullValue       = &Error{Code: NullValueError}
	ErrNotReadable     = &Error{Code: NotReadable}
	ErrNotWriteable    = &Error{Code: NotWriteable}
)

// CodeOf returns the Code of the *Error wrapped by |err|, if there is one.
func CodeOf(err error) (Code, bool) {
	var se *Error
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// NewProviderFailure wraps |err| as a ProviderFailure Error with |reason|.
// It returns nil if |err| is nil. An |err| which is already a ProviderFailure
// is returned unchanged.
func NewProviderFailure(err error, reason string) error {
	if err == nil {
		return nil
	} else if code, ok := CodeOf(err); ok && code == ProviderFailure {
		return err
	}
	return &Error{Code: ProviderFailure, Reason: reason, Err: err}
}

func newError(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Reason: fmt.Sprintf(format, args...)}
}

// Reasons of Errors returned by Message, exported so callers may match a
// specific failure with errors.Is(err, &Error{Code: ..., Reason: ...}).
const (
	ReasonEndOfStream       = "unexpected end of stream"
	ReasonInvalidObjectType = "invalid object type for stream field"
	ReasonExpectedBytes     = "expected byte field"
	ReasonInterleavedRead   = "interleaved read of a partially consumed byte field"
	ReasonBodyTooLarge      = "message body size limit exceeded"
	ReasonWriteOnly         = "message body is in write-only mode"
	ReasonReadOnly          = "message body is in read-only mode"
)
