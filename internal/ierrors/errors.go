// Package ierrors defines the codec's error taxonomy. It lives under
// internal/ so that the codec packages (asciicodec, binarycodec, geom,
// iobuf, mmapsrc) can construct typed errors without creating an import cycle
// back to the root package, which re-exports these types as its public
// error API.
package ierrors

import "fmt"

// Kind identifies the category of a codec error.
type Kind int

const (
	// BadMagic means the leading magic integer was not -996.
	BadMagic Kind = iota
	// NotAnInteger means an ASCII header token failed integer parsing.
	NotAnInteger
	// NotAFloat means an ASCII value token failed float parsing.
	NotAFloat
	// UnexpectedEOF means the source was exhausted mid-token or mid-record.
	UnexpectedEOF
	// TruncatedEndOfFile means the source ended before the header or
	// values grid could be filled.
	TruncatedEndOfFile
	// TruncatedFill means the values grid could not be filled to
	// ncol*nrow samples.
	TruncatedFill
	// TruncatedBuffer means a declared record length exceeded the remaining
	// source, or a record's length did not fit its expected layout.
	TruncatedBuffer
	// RecordFrame means a Fortran record's prefix and suffix length
	// markers disagreed.
	RecordFrame
	// BadShape means ncol, nrow, xinc, or yinc violated their invariants.
	BadShape
	// MapEmpty means a zero-byte file was memory-mapped.
	MapEmpty
	// IOError wraps an underlying sink/source I/O failure.
	IOError
)

// substring required by each Kind's error-matching contract.
var substrings = map[Kind]string{
	BadMagic:           "invalid magic",
	NotAnInteger:       "not a digit",
	NotAFloat:          "float parsing",
	UnexpectedEOF:      "unexpected end of file",
	TruncatedEndOfFile: "end of file",
	TruncatedFill:      "fill",
	TruncatedBuffer:    "buffer",
	RecordFrame:        "record frame",
	BadShape:           "invalid shape",
	MapEmpty:           "memory map",
	IOError:            "i/o",
}

// Error is the error type returned by every decode/encode operation. Offset
// is the byte offset into the source at which the failure was detected, or
// -1 if not applicable. Field is the header field name involved, or "" if
// not applicable.
type Error struct {
	Kind   Kind
	Offset int64
	Field  string
	Err    error
}

func (e *Error) Error() string {
	msg := substrings[e.Kind]
	switch {
	case e.Field != "" && e.Offset >= 0:
		msg = fmt.Sprintf("%s: field %q at offset %d", msg, e.Field, e.Offset)
	case e.Field != "":
		msg = fmt.Sprintf("%s: field %q", msg, e.Field)
	case e.Offset >= 0:
		msg = fmt.Sprintf("%s: at offset %d", msg, e.Offset)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap exposes the wrapped cause for errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an *Error anchored to a byte offset, with no field name.
func New(kind Kind, offset int64, cause error) *Error {
	return &Error{Kind: kind, Offset: offset, Field: "", Err: cause}
}

// NewField builds an *Error naming a header field, with no byte offset.
func NewField(kind Kind, field string, cause error) *Error {
	return &Error{Kind: kind, Offset: -1, Field: field, Err: cause}
}
