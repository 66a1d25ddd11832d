package irap

import "github.com/scigolib/irap/internal/ierrors"

// Kind identifies the category of a codec error.
type Kind = ierrors.Kind

// Error is the error type returned by every decode/encode operation in this
// package. Offset is the byte offset into the source at which the failure
// was detected, or -1 if not applicable. Field is the header field name
// involved, or "" if not applicable.
type Error = ierrors.Error

// Error kinds, re-exported from internal/ierrors so callers can match on
// err.(*irap.Error).Kind without importing an internal package.
const (
	BadMagic           = ierrors.BadMagic
	NotAnInteger       = ierrors.NotAnInteger
	NotAFloat          = ierrors.NotAFloat
	UnexpectedEOF      = ierrors.UnexpectedEOF
	TruncatedEndOfFile = ierrors.TruncatedEndOfFile
	TruncatedFill      = ierrors.TruncatedFill
	TruncatedBuffer    = ierrors.TruncatedBuffer
	RecordFrame        = ierrors.RecordFrame
	BadShape           = ierrors.BadShape
	MapEmpty           = ierrors.MapEmpty
	IOError            = ierrors.IOError
)
