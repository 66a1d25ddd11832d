// Package iobuf provides the uniform ByteSource/ByteSink abstractions the
// ASCII and binary codecs read from and write to, independent of whether
// the underlying storage is a caller-provided buffer, a memory-mapped
// file, or a streaming writer.
package iobuf

import (
	"github.com/scigolib/irap/internal/ierrors"
)

// Source exposes a contiguous byte view with a cursor, matching the
// ByteSource component of the format spec.
type Source interface {
	// AsSlice returns the full backing byte slice.
	AsSlice() []byte
	// Pos returns the current cursor offset.
	Pos() int
	// Remaining returns the number of unread bytes.
	Remaining() int
	// ReadExact consumes and returns exactly n bytes, advancing the
	// cursor. It fails with an ierrors.UnexpectedEOF error if fewer than
	// n bytes remain.
	ReadExact(n int) ([]byte, error)
}

// BufferSource wraps a caller-provided byte slice as a Source.
type BufferSource struct {
	buf []byte
	pos int
}

// NewBufferSource wraps buf for reading, starting at offset 0.
func NewBufferSource(buf []byte) *BufferSource {
	return &BufferSource{buf: buf}
}

// AsSlice returns the full backing byte slice.
func (s *BufferSource) AsSlice() []byte { return s.buf }

// Pos returns the current cursor offset.
func (s *BufferSource) Pos() int { return s.pos }

// Remaining returns the number of unread bytes.
func (s *BufferSource) Remaining() int { return len(s.buf) - s.pos }

// ReadExact consumes and returns exactly n bytes, advancing the cursor.
func (s *BufferSource) ReadExact(n int) ([]byte, error) {
	if n < 0 || s.pos+n > len(s.buf) {
		return nil, ierrors.New(ierrors.UnexpectedEOF, int64(s.pos), nil)
	}
	b := s.buf[s.pos : s.pos+n]
	s.pos += n
	return b, nil
}
