// Package iosink provides a buffered-file ByteSink: open for write, buffer
// writes, flush and close on every exit path.
package iosink

import (
	"bufio"
	"os"

	"github.com/scigolib/irap/internal/utils"
)

// FileSink wraps a buffered writer over a newly created file.
type FileSink struct {
	file *os.File
	w    *bufio.Writer
}

// NewFileSink creates (truncating if it exists) the file at path and
// returns a FileSink ready for writes.
func NewFileSink(path string) (*FileSink, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, utils.WrapError("creating output file", err)
	}
	return &FileSink{file: f, w: bufio.NewWriter(f)}, nil
}

// WriteAll buffers b for writing.
func (s *FileSink) WriteAll(b []byte) error {
	_, err := s.w.Write(b)
	return err
}

// Close flushes any buffered bytes and closes the underlying file. It must
// be called on every exit path, including error, to avoid leaking the file
// handle.
func (s *FileSink) Close() error {
	flushErr := s.w.Flush()
	closeErr := s.file.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
