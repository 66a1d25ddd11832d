// Package irap provides a pure Go codec for the Irap regular-surface file
// format, in both ASCII ("classic") and binary ("grd") variants.
package irap

import (
	"fmt"
	"io"

	"github.com/scigolib/irap/internal/asciicodec"
	"github.com/scigolib/irap/internal/binarycodec"
	"github.com/scigolib/irap/internal/ierrors"
	"github.com/scigolib/irap/internal/iobuf"
	"github.com/scigolib/irap/internal/iosink"
	"github.com/scigolib/irap/internal/mmapsrc"
)

// Surface is a decoded Irap regular surface: a geometric Header and a dense
// column-major grid of samples, Values[col][row]. NaN marks "no data".
type Surface struct {
	Header *Header
	Values [][]float32
}

// String renders a short human-readable summary of the surface.
func (s *Surface) String() string {
	if s == nil || s.Header == nil {
		return "Irap surface (empty)"
	}
	return fmt.Sprintf("Irap surface %dx%d, xori=%g yori=%g xinc=%g yinc=%g",
		s.Header.Ncol, s.Header.Nrow, s.Header.Xori, s.Header.Yori, s.Header.Xinc, s.Header.Yinc)
}

// NewSurfaceRowMajor builds a Surface from row-major values (rows[row][col]),
// transposing into the column-major layout the codec operates on.
func NewSurfaceRowMajor(h *Header, rows [][]float32) *Surface {
	values := make([][]float32, h.Ncol)
	for col := int32(0); col < h.Ncol; col++ {
		values[col] = make([]float32, h.Nrow)
		for row := int32(0); row < h.Nrow; row++ {
			values[col][row] = rows[row][col]
		}
	}
	return &Surface{Header: h, Values: values}
}

func bufferSourceFromReader(r io.Reader) (*iobuf.BufferSource, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, ierrors.New(ierrors.IOError, -1, err)
	}
	return iobuf.NewBufferSource(b), nil
}

// DecodeASCII decodes an Irap ASCII surface from r, reading it fully into
// memory first.
func DecodeASCII(r io.Reader) (*Surface, error) {
	src, err := bufferSourceFromReader(r)
	if err != nil {
		return nil, err
	}
	return decodeASCIISource(src)
}

// DecodeASCIIBytes decodes an Irap ASCII surface from an in-memory buffer.
func DecodeASCIIBytes(b []byte) (*Surface, error) {
	return decodeASCIISource(iobuf.NewBufferSource(b))
}

// DecodeASCIIString decodes an Irap ASCII surface from a string, equivalent
// to DecodeASCIIBytes([]byte(s)).
func DecodeASCIIString(s string) (*Surface, error) {
	return decodeASCIISource(iobuf.NewBufferSource([]byte(s)))
}

// DecodeASCIIFile memory-maps path and decodes it as an Irap ASCII surface.
func DecodeASCIIFile(path string) (*Surface, error) {
	src, err := mmapsrc.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeASCIISource(src)
}

func decodeASCIISource(src iobuf.Source) (*Surface, error) {
	h, values, err := asciicodec.Decode(src)
	if err != nil {
		return nil, err
	}
	return &Surface{Header: h, Values: values}, nil
}

// EncodeASCII encodes s in the ASCII grammar to w.
func EncodeASCII(s *Surface, w io.Writer) error {
	b, err := EncodeASCIIBytes(s)
	if err != nil {
		return err
	}
	_, werr := w.Write(b)
	if werr != nil {
		return ierrors.New(ierrors.IOError, -1, werr)
	}
	return nil
}

// EncodeASCIIBytes encodes s in the ASCII grammar and returns the bytes.
func EncodeASCIIBytes(s *Surface) ([]byte, error) {
	sink := iobuf.NewBufferSink()
	if err := asciicodec.Encode(s.Header, s.Values, sink); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// EncodeASCIIFile encodes s in the ASCII grammar to a newly created file at
// path.
func EncodeASCIIFile(s *Surface, path string) error {
	sink, err := iosink.NewFileSink(path)
	if err != nil {
		return ierrors.New(ierrors.IOError, -1, err)
	}
	encErr := asciicodec.Encode(s.Header, s.Values, sink)
	closeErr := sink.Close()
	if encErr != nil {
		return encErr
	}
	if closeErr != nil {
		return ierrors.New(ierrors.IOError, -1, closeErr)
	}
	return nil
}

// DecodeBinary decodes an Irap binary surface from r, reading it fully into
// memory first.
func DecodeBinary(r io.Reader) (*Surface, error) {
	src, err := bufferSourceFromReader(r)
	if err != nil {
		return nil, err
	}
	return decodeBinarySource(src)
}

// DecodeBinaryBytes decodes an Irap binary surface from an in-memory buffer.
func DecodeBinaryBytes(b []byte) (*Surface, error) {
	return decodeBinarySource(iobuf.NewBufferSource(b))
}

// DecodeBinaryFile memory-maps path and decodes it as an Irap binary
// surface.
func DecodeBinaryFile(path string) (*Surface, error) {
	src, err := mmapsrc.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return decodeBinarySource(src)
}

func decodeBinarySource(src iobuf.Source) (*Surface, error) {
	h, values, err := binarycodec.Decode(src)
	if err != nil {
		return nil, err
	}
	return &Surface{Header: h, Values: values}, nil
}

// EncodeBinary encodes s in the binary grammar to w.
func EncodeBinary(s *Surface, w io.Writer) error {
	b, err := EncodeBinaryBytes(s)
	if err != nil {
		return err
	}
	_, werr := w.Write(b)
	if werr != nil {
		return ierrors.New(ierrors.IOError, -1, werr)
	}
	return nil
}

// EncodeBinaryBytes encodes s in the binary grammar and returns the bytes.
func EncodeBinaryBytes(s *Surface) ([]byte, error) {
	sink := iobuf.NewBufferSink()
	if err := binarycodec.Encode(s.Header, s.Values, sink); err != nil {
		return nil, err
	}
	return sink.Bytes(), nil
}

// EncodeBinaryFile encodes s in the binary grammar to a newly created file
// at path.
func EncodeBinaryFile(s *Surface, path string) error {
	sink, err := iosink.NewFileSink(path)
	if err != nil {
		return ierrors.New(ierrors.IOError, -1, err)
	}
	encErr := binarycodec.Encode(s.Header, s.Values, sink)
	closeErr := sink.Close()
	if encErr != nil {
		return encErr
	}
	if closeErr != nil {
		return ierrors.New(ierrors.IOError, -1, closeErr)
	}
	return nil
}
