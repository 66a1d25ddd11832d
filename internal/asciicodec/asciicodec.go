// Package asciicodec implements the ASCII ("classic") Irap surface
// grammar: a 19-token fixed header followed by ncol*nrow column-major
// float tokens, with a sentinel value standing in for NaN.
package asciicodec

import (
	"fmt"
	"strconv"

	"github.com/scigolib/irap/internal/geom"
	"github.com/scigolib/irap/internal/ierrors"
	"github.com/scigolib/irap/internal/iobuf"
	"github.com/scigolib/irap/internal/lex"
)

// Magic is the leading integer that identifies an Irap ASCII stream.
const Magic = -996

// Sentinel is the encoded magnitude that stands in for "undefined" in the
// ASCII values block.
const Sentinel = float32(9999900.0)

// maxLineTokens bounds how many value tokens encode emits per line; some
// consumer tools reject wider lines.
const maxLineTokens = 9

// reservedFieldCount is the number of trailing reserved zero fields in the
// ASCII header.
const reservedFieldCount = 7

func lexErrToIerr(err error, kind ierrors.Kind) error {
	var le *lex.Error
	if e, ok := err.(*lex.Error); ok {
		le = e
	}
	if le == nil {
		return ierrors.New(ierrors.TruncatedEndOfFile, -1, err)
	}
	if le.Kind == lex.EOF {
		return ierrors.New(ierrors.TruncatedEndOfFile, int64(le.Pos), nil)
	}
	return ierrors.New(kind, int64(le.Pos), err)
}

func readIntToken(c *lex.Cursor) (int64, error) {
	v, err := c.ReadInt()
	if err != nil {
		return 0, lexErrToIerr(err, ierrors.NotAnInteger)
	}
	return v, nil
}

func readFloatToken(c *lex.Cursor) (float64, error) {
	v, err := c.ReadF64()
	if err != nil {
		return 0, lexErrToIerr(err, ierrors.NotAFloat)
	}
	return v, nil
}

// Decode parses the ASCII grammar from src, returning the header and the
// values grid materialized as values[col][row].
func Decode(src iobuf.Source) (*geom.Header, [][]float32, error) {
	buf := src.AsSlice()
	c := lex.NewCursor(buf)

	if len(buf) == 0 {
		return nil, nil, ierrors.New(ierrors.UnexpectedEOF, 0, nil)
	}

	magic, err := readIntToken(c)
	if err != nil {
		return nil, nil, err
	}
	if magic != Magic {
		return nil, nil, ierrors.New(ierrors.BadMagic, 0, fmt.Errorf("expected leading magic %d, got %d", Magic, magic))
	}

	nrow, err := readIntToken(c)
	if err != nil {
		return nil, nil, err
	}
	xinc, err := readFloatToken(c)
	if err != nil {
		return nil, nil, err
	}
	yinc, err := readFloatToken(c)
	if err != nil {
		return nil, nil, err
	}
	xori, err := readFloatToken(c)
	if err != nil {
		return nil, nil, err
	}
	xmax, err := readFloatToken(c)
	if err != nil {
		return nil, nil, err
	}
	yori, err := readFloatToken(c)
	if err != nil {
		return nil, nil, err
	}
	ymax, err := readFloatToken(c)
	if err != nil {
		return nil, nil, err
	}
	ncol, err := readIntToken(c)
	if err != nil {
		return nil, nil, err
	}
	rot, err := readFloatToken(c)
	if err != nil {
		return nil, nil, err
	}
	xrot, err := readFloatToken(c)
	if err != nil {
		return nil, nil, err
	}
	yrot, err := readFloatToken(c)
	if err != nil {
		return nil, nil, err
	}

	for i := 0; i < reservedFieldCount; i++ {
		if _, err := readIntToken(c); err != nil {
			return nil, nil, err
		}
	}

	h := &geom.Header{
		Ncol: int32(ncol), Nrow: int32(nrow),
		Xori: xori, Yori: yori,
		Xinc: xinc, Yinc: yinc,
		Xmax: xmax, Ymax: ymax,
		Rot:  rot,
		Xrot: xrot, Yrot: yrot,
	}
	if err := h.Validate(); err != nil {
		return nil, nil, err
	}

	total, err := countFunc(h.Ncol, h.Nrow)
	if err != nil {
		return nil, nil, err
	}

	values := make([][]float32, h.Ncol)
	for col := range values {
		values[col] = make([]float32, h.Nrow)
	}

	// Tokens run in storage order: all columns of row 0, then row 1, etc.
	var filled uint64
	for row := int32(0); row < h.Nrow; row++ {
		for col := int32(0); col < h.Ncol; col++ {
			v, err := c.ReadF32()
			if err != nil {
				return nil, nil, lexErrToIerr(err, ierrors.NotAFloat)
			}
			if v == Sentinel {
				v = float32NaN()
			}
			values[col][row] = v
			filled++
		}
	}
	if filled != total {
		return nil, nil, ierrors.New(ierrors.TruncatedFill, int64(c.Pos), fmt.Errorf("filled %d of %d samples", filled, total))
	}

	return h, values, nil
}

// Encode emits h and values in the ASCII grammar to sink. h is validated
// and its derived maxes recomputed before emission.
func Encode(h *geom.Header, values [][]float32, sink iobuf.Sink) error {
	if err := h.Validate(); err != nil {
		return err
	}
	h.DeriveMaxes()

	var buf []byte
	appendInt := func(n int32) { buf = strconv.AppendInt(buf, int64(n), 10) }
	appendF64 := func(v float64) { buf = lex.FormatF64General(buf, v) }

	buf = strconv.AppendInt(buf, Magic, 10)
	buf = append(buf, ' ')
	appendInt(h.Nrow)
	buf = append(buf, ' ')
	appendF64(h.Xinc)
	buf = append(buf, ' ')
	appendF64(h.Yinc)
	buf = append(buf, '\n')

	appendF64(h.Xori)
	buf = append(buf, ' ')
	appendF64(h.Xmax)
	buf = append(buf, ' ')
	appendF64(h.Yori)
	buf = append(buf, ' ')
	appendF64(h.Ymax)
	buf = append(buf, '\n')

	appendInt(h.Ncol)
	buf = append(buf, ' ')
	appendF64(h.Rot)
	buf = append(buf, ' ')
	appendF64(h.Xrot)
	buf = append(buf, ' ')
	appendF64(h.Yrot)
	buf = append(buf, '\n')

	buf = append(buf, "0 0 0 0 0 0 0\n"...)

	if err := sink.WriteAll(buf); err != nil {
		return ierrors.New(ierrors.IOError, -1, err)
	}

	return encodeValues(h, values, sink)
}

func encodeValues(h *geom.Header, values [][]float32, sink iobuf.Sink) error {
	var line []byte
	onLine := 0

	flush := func() error {
		if onLine == 0 {
			return nil
		}
		line = append(line, '\n')
		if err := sink.WriteAll(line); err != nil {
			return ierrors.New(ierrors.IOError, -1, err)
		}
		line = line[:0]
		onLine = 0
		return nil
	}

	for row := int32(0); row < h.Nrow; row++ {
		for col := int32(0); col < h.Ncol; col++ {
			v := values[col][row]
			if onLine > 0 {
				line = append(line, ' ')
			}
			if isNaN32(v) {
				line = append(line, "9999900.0000"...)
			} else {
				line = lex.FormatF32Fixed(line, v)
			}
			onLine++
			if onLine == maxLineTokens {
				if err := flush(); err != nil {
					return err
				}
			}
		}
	}
	return flush()
}

func countFunc(ncol, nrow int32) (uint64, error) {
	total, err := safeGridCount(uint64(ncol), uint64(nrow))
	if err != nil {
		return 0, ierrors.NewField(ierrors.BadShape, "ncol*nrow", err)
	}
	return total, nil
}
