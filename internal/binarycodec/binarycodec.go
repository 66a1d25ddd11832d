// Package binarycodec implements the Fortran-unformatted-sequential binary
// Irap grammar: big-endian fixed header records R1-R3 followed by one or
// more column-major value records, each framed by matching 4-byte
// big-endian length markers.
package binarycodec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/scigolib/irap/internal/geom"
	"github.com/scigolib/irap/internal/ierrors"
	"github.com/scigolib/irap/internal/iobuf"
	"github.com/scigolib/irap/internal/utils"
)

// Magic is the leading header integer that identifies an Irap binary stream.
const Magic = int32(-996)

// Sentinel is the f32 bit pattern that stands in for NaN in the value
// records.
const Sentinel = float32(9999900.0)

const (
	r1PayloadLen = 32
	r2PayloadLen = 16
	r3PayloadLen = 28
	reservedR3   = 7
)

// recordReader implements the ReadPrefix -> ReadPayload(n) -> ReadSuffix ->
// Validate(prefix==suffix) state machine every Fortran record goes through.
type recordReader struct {
	src iobuf.Source
}

func (r *recordReader) readLen() (uint32, error) {
	b, err := r.src.ReadExact(4)
	if err != nil {
		return 0, ierrors.New(ierrors.TruncatedEndOfFile, int64(r.src.Pos()), fmt.Errorf("reading record length marker: %w", err))
	}
	return binary.BigEndian.Uint32(b), nil
}

// readRecord reads one complete framed record and returns its payload.
func (r *recordReader) readRecord() ([]byte, error) {
	prefix, err := r.readLen()
	if err != nil {
		return nil, err
	}
	if uint64(prefix) > uint64(r.src.Remaining()) {
		return nil, ierrors.New(ierrors.TruncatedBuffer, int64(r.src.Pos()), fmt.Errorf("declared record length %d exceeds remaining %d bytes", prefix, r.src.Remaining()))
	}
	payload, err := r.src.ReadExact(int(prefix))
	if err != nil {
		return nil, ierrors.New(ierrors.TruncatedEndOfFile, int64(r.src.Pos()), fmt.Errorf("reading record payload: %w", err))
	}
	suffix, err := r.readLen()
	if err != nil {
		return nil, err
	}
	if suffix != prefix {
		return nil, ierrors.New(ierrors.RecordFrame, int64(r.src.Pos()), fmt.Errorf("record prefix %d != suffix %d", prefix, suffix))
	}
	return payload, nil
}

func readI32(b []byte, off int) int32 {
	return int32(binary.BigEndian.Uint32(b[off : off+4]))
}

func readF32(b []byte, off int) float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(b[off : off+4]))
}

// Decode parses the binary grammar from src, returning the header and the
// values grid materialized as values[col][row].
func Decode(src iobuf.Source) (*geom.Header, [][]float32, error) {
	rr := &recordReader{src: src}

	r1, err := rr.readRecord()
	if err != nil {
		return nil, nil, err
	}
	if len(r1) != r1PayloadLen {
		return nil, nil, ierrors.New(ierrors.TruncatedBuffer, int64(src.Pos()), fmt.Errorf("header record R1: expected %d bytes, got %d", r1PayloadLen, len(r1)))
	}
	magic := readI32(r1, 0)
	if magic != Magic {
		return nil, nil, ierrors.New(ierrors.BadMagic, 0, fmt.Errorf("expected leading magic %d, got %d", Magic, magic))
	}
	nrow := readI32(r1, 4)
	xori := float64(readF32(r1, 8))
	xmax := float64(readF32(r1, 12))
	yori := float64(readF32(r1, 16))
	ymax := float64(readF32(r1, 20))
	xinc := float64(readF32(r1, 24))
	yinc := float64(readF32(r1, 28))

	r2, err := rr.readRecord()
	if err != nil {
		return nil, nil, err
	}
	if len(r2) != r2PayloadLen {
		return nil, nil, ierrors.New(ierrors.TruncatedBuffer, int64(src.Pos()), fmt.Errorf("header record R2: expected %d bytes, got %d", r2PayloadLen, len(r2)))
	}
	ncol := readI32(r2, 0)
	rot := float64(readF32(r2, 4))
	xrot := float64(readF32(r2, 8))
	yrot := float64(readF32(r2, 12))

	r3, err := rr.readRecord()
	if err != nil {
		return nil, nil, err
	}
	if len(r3) != r3PayloadLen {
		return nil, nil, ierrors.New(ierrors.TruncatedBuffer, int64(src.Pos()), fmt.Errorf("header record R3: expected %d bytes, got %d", r3PayloadLen, len(r3)))
	}

	h := &geom.Header{
		Ncol: ncol, Nrow: nrow,
		Xori: xori, Yori: yori,
		Xinc: xinc, Yinc: yinc,
		Xmax: xmax, Ymax: ymax,
		Rot:  rot,
		Xrot: xrot, Yrot: yrot,
	}
	if err := h.Validate(); err != nil {
		return nil, nil, err
	}

	total, err := safeGridCount(uint64(h.Ncol), uint64(h.Nrow))
	if err != nil {
		return nil, nil, err
	}

	flat := make([]float32, 0, total)
	for uint64(len(flat)) < total {
		payload, err := rr.readRecord()
		if err != nil {
			return nil, nil, err
		}
		if len(payload)%4 != 0 {
			return nil, nil, ierrors.New(ierrors.TruncatedBuffer, int64(src.Pos()), fmt.Errorf("value record length %d is not a multiple of 4", len(payload)))
		}
		n := len(payload) / 4
		if n == 0 {
			return nil, nil, ierrors.New(ierrors.TruncatedFill, int64(src.Pos()), fmt.Errorf("empty value record"))
		}
		for i := 0; i < n; i++ {
			v := readF32(payload, i*4)
			if v == Sentinel {
				v = float32(math.NaN())
			}
			flat = append(flat, v)
		}
	}
	if uint64(len(flat)) != total {
		return nil, nil, ierrors.New(ierrors.TruncatedFill, int64(src.Pos()), fmt.Errorf("filled %d of %d samples", len(flat), total))
	}

	values := make([][]float32, h.Ncol)
	for col := range values {
		values[col] = make([]float32, h.Nrow)
	}
	// The flat stream runs in storage order: all columns of row 0, then row
	// 1, etc., regardless of how the producer chunked it into records.
	idx := 0
	for row := int32(0); row < h.Nrow; row++ {
		for col := int32(0); col < h.Ncol; col++ {
			values[col][row] = flat[idx]
			idx++
		}
	}

	return h, values, nil
}

// Encode emits h and values in the binary grammar to sink. h is validated
// and its R1 xmax/ymax recomputed before emission.
func Encode(h *geom.Header, values [][]float32, sink iobuf.Sink) error {
	if err := h.Validate(); err != nil {
		return err
	}
	h.DeriveMaxes()

	r1 := make([]byte, r1PayloadLen)
	magic := Magic
	binary.BigEndian.PutUint32(r1[0:4], uint32(magic))
	binary.BigEndian.PutUint32(r1[4:8], uint32(h.Nrow))
	binary.BigEndian.PutUint32(r1[8:12], math.Float32bits(float32(h.Xori)))
	binary.BigEndian.PutUint32(r1[12:16], math.Float32bits(float32(h.Xmax)))
	binary.BigEndian.PutUint32(r1[16:20], math.Float32bits(float32(h.Yori)))
	binary.BigEndian.PutUint32(r1[20:24], math.Float32bits(float32(h.Ymax)))
	binary.BigEndian.PutUint32(r1[24:28], math.Float32bits(float32(h.Xinc)))
	binary.BigEndian.PutUint32(r1[28:32], math.Float32bits(float32(h.Yinc)))
	if err := writeRecord(sink, r1); err != nil {
		return err
	}

	r2 := make([]byte, r2PayloadLen)
	binary.BigEndian.PutUint32(r2[0:4], uint32(h.Ncol))
	binary.BigEndian.PutUint32(r2[4:8], math.Float32bits(float32(h.Rot)))
	binary.BigEndian.PutUint32(r2[8:12], math.Float32bits(float32(h.Xrot)))
	binary.BigEndian.PutUint32(r2[12:16], math.Float32bits(float32(h.Yrot)))
	if err := writeRecord(sink, r2); err != nil {
		return err
	}

	r3 := make([]byte, r3PayloadLen)
	if err := writeRecord(sink, r3); err != nil {
		return err
	}

	return encodeValueRecords(h, values, sink)
}

// encodeValueRecords chunks the column-major values into one record per
// row, ncol samples each, producing nrow value records.
func encodeValueRecords(h *geom.Header, values [][]float32, sink iobuf.Sink) error {
	buf := utils.GetBuffer(int(h.Ncol) * 4)
	defer utils.ReleaseBuffer(buf)

	for row := int32(0); row < h.Nrow; row++ {
		payload := buf[:h.Ncol*4]
		for col := int32(0); col < h.Ncol; col++ {
			v := values[col][row]
			var bits uint32
			if isNaN32(v) {
				bits = math.Float32bits(Sentinel)
			} else {
				bits = math.Float32bits(v)
			}
			binary.BigEndian.PutUint32(payload[col*4:col*4+4], bits)
		}
		if err := writeRecord(sink, payload); err != nil {
			return err
		}
	}
	return nil
}

func writeRecord(sink iobuf.Sink, payload []byte) error {
	var marker [4]byte
	binary.BigEndian.PutUint32(marker[:], uint32(len(payload)))
	if err := sink.WriteAll(marker[:]); err != nil {
		return ierrors.New(ierrors.IOError, -1, err)
	}
	if err := sink.WriteAll(payload); err != nil {
		return ierrors.New(ierrors.IOError, -1, err)
	}
	if err := sink.WriteAll(marker[:]); err != nil {
		return ierrors.New(ierrors.IOError, -1, err)
	}
	return nil
}

func isNaN32(v float32) bool {
	return v != v
}

func safeGridCount(ncol, nrow uint64) (uint64, error) {
	total, err := utils.SafeMultiply(ncol, nrow)
	if err != nil {
		return 0, ierrors.NewField(ierrors.BadShape, "ncol*nrow", err)
	}
	if err := utils.ValidateBufferSize(total, utils.MaxGridElements, "grid sample count"); err != nil {
		return 0, ierrors.NewField(ierrors.BadShape, "ncol*nrow", err)
	}
	return total, nil
}
