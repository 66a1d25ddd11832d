package irap_test

import (
	"math"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scigolib/irap"
)

func TestSurfaceStringContainsIrap(t *testing.T) {
	s := &irap.Surface{Header: irap.NewHeader(1, 1), Values: [][]float32{{0}}}
	assert.Contains(t, s.String(), "Irap")
}

func TestDecodedValuesAreIndependentlyMutable(t *testing.T) {
	src := "-996 1 2.0 3.0\n0.0 4.0 0.0 5.0\n1 0.0 0.0 0.0\n0 0 0 0 0 0 0\n1.000000\n"
	s, err := irap.DecodeASCIIString(src)
	require.NoError(t, err)

	s.Values[0][0] = 42
	s2, err := irap.DecodeASCIIString(src)
	require.NoError(t, err)
	assert.Equal(t, float32(1.0), s2.Values[0][0])
}

func TestASCIIRoundTripBytes(t *testing.T) {
	h := irap.NewHeader(3, 2)
	h.Xori, h.Yori = 10, 20
	h.Xinc, h.Yinc = 5, 7
	s := &irap.Surface{Header: h, Values: [][]float32{{1, 4}, {2, 5}, {3, float32(math.NaN())}}}

	b, err := irap.EncodeASCIIBytes(s)
	require.NoError(t, err)

	s2, err := irap.DecodeASCIIBytes(b)
	require.NoError(t, err)

	assert.Equal(t, s.Header.Ncol, s2.Header.Ncol)
	assert.Equal(t, s.Header.Nrow, s2.Header.Nrow)
	assert.InDelta(t, s.Header.Xori, s2.Header.Xori, 1e-12)
	assert.Equal(t, s.Values[0], s2.Values[0])
	assert.True(t, math.IsNaN(float64(s2.Values[2][1])))
}

func TestBinaryRoundTripBytes(t *testing.T) {
	h := irap.NewHeader(2, 2)
	s := &irap.Surface{Header: h, Values: [][]float32{{1, 2}, {3, 4}}}

	b, err := irap.EncodeBinaryBytes(s)
	require.NoError(t, err)

	s2, err := irap.DecodeBinaryBytes(b)
	require.NoError(t, err)

	assert.Equal(t, s.Values, s2.Values)
}

func TestNewSurfaceRowMajorTransposes(t *testing.T) {
	h := irap.NewHeader(3, 2)
	rows := [][]float32{
		{1, 2, 3},
		{4, 5, 6},
	}
	s := irap.NewSurfaceRowMajor(h, rows)

	assert.Equal(t, []float32{1, 4}, s.Values[0])
	assert.Equal(t, []float32{2, 5}, s.Values[1])
	assert.Equal(t, []float32{3, 6}, s.Values[2])
}

func TestDecodeASCIIEmptyBufferIsUnexpectedEOF(t *testing.T) {
	_, err := irap.DecodeASCIIBytes(nil)
	require.Error(t, err)
	var ierr *irap.Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, irap.UnexpectedEOF, ierr.Kind)
}

func TestDecodeASCIIFileEmptyIsMapEmpty(t *testing.T) {
	path := t.TempDir() + "/empty.irap"
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	_, err := irap.DecodeASCIIFile(path)
	require.Error(t, err)
	var ierr *irap.Error
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, irap.MapEmpty, ierr.Kind)
	assert.Contains(t, err.Error(), "memory map")
}
