package irap

import "github.com/scigolib/irap/internal/geom"

// Header is the geometric header of an Irap regular surface: grid extents,
// origin, spacing, derived maxes, and rotation. See the format spec for the
// exact field semantics.
type Header = geom.Header

// NewHeader builds a Header with ncol/nrow and sane defaults (xinc/yinc
// default to 1, all else to 0).
func NewHeader(ncol, nrow int32) *Header {
	return geom.New(ncol, nrow)
}
