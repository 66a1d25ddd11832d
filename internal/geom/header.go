// Package geom defines the Irap surface header shared by the public irap
// package and the ascii/binary codec packages. It lives under internal/ so
// that the codec packages can depend on the header type without the root
// package importing them back (which would be an import cycle), since the
// root package re-exports Header as a type alias.
package geom

import (
	"fmt"

	"github.com/scigolib/irap/internal/ierrors"
)

// Header is the geometric header of an Irap regular surface: grid extents,
// origin, spacing, derived maxes, and rotation.
type Header struct {
	Ncol, Nrow int32
	Xori, Yori float64
	Xinc, Yinc float64
	Xmax, Ymax float64
	Rot        float64
	Xrot, Yrot float64
}

// DeriveMaxes sets Xmax/Ymax from the origin, increment, and extents. Called
// by both encoders before emission, since the stored maxes are only
// canonical on write.
func (h *Header) DeriveMaxes() {
	h.Xmax = h.Xori + float64(h.Ncol-1)*h.Xinc
	h.Ymax = h.Yori + float64(h.Nrow-1)*h.Yinc
}

// Validate checks the extent and spacing invariants. It is called at the
// entry of every encode operation; decode enforces the same check against
// the header it has just parsed.
func (h *Header) Validate() error {
	if h.Ncol < 1 {
		return ierrors.NewField(ierrors.BadShape, "ncol", fmt.Errorf("invalid ncol %d: must be >= 1", h.Ncol))
	}
	if h.Nrow < 1 {
		return ierrors.NewField(ierrors.BadShape, "nrow", fmt.Errorf("invalid nrow %d: must be >= 1", h.Nrow))
	}
	if h.Xinc <= 0 {
		return ierrors.NewField(ierrors.BadShape, "xinc", fmt.Errorf("invalid xinc %g: must be > 0", h.Xinc))
	}
	if h.Yinc <= 0 {
		return ierrors.NewField(ierrors.BadShape, "yinc", fmt.Errorf("invalid yinc %g: must be > 0", h.Yinc))
	}
	return nil
}

// XrotOrDefault returns Xrot, falling back to Xori when the caller left the
// rotation center unset (zero value).
func (h *Header) XrotOrDefault() float64 {
	if h.Xrot == 0 {
		return h.Xori
	}
	return h.Xrot
}

// YrotOrDefault returns Yrot, falling back to Yori when the caller left the
// rotation center unset (zero value).
func (h *Header) YrotOrDefault() float64 {
	if h.Yrot == 0 {
		return h.Yori
	}
	return h.Yrot
}

// New builds a Header with ncol/nrow and sane defaults (xinc/yinc default
// to 1, all else to 0), mirroring the reference implementation's
// convenience constructor IrapHeader(ncol=..., nrow=..., ...).
func New(ncol, nrow int32) *Header {
	return &Header{
		Ncol: ncol,
		Nrow: nrow,
		Xinc: 1,
		Yinc: 1,
	}
}
