// Package units provides the point/millimeter/pixel conversions used
// throughout Gridwerk.
//
// Points are the canonical unit: every geometry value the grid calculator
// produces is in PostScript points (1/72 inch). Millimeters appear on the
// reporting side (spec sheets quote page sizes in mm) and pixels on the
// screen side, where the density is configurable.
package units

import (
	"strconv"
	"strings"

	"github.com/gridwerk/gridwerk/pkg/errors"
)

// Unit identifies the unit a length value is expressed in.
type Unit int

const (
	Point Unit = iota // pt, the canonical unit
	Millimeter
	Pixel
)

// Conversion constants. One inch is exactly 72 points and 25.4 millimeters.
const (
	PtPerInch = 72.0
	MmPerInch = 25.4

	PtToMm = MmPerInch / PtPerInch
	MmToPt = PtPerInch / MmPerInch

	// DefaultDPI is the pixel density assumed when none is given.
	DefaultDPI = 96.0
)

// String returns the unit suffix ("pt", "mm", "px").
func (u Unit) String() string {
	switch u {
	case Millimeter:
		return "mm"
	case Pixel:
		return "px"
	default:
		return "pt"
	}
}

// Length is a numeric value together with its unit.
type Length struct {
	Value float64
	Unit  Unit
}

// Pt constructs a point-valued length.
func Pt(v float64) Length { return Length{Value: v, Unit: Point} }

// Mm constructs a millimeter-valued length.
func Mm(v float64) Length { return Length{Value: v, Unit: Millimeter} }

// Px constructs a pixel-valued length.
func Px(v float64) Length { return Length{Value: v, Unit: Pixel} }

// To converts the length to the target unit at the given pixel density.
// Pass [DefaultDPI] unless the caller knows the actual density.
func (l Length) To(target Unit, dpi float64) float64 {
	if dpi <= 0 {
		dpi = DefaultDPI
	}
	pt := l.toPt(dpi)
	switch target {
	case Millimeter:
		return pt * PtToMm
	case Pixel:
		return pt * dpi / PtPerInch
	default:
		return pt
	}
}

// ToPt converts the length to points at the default density.
func (l Length) ToPt() float64 { return l.To(Point, DefaultDPI) }

// ToMm converts the length to millimeters at the default density.
func (l Length) ToMm() float64 { return l.To(Millimeter, DefaultDPI) }

// ToPx converts the length to pixels at the given density.
func (l Length) ToPx(dpi float64) float64 { return l.To(Pixel, dpi) }

func (l Length) toPt(dpi float64) float64 {
	switch l.Unit {
	case Millimeter:
		return l.Value * MmToPt
	case Pixel:
		return l.Value * PtPerInch / dpi
	default:
		return l.Value
	}
}

// Parse reads a length string such as "12pt", "4mm" or "16px".
// A bare number is treated as points. Whitespace around the number and
// between number and suffix is tolerated.
func Parse(s string) (Length, error) {
	v := strings.TrimSpace(strings.ToLower(s))
	if v == "" {
		return Length{}, errors.New(errors.ErrCodeInvalidUnit, "empty length")
	}

	unit := Point
	num := v
	for _, suf := range []struct {
		s string
		u Unit
	}{{"mm", Millimeter}, {"px", Pixel}, {"pt", Point}} {
		if strings.HasSuffix(v, suf.s) {
			unit = suf.u
			num = strings.TrimSpace(strings.TrimSuffix(v, suf.s))
			break
		}
	}

	f, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return Length{}, errors.New(errors.ErrCodeInvalidUnit, "invalid length %q", s)
	}
	return Length{Value: f, Unit: unit}, nil
}
