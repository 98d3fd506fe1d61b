package grid

import (
	"slices"

	"github.com/gridwerk/gridwerk/pkg/errors"
)

// Orientation values accepted by [Settings].
const (
	Portrait  = "portrait"
	Landscape = "landscape"
)

// ISO 216 A-series page sizes in PostScript points, portrait orientation.
// Values carry three decimals so that derived millimeter sizes round back
// to the standard 210x297-style figures.
var formatSizes = map[string][2]float64{
	"A6": {297.638, 419.528},   // 105 x 148 mm
	"A5": {419.528, 595.276},   // 148 x 210 mm
	"A4": {595.276, 841.890},   // 210 x 297 mm
	"A3": {841.890, 1190.551},  // 297 x 420 mm
	"A2": {1190.551, 1683.780}, // 420 x 594 mm
	"A1": {1683.780, 2383.937}, // 594 x 841 mm
	"A0": {2383.937, 3370.394}, // 841 x 1189 mm
}

// Formats returns the supported format names, largest first.
func Formats() []string {
	names := make([]string, 0, len(formatSizes))
	for name := range formatSizes {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Orientations returns the supported orientation names.
func Orientations() []string {
	return []string{Portrait, Landscape}
}

// PageSize resolves a format name and orientation to page dimensions in
// points. Landscape swaps width and height before any other computation.
func PageSize(format, orientation string) (w, h float64, err error) {
	size, ok := formatSizes[format]
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidFormat, "Unsupported format: %q", format)
	}
	switch orientation {
	case Portrait:
		return size[0], size[1], nil
	case Landscape:
		return size[1], size[0], nil
	default:
		return 0, 0, errors.New(errors.ErrCodeInvalidOrientation, "Unsupported orientation: %q", orientation)
	}
}

// referenceFormat is the format all typographic scaling is relative to.
// Müller-Brockmann's grid literature treats A4 as the reference sheet.
const referenceFormat = "A4"

// scaleFactor returns the typographic scale of a page relative to A4,
// using the smaller dimension ratio so portrait and landscape of the same
// format scale identically.
func scaleFactor(w, h float64) float64 {
	ref := formatSizes[referenceFormat]
	sw := w / ref[0]
	sh := h / ref[1]
	if sw < sh {
		return sw
	}
	return sh
}
