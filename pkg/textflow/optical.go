package textflow

import (
	"strings"
	"unicode"
)

// Text alignments understood by the optical offset.
const (
	AlignLeft  = "left"
	AlignRight = "right"
)

// Hanging punctuation fractions, in ems of the current font size. Quotes
// hang the most, brackets the least; the values follow common optical
// margin practice rather than any font metric.
var hangOpening = map[rune]float64{
	'"':      0.40,
	'\'':     0.25,
	'“': 0.40, // left double quotation mark
	'‘': 0.25, // left single quotation mark
	'«': 0.30, // double angle quote
	'‹': 0.20, // single angle quote
	'(':      0.15,
	'[':      0.15,
	'{':      0.15,
}

var hangClosing = map[rune]float64{
	'"':      0.40,
	'\'':     0.25,
	'”': 0.40,
	'’': 0.25,
	'»': 0.30,
	'›': 0.20,
	')':      0.15,
	']':      0.15,
	'}':      0.15,
	',':      0.30,
	'.':      0.30,
	'-':      0.30,
	':':      0.25,
	';':      0.25,
}

// OpticalOffset returns the horizontal shift, in the width callback's
// unit, that hangs a line's edge punctuation outside the text column.
// Left-aligned lines starting with an opening quote or bracket shift
// negative (leftward); right-aligned lines ending in closing punctuation
// shift positive. The shift is an em fraction of fontSize, never more
// than 90% of the glyph's own measured width. Anything else, including a
// non-positive font size, yields zero.
func OpticalOffset(line, align string, fontSize float64, width WidthFunc) float64 {
	if fontSize <= 0 {
		return 0
	}
	visible := strings.TrimFunc(line, unicode.IsSpace)
	if visible == "" {
		return 0
	}
	runes := []rune(visible)

	switch align {
	case AlignRight:
		last := runes[len(runes)-1]
		frac, ok := hangClosing[last]
		if !ok {
			return 0
		}
		return clampToGlyph(frac*fontSize, string(last), width)
	default:
		first := runes[0]
		frac, ok := hangOpening[first]
		if !ok {
			return 0
		}
		return -clampToGlyph(frac*fontSize, string(first), width)
	}
}

// clampToGlyph keeps a hang offset within 90% of the glyph's measured
// width so thin glyphs never hang fully outside the column.
func clampToGlyph(offset float64, glyph string, width WidthFunc) float64 {
	if w := width(glyph); w > 0 && offset > 0.9*w {
		return 0.9 * w
	}
	return offset
}
