package textmetrics

import (
	"strings"
	"unicode"

	"github.com/gridwerk/gridwerk/pkg/textflow"
)

// HeuristicMeasurer estimates widths from Helvetica advance metrics
// without loading any font file. Estimates track real Helvetica within a
// few percent for ordinary Latin text, which is enough for wrapping and
// span fitting when no font resolves.
type HeuristicMeasurer struct{}

// Measure returns the estimated advance width of text in points.
func (HeuristicMeasurer) Measure(font textflow.FontSpec, text string) float64 {
	if text == "" || font.Size <= 0 {
		return 0
	}
	var units float64
	for _, r := range text {
		units += runeAdvance(r)
	}
	if strings.EqualFold(font.Weight, "bold") {
		units *= 1.05
	}
	return units * font.Size
}

// runeAdvance returns the advance of a rune in em units, following the
// Helvetica AFM widths for the common glyphs and class averages for the
// rest.
func runeAdvance(r rune) float64 {
	switch r {
	case ' ':
		return 0.278
	case 'i', 'j', 'l':
		return 0.222
	case 'f', 't':
		return 0.278
	case 'r':
		return 0.333
	case 'm':
		return 0.833
	case 'w':
		return 0.722
	case 'I':
		return 0.278
	case 'J':
		return 0.5
	case 'M':
		return 0.833
	case 'W':
		return 0.944
	case '.', ',', ':', ';', '!':
		return 0.278
	case '\'', '’', '‘':
		return 0.191
	case '"', '“', '”':
		return 0.333
	case '-', '(', ')', '[', ']':
		return 0.333
	case '@':
		return 1.015
	case '%':
		return 0.889
	}
	switch {
	case unicode.IsDigit(r):
		return 0.556
	case unicode.IsUpper(r):
		return 0.7
	case unicode.IsLower(r):
		return 0.556
	default:
		return 0.6
	}
}

// Ensure HeuristicMeasurer implements Measurer.
var _ textflow.Measurer = (*HeuristicMeasurer)(nil)
