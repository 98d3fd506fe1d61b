// Package textmetrics measures text widths against real font files.
//
// The canvas-backed measurer loads the system's Helvetica (or a
// metric-compatible substitute) through github.com/tdewolff/canvas and
// reports true advance widths in points. When no usable font resolves,
// measurement degrades to a Helvetica metric table so wrapping and
// autofit stay functional on bare systems.
package textmetrics

import (
	"strings"
	"sync"

	"github.com/tdewolff/canvas"

	"github.com/gridwerk/gridwerk/pkg/fonts"
	"github.com/gridwerk/gridwerk/pkg/textflow"
)

// New returns the default measurer: canvas font faces wrapped in a
// width memo table.
func New() textflow.Measurer {
	return textflow.NewCachedMeasurer(NewCanvasMeasurer())
}

// CanvasMeasurer measures text with font faces loaded through
// github.com/tdewolff/canvas. Families are loaded once per style and
// shared; a style that fails to resolve falls back to the heuristic
// table permanently.
type CanvasMeasurer struct {
	mu       sync.Mutex
	families map[canvas.FontStyle]*canvas.FontFamily

	fallback HeuristicMeasurer
}

// NewCanvasMeasurer creates a measurer with an empty family cache.
func NewCanvasMeasurer() *CanvasMeasurer {
	return &CanvasMeasurer{
		families: map[canvas.FontStyle]*canvas.FontFamily{},
	}
}

// Measure returns the advance width of text in points when rendered in
// the given font.
func (m *CanvasMeasurer) Measure(font textflow.FontSpec, text string) float64 {
	if text == "" || font.Size <= 0 {
		return 0
	}
	style := fontStyle(font)
	family := m.family(style)
	if family == nil {
		return m.fallback.Measure(font, text)
	}
	face := family.Face(font.Size, canvas.Black, style, canvas.FontNormal)
	return face.TextWidth(text)
}

// family returns the loaded family for a style, loading it on first use.
// A nil entry records a style that could not be resolved.
func (m *CanvasMeasurer) family(style canvas.FontStyle) *canvas.FontFamily {
	m.mu.Lock()
	defer m.mu.Unlock()

	if family, ok := m.families[style]; ok {
		return family
	}

	bold := style&canvas.FontBold != 0
	italic := style&canvas.FontItalic != 0
	data, err := fonts.Resolve(bold, italic)
	if err != nil {
		m.families[style] = nil
		return nil
	}
	family := canvas.NewFontFamily(fonts.FontFamily)
	if err := family.LoadFont(data, 0, style); err != nil {
		m.families[style] = nil
		return nil
	}
	m.families[style] = family
	return family
}

// fontStyle maps a FontSpec to the canvas style flags.
func fontStyle(font textflow.FontSpec) canvas.FontStyle {
	style := canvas.FontRegular
	if strings.EqualFold(font.Weight, "bold") {
		style = canvas.FontBold
	}
	if font.Italic {
		style |= canvas.FontItalic
	}
	return style
}

// Ensure CanvasMeasurer implements Measurer.
var _ textflow.Measurer = (*CanvasMeasurer)(nil)
