package sheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gridwerk/gridwerk/pkg/fonts"
	"github.com/gridwerk/gridwerk/pkg/grid"
)

// SVGOption configures SVG rendering via [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	baselines  bool
	typeLadder bool
	title      string
	overlay    *Overlay
}

// WithBaselines draws the baseline ruling underneath the module matrix,
// with every fourth line emphasized.
func WithBaselines() SVGOption { return func(r *svgRenderer) { r.baselines = true } }

// WithTypeLadder draws a type specimen ladder inside the content area, one
// line per derived style from display down to caption.
func WithTypeLadder() SVGOption { return func(r *svgRenderer) { r.typeLadder = true } }

// WithTitle annotates the sheet with a title, both as SVG metadata and as a
// small label above the content area.
func WithTitle(t string) SVGOption { return func(r *svgRenderer) { r.title = t } }

// WithOverlay places planned document content onto the sheet.
func WithOverlay(o *Overlay) SVGOption { return func(r *svgRenderer) { r.overlay = o } }

// baselineEpsilon absorbs floating-point drift when walking the ruling so
// a line landing exactly on the bottom margin is still drawn.
const baselineEpsilon = 0.01

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// RenderSVG renders the sheet as a self-contained SVG document: white
// ground, page boundary, dashed content frame and the module matrix, plus
// whatever layers the options enable. All coordinates are in PostScript
// points with the page's top-left corner at the origin.
func RenderSVG(s Sheet, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	g := s.Grid

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&buf, `<svg width="%.3f" height="%.3f" xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.3f %.3f">`+"\n",
		g.PageWidth, g.PageHeight, g.PageWidth, g.PageHeight)

	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", xmlEscaper.Replace(r.title))
	}

	buf.WriteString("  <!-- Page background -->\n")
	buf.WriteString(`  <rect width="100%" height="100%" fill="white"/>` + "\n")
	buf.WriteString("  <!-- Page boundary -->\n")
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.3f" height="%.3f" fill="none" stroke="gray" stroke-width="0.5"/>`+"\n",
		g.PageWidth, g.PageHeight)

	if r.baselines {
		renderBaselines(&buf, g)
	}

	buf.WriteString("  <!-- Content area boundary (dashed) -->\n")
	fmt.Fprintf(&buf, `  <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="none" stroke="blue" stroke-width="0.3" stroke-dasharray="2,2"/>`+"\n",
		g.Margins.Left, g.Margins.Top, g.ContentWidth, g.ContentHeight)

	renderModules(&buf, g)
	renderMarginLabels(&buf, g)

	if r.typeLadder {
		renderTypeLadder(&buf, g)
	}
	if r.overlay != nil {
		renderOverlay(&buf, r.overlay)
	}
	if r.title != "" {
		fmt.Fprintf(&buf, `  <text x="%.3f" y="%.3f" font-size="8" fill="gray">%s</text>`+"\n",
			g.Margins.Left, g.Margins.Top/2+3, xmlEscaper.Replace(r.title))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

// renderBaselines rules the vertical band between the margins. Every
// fourth line is emphasized in magenta so unit groups can be counted at a
// glance; the rest stay faint blue.
func renderBaselines(buf *bytes.Buffer, g *grid.Result) {
	buf.WriteString("  <!-- Baseline grid -->\n")
	bottom := g.PageHeight - g.Margins.Bottom
	for i := 0; ; i++ {
		y := g.Margins.Top + float64(i)*g.GridUnit
		if y > bottom+baselineEpsilon {
			break
		}
		color, width, opacity := "blue", 0.15, 0.3
		if i%4 == 0 {
			color, width, opacity = "magenta", 0.3, 0.6
		}
		fmt.Fprintf(buf, `  <line x1="%.3f" y1="%.3f" x2="%.3f" y2="%.3f" stroke="%s" stroke-width="%.2f" stroke-opacity="%.1f"/>`+"\n",
			g.Margins.Left, y, g.PageWidth-g.Margins.Right, y, color, width, opacity)
	}
	fmt.Fprintf(buf, `  <text x="%.3f" y="%.3f" font-size="8" fill="gray">Baseline grid: %.1fpt</text>`+"\n",
		g.Margins.Left+10, g.Margins.Top-5, g.GridUnit)
}

// renderModules draws the module matrix, one cyan rect per module.
func renderModules(buf *bytes.Buffer, g *grid.Result) {
	buf.WriteString("  <!-- Module matrix -->\n")
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			x := g.Margins.Left + float64(col)*(g.ModuleWidth+g.GutterH)
			y := g.Margins.Top + float64(row)*(g.ModuleHeight+g.GutterV)
			fmt.Fprintf(buf, `  <rect x="%.3f" y="%.3f" width="%.3f" height="%.3f" fill="none" stroke="cyan" stroke-width="0.5" stroke-opacity="0.7"/>`+"\n",
				x, y, g.ModuleWidth, g.ModuleHeight)
		}
	}
}

// renderMarginLabels annotates each margin with its size in points. The
// side labels are rotated to read along the page edge.
func renderMarginLabels(buf *bytes.Buffer, g *grid.Result) {
	buf.WriteString("  <!-- Margin labels -->\n")
	fmt.Fprintf(buf, `  <text x="%.3f" y="%.3f" font-size="8" text-anchor="middle" transform="rotate(-90, %.3f, %.3f)" fill="gray">%.1fpt</text>`+"\n",
		g.Margins.Left/2, g.PageHeight/2, g.Margins.Left/2, g.PageHeight/2, g.Margins.Left)
	fmt.Fprintf(buf, `  <text x="%.3f" y="%.3f" font-size="8" text-anchor="middle" transform="rotate(90, %.3f, %.3f)" fill="gray">%.1fpt</text>`+"\n",
		g.PageWidth-g.Margins.Right/2, g.PageHeight/2, g.PageWidth-g.Margins.Right/2, g.PageHeight/2, g.Margins.Right)
	fmt.Fprintf(buf, `  <text x="%.3f" y="%.3f" font-size="8" text-anchor="middle" fill="gray">%.1fpt</text>`+"\n",
		g.PageWidth/2, g.Margins.Top/2+3, g.Margins.Top)
	fmt.Fprintf(buf, `  <text x="%.3f" y="%.3f" font-size="8" text-anchor="middle" fill="gray">%.1fpt</text>`+"\n",
		g.PageWidth/2, g.PageHeight-g.Margins.Bottom/2+3, g.Margins.Bottom)
}

// renderTypeLadder sets one specimen line per style, largest first. Each
// line advances by its own leading, so every baseline in the ladder stays
// on the grid.
func renderTypeLadder(buf *bytes.Buffer, g *grid.Result) {
	buf.WriteString("  <!-- Type ladder -->\n")
	y := g.Margins.Top
	for i := len(grid.StyleKeys) - 1; i >= 0; i-- {
		key := grid.StyleKeys[i]
		style, ok := g.Styles[key]
		if !ok {
			continue
		}
		y += style.Leading
		fmt.Fprintf(buf, `  <text x="%.3f" y="%.3f" font-size="%.3f" font-family="%s" font-weight="%s" fill="black">%s %.3f/%.3f</text>`+"\n",
			g.Margins.Left, y, style.Size, fonts.FallbackFontFamily, svgWeight(style.Weight), capitalize(key), style.Size, style.Leading)
	}
}

// renderOverlay draws placed document blocks. Line X positions carry the
// alignment and optical corrections already, so text anchors stay at the
// SVG default.
func renderOverlay(buf *bytes.Buffer, o *Overlay) {
	buf.WriteString("  <!-- Content blocks -->\n")
	for _, b := range o.Blocks {
		rotated := b.Rotation != 0
		if rotated {
			fmt.Fprintf(buf, `  <g transform="rotate(%.3f, %.3f, %.3f)">`+"\n", b.Rotation, b.X, b.Y)
		}
		for _, line := range b.Lines {
			fmt.Fprintf(buf, `  <text x="%.3f" y="%.3f" font-size="%.3f" font-family="%s" font-weight="%s" fill="black">%s</text>`+"\n",
				line.X, line.Y, b.Size, fonts.FallbackFontFamily, svgWeight(b.Weight), xmlEscaper.Replace(line.Text))
		}
		if rotated {
			buf.WriteString("  </g>\n")
		}
	}
}

func svgWeight(w string) string {
	if strings.EqualFold(w, "bold") {
		return "bold"
	}
	return "normal"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
