// Package render provides output rendering for computed grids.
//
// # Overview
//
// This package contains the rendering layer that turns grid geometry into
// deliverable artifacts. It provides:
//
//   - Generic format conversion (SVG to PDF/PNG)
//   - Module sheet rendering (in [sheet] subpackage)
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sheet.RenderSVG(s, opts...)
//	pdf, err := render.ToPDF(svg)
//	png, err := render.ToPNG(svg, 2.0)  // 2x scale
//
// # Module Sheets
//
// The [sheet] subpackage renders a computed grid as a module sheet: the
// page boundary, the module matrix with gutters, an optional baseline
// ruling, a type specimen ladder and placed text blocks. It also produces
// plain-text and JSON summaries of the full system for documentation.
//
// [sheet]: github.com/gridwerk/gridwerk/pkg/render/sheet
package render
