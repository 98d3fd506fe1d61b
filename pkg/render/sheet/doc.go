// Package sheet renders computed grids as module sheets.
//
// # Overview
//
// A sheet is a [grid.Result] paired with the [grid.Settings] it was derived
// from. This package turns sheets into final output formats:
//
//   - SVG: the module sheet drawing (page, margins, modules, overlays)
//   - TXT: a plain-text parameter summary
//   - JSON: a structured summary for external consumers
//   - PDF: print-ready output (requires rsvg-convert)
//   - PNG: raster output (requires rsvg-convert)
//
// # SVG Output
//
// [RenderSVG] always draws the page boundary, the dashed content frame and
// the cyan module matrix with margin annotations. Options add layers:
//
//	svg := sheet.RenderSVG(s,
//	    sheet.WithBaselines(),
//	    sheet.WithTypeLadder(),
//	    sheet.WithTitle("Poster A2"),
//	)
//
//   - [WithBaselines]: baseline ruling, every fourth line emphasized
//   - [WithTypeLadder]: type specimen ladder, display down to caption
//   - [WithTitle]: sheet title as SVG metadata and margin label
//   - [WithOverlay]: placed document blocks with positioned text lines
//
// # Summaries
//
// [RenderTXT] and [RenderJSON] document the complete system: settings,
// page and module geometry, the derived typographic styles and the design
// principles the figures follow. The JSON shape is stable and snake_cased.
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] first render SVG, then convert via
// [render.ToPDF] and [render.ToPNG]. These require librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [render.ToPDF]: github.com/gridwerk/gridwerk/pkg/render.ToPDF
// [render.ToPNG]: github.com/gridwerk/gridwerk/pkg/render.ToPNG
// [grid.Result]: github.com/gridwerk/gridwerk/pkg/grid.Result
// [grid.Settings]: github.com/gridwerk/gridwerk/pkg/grid.Settings
package sheet
