// Package pkg provides the core libraries for Gridwerk grid construction.
//
// # Overview
//
// Gridwerk computes Swiss typographic grid systems: modular page divisions
// locked to a baseline grid, with margins, gutters and type sizes all
// derived from a single unit. The pkg directory is organized into four
// main areas:
//
//  1. Calculation - grid geometry and typography ([grid], [units])
//  2. Layout - placing text on the module grid ([reflow], [textflow], [textmetrics], [fonts])
//  3. Output - specification sheets and their persistence ([render], [document], [config])
//  4. Orchestration - pipelines, caching and serving ([pipeline], [cache], [server], [worker])
//
// # Architecture
//
// The typical data flow through Gridwerk:
//
//	Settings (format, margins, baseline)
//	         ↓
//	    [grid] package (page geometry + type ladder)
//	         ↓
//	    [reflow] package (span fitting + collision-free placement)
//	         ↓
//	    [render/sheet] package (specification sheet)
//	         ↓
//	    SVG/PDF/PNG/TXT/JSON output
//
// # Quick Start
//
// Compute a grid and render a specification sheet:
//
//	import (
//	    "github.com/gridwerk/gridwerk/pkg/grid"
//	    "github.com/gridwerk/gridwerk/pkg/render/sheet"
//	)
//
//	// 1. Compute the grid
//	g, _ := grid.Generate(grid.Settings{
//	    Format:       "A2",
//	    Orientation:  grid.Portrait,
//	    MarginMethod: grid.MarginProgressive,
//	    GridCols:     6,
//	    GridRows:     8,
//	    Baseline:     12,
//	})
//
//	// 2. Render the sheet
//	svg := sheet.RenderSVG(sheet.Sheet{Grid: g}, sheet.WithBaselines())
//
// # Main Packages
//
// ## Calculation
//
// [grid] - The grid calculator. Derives page size, margins (progressive,
// Van de Graaf, baseline or custom), the module matrix, gutters and a
// five-step typographic ladder from a single baseline unit.
//
// [units] - Conversions between PostScript points, millimeters and
// baseline units.
//
// ## Layout
//
// [reflow] - Block model and placement planning. Resolves column spans
// against measured text (auto-fit) and plans collision-free positions for
// reflow-enabled blocks while pinned blocks stay put.
//
// [textflow] - Text measurement and line breaking: greedy wrap with
// syllable division, optical margin alignment and leading arithmetic.
//
// [textmetrics] - Font metrics backing [textflow]. Loads real font files
// when available and falls back to width heuristics when not.
//
// [fonts] - Locates font files on the host system.
//
// ## Output
//
// [render/sheet] - Renders a computed grid as a specification sheet: page
// boundary, module matrix, optional baseline ruling, type ladder and
// placed text blocks. Also produces plain-text and JSON summaries.
//
// [render] - Format conversion from SVG to PDF and PNG via rsvg-convert.
//
// [document] - Named block documents: settings plus text blocks, with
// file-based and MongoDB-backed stores.
//
// [config] - Named grid presets in TOML, merged from built-ins and the
// user's preset file.
//
// ## Orchestration
//
// [pipeline] - The calc → assemble → render pipeline used by the CLI and
// the server, with per-stage caching through a [pipeline.Runner].
//
// [cache] - Render cache with file, Redis and null backends.
//
// [server] - HTTP preview server exposing grid sheets and document CRUD.
//
// [worker] - Queue consumer executing placement and auto-fit jobs from
// raw JSON requests.
//
// ## Support
//
// [errors] - Coded errors carrying user-facing messages.
//
// [observability] - Hook points for pipeline stages and HTTP requests.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Common Workflows
//
// Plan a document layout:
//
//	opts := pipeline.Options{Format: "A3", Blocks: doc.Blocks, AutoFit: true}
//	g, _ := pipeline.Calc(opts)
//	blocks, _ := pipeline.PlanBlocks(g, opts)
//
// Serve grids over HTTP:
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	srv := server.New(server.Config{Addr: ":8750", Runner: runner})
//	srv.Start(ctx)
//
// Check what baseline a page allows:
//
//	limit, _ := grid.MaxBaseline(841.890, grid.MarginProgressive, 1, nil)
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/grid/...       # Specific package
//	go test -run Example         # Examples only
//
// [grid]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/grid
// [units]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/units
// [reflow]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/reflow
// [textflow]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/textflow
// [textmetrics]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/textmetrics
// [fonts]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/fonts
// [render]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/render
// [render/sheet]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/render/sheet
// [document]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/document
// [config]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/config
// [pipeline]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/cache
// [server]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/server
// [worker]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/worker
// [errors]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/errors
// [observability]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/gridwerk/gridwerk/pkg/buildinfo
package pkg
