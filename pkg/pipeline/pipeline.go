// Package pipeline provides the core generation pipeline for Gridwerk.
//
// This package implements the complete calc → layout → render pipeline that
// can be used by CLI, server, and worker components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Calc: Expand grid settings into complete page geometry and typography
//  2. Layout: Place document blocks onto the module grid as a sheet overlay
//  3. Render: Generate output in various formats (SVG, PNG, PDF, TXT, JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Format:  "a4",
//	    Formats: []string{"svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Calc only
//	g, err := runner.Calc(ctx, opts)
//
//	// Layout with an existing grid
//	overlay, err := runner.Layout(ctx, g, opts)
//
//	// Render with an existing grid and overlay
//	artifacts, err := runner.Render(ctx, g, overlay, opts)
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gridwerk/gridwerk/pkg/cache"
	"github.com/gridwerk/gridwerk/pkg/grid"
	"github.com/gridwerk/gridwerk/pkg/reflow"
	"github.com/gridwerk/gridwerk/pkg/render/sheet"
	"github.com/gridwerk/gridwerk/pkg/textflow"
	"github.com/gridwerk/gridwerk/pkg/textmetrics"
)

// Default values applied by ValidateAndSetDefaults. CLI, server, and
// worker all run through the same defaulting so a bare request means the
// same thing everywhere: the A4 reference sheet of the grid literature.
const (
	DefaultFormat           = "A4"
	DefaultOrientation      = grid.Portrait
	DefaultMarginMethod     = 1
	DefaultGridCols         = 6
	DefaultGridRows         = 8
	DefaultBaseline         = 12.0
	DefaultBaselineMultiple = 1.0
	DefaultGutterMultiple   = 1.0
	DefaultTypeScale        = grid.ScaleSwiss

	// DefaultPNGScale is the raster scale for PNG output (2x resolution).
	DefaultPNGScale = 2.0
)

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatTXT  = "txt"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatTXT:  true,
}

// Options contains all configuration for the generation pipeline.
// This struct supports JSON serialization for server requests.
type Options struct {
	// Calc options
	Format           string        `json:"format"`
	Orientation      string        `json:"orientation,omitempty"`
	MarginMethod     int           `json:"margin_method,omitempty"`
	GridCols         int           `json:"grid_cols,omitempty"`
	GridRows         int           `json:"grid_rows,omitempty"`
	Baseline         float64       `json:"baseline,omitempty"`
	BaselineMultiple float64       `json:"baseline_multiple,omitempty"`
	GutterMultiple   float64       `json:"gutter_multiple,omitempty"`
	TypeScale        string        `json:"type_scale,omitempty"`
	CustomMargins    *grid.Margins `json:"custom_margins,omitempty"`
	Refresh          bool          `json:"refresh,omitempty"`

	// Layout options
	Blocks  []reflow.Block `json:"blocks,omitempty"`
	AutoFit bool           `json:"auto_fit,omitempty"`

	// Render options
	Formats        []string `json:"formats,omitempty"`
	Title          string   `json:"title,omitempty"`
	ShowBaselines  bool     `json:"show_baselines,omitempty"`
	ShowTypeLadder bool     `json:"show_type_ladder,omitempty"`
	PNGScale       float64  `json:"png_scale,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger       `json:"-"`
	Measurer textflow.Measurer `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Grid is the computed grid geometry.
	Grid *grid.Result

	// GridHash is the content hash of the grid.
	GridHash string

	// Overlay contains the placed document blocks, nil when the run had
	// no blocks.
	Overlay *sheet.Overlay

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	BlockCount int
	LineCount  int
	CalcTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	CalcHit   bool // Whether the grid came from cache
	LayoutHit bool // Whether the overlay came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: svg, png, pdf, txt, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks fields and applies defaults for the full
// pipeline. This method is idempotent - calling it multiple times has the
// same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForCalc(); err != nil {
		return err
	}
	o.SetLayoutDefaults()
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForCalc normalizes and defaults the grid settings. Page format
// names are case-insensitive at every entry point; the calculator itself
// performs the deep validation with its fixed messages.
func (o *Options) ValidateForCalc() error {
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	o.Format = strings.ToUpper(o.Format)
	if o.Orientation == "" {
		o.Orientation = DefaultOrientation
	}
	o.Orientation = strings.ToLower(o.Orientation)
	if o.MarginMethod == 0 {
		o.MarginMethod = DefaultMarginMethod
	}
	if o.GridCols == 0 {
		o.GridCols = DefaultGridCols
	}
	if o.GridRows == 0 {
		o.GridRows = DefaultGridRows
	}
	if o.Baseline == 0 {
		o.Baseline = DefaultBaseline
	}
	if o.BaselineMultiple == 0 {
		o.BaselineMultiple = DefaultBaselineMultiple
	}
	if o.GutterMultiple == 0 {
		o.GutterMultiple = DefaultGutterMultiple
	}
	if o.TypeScale == "" {
		o.TypeScale = DefaultTypeScale
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Measurer == nil {
		o.Measurer = textmetrics.New()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.PNGScale == 0 {
		o.PNGScale = DefaultPNGScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	return ValidateFormats(o.Formats)
}

// GridSettings converts the options to calculator settings.
func (o *Options) GridSettings() grid.Settings {
	return grid.Settings{
		Format:           o.Format,
		Orientation:      o.Orientation,
		MarginMethod:     o.MarginMethod,
		GridCols:         o.GridCols,
		GridRows:         o.GridRows,
		Baseline:         o.Baseline,
		BaselineMultiple: o.BaselineMultiple,
		GutterMultiple:   o.GutterMultiple,
		CustomMargins:    o.CustomMargins,
		Scale:            o.TypeScale,
	}
}

// GridKeyOpts returns cache key options for grid computation.
func (o *Options) GridKeyOpts() cache.GridKeyOpts {
	opts := cache.GridKeyOpts{
		MarginMethod:     o.MarginMethod,
		GridCols:         o.GridCols,
		GridRows:         o.GridRows,
		Baseline:         o.Baseline,
		BaselineMultiple: o.BaselineMultiple,
		GutterMultiple:   o.GutterMultiple,
		TypeScale:        o.TypeScale,
	}
	if m := o.CustomMargins; m != nil {
		opts.CustomMargins = []float64{m.Top, m.Left, m.Right, m.Bottom}
	}
	return opts
}

// SheetKeyOpts returns cache key options for overlay assembly.
func (o *Options) SheetKeyOpts(contentHash string) cache.SheetKeyOpts {
	return cache.SheetKeyOpts{
		ContentHash: contentHash,
		AutoFit:     o.AutoFit,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{
		Format:         format,
		Title:          o.Title,
		ShowBaselines:  o.ShowBaselines,
		ShowTypeLadder: o.ShowTypeLadder,
	}
	if format == FormatPNG {
		opts.PNGScale = o.PNGScale
	}
	return opts
}
