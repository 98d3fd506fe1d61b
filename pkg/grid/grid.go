// Package grid derives complete modular grid geometry in the Swiss /
// International Typographic Style.
//
// # Overview
//
// A grid is described by a handful of parameters (page format, margin
// method, column and row counts, a baseline unit and two ratio multiples)
// and expanded into exact page, margin, module and typographic geometry.
// The expansion is a pure function: identical settings always produce an
// identical [Result], and nothing is cached or mutated in place. Callers
// recompute wholesale on every settings change.
//
// All geometry is in PostScript points. Vertical values are disciplined by
// the baseline unit: top and bottom margins land on baseline multiples and
// every derived leading is an exact whole-number multiple of the grid unit.
//
// # Validation
//
// Settings are validated strictly and rejected with fixed, human-readable
// messages; logically invalid configurations are never silently clamped.
// The one deliberate clamp is geometric, not logical: when the requested
// row count would leave fewer than two baseline units per module cell, the
// cell floor of two units applies and module height is recomputed from it.
package grid

import (
	"math"

	"github.com/gridwerk/gridwerk/pkg/errors"
)

// Settings is the immutable input of a grid computation.
type Settings struct {
	Format           string   `json:"format"`
	Orientation      string   `json:"orientation"`
	MarginMethod     int      `json:"marginMethod"`
	GridCols         int      `json:"gridCols"`
	GridRows         int      `json:"gridRows"`
	Baseline         float64  `json:"baseline"`
	BaselineMultiple float64  `json:"baselineMultiple"`
	GutterMultiple   float64  `json:"gutterMultiple"`
	CustomMargins    *Margins `json:"customMargins,omitempty"`
	Scale            string   `json:"scale,omitempty"`
}

// Result is the fully derived grid geometry. It is a value type with no
// hidden state; every field follows from Settings alone.
type Result struct {
	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`

	Margins Margins `json:"margins"`

	// GridUnit equals the baseline unit of the settings.
	GridUnit float64 `json:"gridUnit"`

	// GutterH and GutterV both equal baseline x gutterMultiple; the grid
	// uses one gutter value for both axes.
	GutterH float64 `json:"gridMarginHorizontal"`
	GutterV float64 `json:"gridMarginVertical"`

	ModuleWidth  float64 `json:"moduleWidth"`
	ModuleHeight float64 `json:"moduleHeight"`
	ModuleAspect float64 `json:"moduleAspect"`

	ContentWidth  float64 `json:"contentWidth"`
	ContentHeight float64 `json:"contentHeight"`

	// UnitsPerCell is the number of baseline units each module row spans,
	// never below two.
	UnitsPerCell int `json:"baselineUnitsPerCell"`

	Cols int `json:"gridCols"`
	Rows int `json:"gridRows"`

	// ScaleFactor is the typographic scale relative to A4.
	ScaleFactor float64 `json:"scaleFactor"`
	Scale       string  `json:"scale"`

	Styles map[string]Style `json:"styles"`
}

// Generate expands settings into complete grid geometry.
//
// # Algorithm
//
//  1. Resolve the page size, swapping width and height for landscape.
//  2. Derive margins from the margin method's baseline-unit ratios scaled
//     by the baseline multiple; snap top and bottom to the baseline grid
//     (ties away from zero). Custom margins override left/right directly
//     and top/bottom after the same snap.
//  3. Divide the vertical band between the margins into baseline units,
//     give each module row an equal whole number of units (minimum two),
//     and recompute module height as that cell height minus one gutter.
//  4. Derive the typographic styles for the active scale.
//
// Generate is pure and deterministic; it performs no I/O and never
// mutates its input.
func Generate(s Settings) (*Result, error) {
	pageW, pageH, err := PageSize(s.Format, s.Orientation)
	if err != nil {
		return nil, err
	}
	if err := validate(s); err != nil {
		return nil, err
	}

	unit := s.Baseline
	margins, err := deriveMargins(s.MarginMethod, unit, s.BaselineMultiple, s.CustomMargins)
	if err != nil {
		return nil, err
	}

	gutter := unit * s.GutterMultiple

	contentW := pageW - margins.Left - margins.Right
	if contentW <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "content width must be > 0")
	}

	bandH := pageH - margins.Top - margins.Bottom
	if bandH <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "content height must be > 0")
	}

	totalUnits := int(math.Floor(bandH / unit))
	unitsPerCell := totalUnits / s.GridRows
	if unitsPerCell < 2 {
		unitsPerCell = 2
	}
	cellHeight := float64(unitsPerCell) * unit
	moduleH := cellHeight - gutter
	moduleW := (contentW - float64(s.GridCols-1)*gutter) / float64(s.GridCols)

	contentH := float64(s.GridRows)*moduleH + float64(s.GridRows-1)*gutter
	if moduleH <= 0 || contentH <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "content height must be > 0")
	}

	factor := scaleFactor(pageW, pageH)
	scale := s.Scale
	if scale == "" {
		scale = ScaleSwiss
	}
	styles, err := deriveStyles(scale, unit, factor)
	if err != nil {
		return nil, err
	}

	return &Result{
		PageWidth:     pageW,
		PageHeight:    pageH,
		Margins:       margins,
		GridUnit:      unit,
		GutterH:       gutter,
		GutterV:       gutter,
		ModuleWidth:   moduleW,
		ModuleHeight:  moduleH,
		ModuleAspect:  moduleW / moduleH,
		ContentWidth:  contentW,
		ContentHeight: contentH,
		UnitsPerCell:  unitsPerCell,
		Cols:          s.GridCols,
		Rows:          s.GridRows,
		ScaleFactor:   factor,
		Scale:         scale,
		Styles:        styles,
	}, nil
}

// validate rejects invalid settings with the calculator's fixed messages.
// Format and orientation are checked where they are resolved; the margin
// method and everything numeric are checked here, in contract order.
func validate(s Settings) error {
	if _, ok := marginRatios[s.MarginMethod]; !ok {
		return errors.New(errors.ErrCodeInvalidMarginMethod, "Unsupported margin method: %d", s.MarginMethod)
	}
	if s.GridCols < 1 {
		return errors.New(errors.ErrCodeInvalidGridParam, "gridCols must be an integer >= 1, got %d", s.GridCols)
	}
	if s.GridRows < 1 {
		return errors.New(errors.ErrCodeInvalidGridParam, "gridRows must be an integer >= 1, got %d", s.GridRows)
	}
	if !positiveFinite(s.Baseline) {
		return errors.New(errors.ErrCodeInvalidGridParam, "baseline must be a finite number > 0")
	}
	if !positiveFinite(s.BaselineMultiple) {
		return errors.New(errors.ErrCodeInvalidGridParam, "baselineMultiple must be a finite number > 0")
	}
	if !positiveFinite(s.GutterMultiple) {
		return errors.New(errors.ErrCodeInvalidGridParam, "gutterMultiple must be a finite number > 0")
	}
	if cm := s.CustomMargins; cm != nil {
		for _, v := range []float64{cm.Top, cm.Left, cm.Right, cm.Bottom} {
			if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
				return errors.New(errors.ErrCodeInvalidMargins, "customMargins values must be finite numbers >= 0")
			}
		}
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
