package sheet

import (
	"encoding/json"
	"math"

	"github.com/gridwerk/gridwerk/pkg/grid"
)

// Design principles echoed in every summary. The reference is the work the
// whole system is derived from.
const (
	principleReference = "Müller-Brockmann, Grid Systems in Graphic Design (1981)"
	principleBaselines = "All typography aligns to baseline grid"
	principleModules   = "Grid modules maintain proportional relationships"
	principleScaling   = "System scales across A-series formats"
)

// styleAlignment is the alignment reported for every derived style. The
// system is flush-left, ragged-right throughout; per-block alignment is a
// document concern, not a grid one.
const styleAlignment = "Left"

// a4ReferenceBaseline is the baseline of the A4 reference sheet the
// typographic scale is anchored to.
const a4ReferenceBaseline = 12.0

type summary struct {
	Format      string            `json:"format"`
	Settings    summarySettings   `json:"settings"`
	PageSizePt  summarySize       `json:"page_size_pt"`
	Grid        summaryGrid       `json:"grid"`
	ContentArea summarySize       `json:"content_area"`
	Module      summaryModule     `json:"module"`
	Typography  summaryTypography `json:"typography"`
	Principles  summaryPrinciples `json:"principles"`
}

type summarySettings struct {
	Orientation    string `json:"orientation"`
	MarginMethod   string `json:"margin_method"`
	MarginMethodID int    `json:"margin_method_id"`
	GridCols       int    `json:"grid_cols"`
	GridRows       int    `json:"grid_rows"`
}

type summarySize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type summaryGrid struct {
	GridUnit             float64        `json:"grid_unit"`
	GridMarginHorizontal float64        `json:"grid_margin_horizontal"`
	GridMarginVertical   float64        `json:"grid_margin_vertical"`
	Margins              summaryMargins `json:"margins"`
	Gutter               float64        `json:"gutter"`
	ScaleFactor          float64        `json:"scale_factor"`
	BaselineUnitsPerCell int            `json:"baseline_units_per_cell"`
}

type summaryMargins struct {
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
}

type summaryModule struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
}

type summaryTypography struct {
	Metadata summaryTypeMeta         `json:"metadata"`
	Styles   map[string]summaryStyle `json:"styles"`
}

type summaryTypeMeta struct {
	Format       string  `json:"format"`
	Unit         string  `json:"unit"`
	BaselineGrid float64 `json:"baseline_grid"`
	A4Baseline   float64 `json:"a4_baseline"`
	ScaleFactor  float64 `json:"scale_factor"`
}

type summaryStyle struct {
	Size      float64 `json:"size"`
	Leading   float64 `json:"leading"`
	Weight    string  `json:"weight"`
	Alignment string  `json:"alignment"`
}

type summaryPrinciples struct {
	Reference          string `json:"reference"`
	BaselineAlignment  string `json:"baseline_alignment"`
	ModularConsistency string `json:"modular_consistency"`
	Scalability        string `json:"scalability"`
}

// RenderJSON renders the complete grid system as a pretty-printed JSON
// summary: settings, page and module geometry, derived typography and the
// design principles the figures follow. All lengths are rounded to three
// decimals; the shape is stable and snake_cased for external consumers.
func RenderJSON(s Sheet) ([]byte, error) {
	g := s.Grid

	styles := make(map[string]summaryStyle, len(g.Styles))
	for key, style := range g.Styles {
		styles[key] = summaryStyle{
			Size:      round3(style.Size),
			Leading:   round3(style.Leading),
			Weight:    style.Weight,
			Alignment: styleAlignment,
		}
	}

	out := summary{
		Format: s.Settings.Format,
		Settings: summarySettings{
			Orientation:    s.Settings.Orientation,
			MarginMethod:   grid.MarginMethodLabels[s.Settings.MarginMethod],
			MarginMethodID: s.Settings.MarginMethod,
			GridCols:       g.Cols,
			GridRows:       g.Rows,
		},
		PageSizePt: summarySize{Width: round3(g.PageWidth), Height: round3(g.PageHeight)},
		Grid: summaryGrid{
			GridUnit:             round3(g.GridUnit),
			GridMarginHorizontal: round3(g.GutterH),
			GridMarginVertical:   round3(g.GutterV),
			Margins: summaryMargins{
				Top:    round3(g.Margins.Top),
				Bottom: round3(g.Margins.Bottom),
				Left:   round3(g.Margins.Left),
				Right:  round3(g.Margins.Right),
			},
			Gutter:               round3(g.GutterH),
			ScaleFactor:          round3(g.ScaleFactor),
			BaselineUnitsPerCell: g.UnitsPerCell,
		},
		ContentArea: summarySize{Width: round3(g.ContentWidth), Height: round3(g.ContentHeight)},
		Module: summaryModule{
			Width:       round3(g.ModuleWidth),
			Height:      round3(g.ModuleHeight),
			AspectRatio: round3(g.ModuleAspect),
		},
		Typography: summaryTypography{
			Metadata: summaryTypeMeta{
				Format:       s.Settings.Format,
				Unit:         "pt",
				BaselineGrid: round3(g.GridUnit),
				A4Baseline:   a4ReferenceBaseline,
				ScaleFactor:  round3(g.ScaleFactor),
			},
			Styles: styles,
		},
		Principles: summaryPrinciples{
			Reference:          principleReference,
			BaselineAlignment:  principleBaselines,
			ModularConsistency: principleModules,
			Scalability:        principleScaling,
		},
	}

	return json.MarshalIndent(out, "", "  ")
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
