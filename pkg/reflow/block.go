package reflow

import "math"

// Position locates a block on the grid. Col is a zero-based column
// index; Row is measured in baseline-grid units and may be fractional
// while a block is being dragged.
type Position struct {
	Col int     `json:"col"`
	Row float64 `json:"row"`
}

// Block is one movable text unit on the grid. The editor owns the block
// collection and hands full snapshots to the planner and resolver, which
// never mutate them.
type Block struct {
	Key        string   `json:"key"`
	Text       string   `json:"text"`
	StyleKey   string   `json:"styleKey"`
	FontFamily string   `json:"fontFamily,omitempty"`
	ColSpan    int      `json:"colSpan"`
	RowSpan    int      `json:"rowSpan"`
	Align      string   `json:"align,omitempty"`
	Reflow     bool     `json:"reflowEnabled"`
	Syllables  bool     `json:"syllableDivision"`
	Bold       bool     `json:"bold,omitempty"`
	Italic     bool     `json:"italic,omitempty"`
	Rotation   float64  `json:"rotation,omitempty"`
	Position   Position `json:"position"`
}

const (
	maxRotationDeg  = 80.0
	rotationSnapDeg = 0.001
)

// ClampSpan keeps a column span within [1, gridCols].
func ClampSpan(span, gridCols int) int {
	if gridCols < 1 {
		gridCols = 1
	}
	if span < 1 {
		return 1
	}
	if span > gridCols {
		return gridCols
	}
	return span
}

// ClampCol keeps a column within [0, gridCols-span] so the spanned cells
// stay on the grid.
func ClampCol(col, span, gridCols int) int {
	limit := gridCols - span
	if limit < 0 {
		limit = 0
	}
	if col < 0 {
		return 0
	}
	if col > limit {
		return limit
	}
	return col
}

// ClampRow keeps a baseline-grid row within [0, maxRow].
func ClampRow(row, maxRow float64) float64 {
	if math.IsNaN(row) || row < 0 {
		return 0
	}
	if maxRow >= 0 && row > maxRow {
		return maxRow
	}
	return row
}

// ClampRotation keeps a rotation within plus or minus 80 degrees and
// snaps anything below a thousandth of a degree to exactly zero so
// near-straight blocks render on the pixel grid.
func ClampRotation(deg float64) float64 {
	if math.IsNaN(deg) {
		return 0
	}
	if math.Abs(deg) < rotationSnapDeg {
		return 0
	}
	if deg > maxRotationDeg {
		return maxRotationDeg
	}
	if deg < -maxRotationDeg {
		return -maxRotationDeg
	}
	return deg
}

// MaxBaselineRow is the largest baseline-grid row index available on a
// page: the final whole baseline unit of the band between the vertical
// margins. Degenerate geometry yields zero.
func MaxBaselineRow(pageHeight, marginTop, marginBottom, gridUnit float64) float64 {
	if gridUnit <= 0 {
		return 0
	}
	units := math.Floor((pageHeight - marginTop - marginBottom) / gridUnit)
	if units < 1 {
		return 0
	}
	return units - 1
}
