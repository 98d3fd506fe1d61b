// Package reflow packs movable text blocks onto the module grid and
// auto-sizes their column spans. ComputePlan and AutoFitBatch are pure
// functions over full input snapshots: identical input always produces
// identical output, which lets plans be cached under PlanSignature and
// compared across worker invocations.
package reflow

import "math"

// PlanInput is the complete snapshot a reflow computation reads. Order
// defines packing priority: earlier keys are placed first and are never
// displaced by later ones. The vertical geometry converts between
// baseline-grid rows and module rows.
type PlanInput struct {
	GridCols int      `json:"gridCols"`
	GridRows int      `json:"gridRows"`
	Order    []string `json:"order"`

	Spans   map[string]int      `json:"spans"`
	Sources map[string]Position `json:"sources"`

	PageHeight   float64 `json:"pageHeight"`
	MarginTop    float64 `json:"marginTop"`
	MarginBottom float64 `json:"marginBottom"`
	GridUnit     float64 `json:"gridUnit"`
	ModuleHeight float64 `json:"moduleHeight"`
	GutterV      float64 `json:"gutterV"`
}

// unitsPerModuleRow is the height of one module cycle, module plus
// gutter, expressed in baseline units. Degenerate geometry counts one
// unit per row so row conversion stays defined.
func (in PlanInput) unitsPerModuleRow() float64 {
	if in.GridUnit <= 0 {
		return 1
	}
	units := (in.ModuleHeight + in.GutterV) / in.GridUnit
	if units <= 0 || math.IsNaN(units) || math.IsInf(units, 0) {
		return 1
	}
	return units
}

// Placement is one block's resolved span and position within a plan. The
// position's row is in baseline-grid units, always on a module-row
// boundary.
type Placement struct {
	Span     int      `json:"span"`
	Position Position `json:"position"`
}

// Plan maps every input block key to its placement.
type Plan map[string]Placement

type cell struct{ row, col int }

// ComputePlan packs the blocks named by in.Order onto the module grid
// without overlap. Each block starts from its source position: the row
// converted to a whole module row, the column clamped for its span. On
// collision the planner searches forward, preferring the source column
// at each row before scanning remaining columns left to right, stepping
// down one module row at a time. Placement never fails; rows may run
// past the visible page.
func ComputePlan(in PlanInput) Plan {
	cols := in.GridCols
	if cols < 1 {
		cols = 1
	}
	unitsPerRow := in.unitsPerModuleRow()

	occupied := make(map[cell]string)
	plan := make(Plan, len(in.Order))
	for _, key := range in.Order {
		span := ClampSpan(in.Spans[key], cols)
		src := in.Sources[key]
		row := moduleRow(src.Row, unitsPerRow)
		col := ClampCol(src.Col, span, cols)

		row, col = findFree(occupied, row, col, span, cols)
		for c := col; c < col+span; c++ {
			occupied[cell{row, c}] = key
		}
		plan[key] = Placement{
			Span: span,
			Position: Position{
				Col: col,
				Row: float64(row) * unitsPerRow,
			},
		}
	}
	return plan
}

// findFree scans forward from (row, col) for an unoccupied span. Rows
// are unbounded downward, so some row past every placed block is always
// free and the search terminates.
func findFree(occupied map[cell]string, row, col, span, cols int) (int, int) {
	for ; ; row++ {
		if spanFree(occupied, row, col, span) {
			return row, col
		}
		for c := 0; c+span <= cols; c++ {
			if c == col {
				continue
			}
			if spanFree(occupied, row, c, span) {
				return row, c
			}
		}
	}
}

func spanFree(occupied map[cell]string, row, col, span int) bool {
	for c := col; c < col+span; c++ {
		if _, taken := occupied[cell{row, c}]; taken {
			return false
		}
	}
	return true
}

// moduleRow converts a baseline-grid row to the module row containing
// it. Negative and NaN rows collapse to the first row.
func moduleRow(units, unitsPerRow float64) int {
	if math.IsNaN(units) || units <= 0 {
		return 0
	}
	return int(units / unitsPerRow)
}
