package textflow

import "math"

// Band describes the repeating vertical cycle of a module grid: a
// renderable module row followed by a gutter. Top anchors the first
// cycle; positions are in the same unit as the line step.
type Band struct {
	Top    float64 // top edge of the first module row
	Module float64 // renderable height within each cycle
	Cycle  float64 // module height plus the gutter below it
}

// periodic reports whether the band actually excludes anything. A
// degenerate band (no cycle, or module filling the whole cycle) imposes
// no gutter skips.
func (b Band) periodic() bool {
	return b.Cycle > 0 && b.Module > 0 && b.Module < b.Cycle
}

const lineTopTolerance = 1e-9

// SingleColumnLineTops emits up to count line positions for a single
// column of text, starting at first and stepping by step, so that no line
// straddles a gutter band. Candidates only ever move forward: one that
// would cross into a gutter is advanced to the next module top. Emission
// stops when a line would extend past bottom.
func SingleColumnLineTops(first, step, bottom float64, band Band, count int) []float64 {
	if count <= 0 || step <= 0 {
		return nil
	}

	tops := make([]float64, 0, count)
	pos := first
	for len(tops) < count {
		if pos+step > bottom+lineTopTolerance {
			break
		}
		if band.periodic() {
			rel := math.Mod(pos-band.Top, band.Cycle)
			if rel < 0 {
				rel += band.Cycle
			}
			if rel+step > band.Module+lineTopTolerance {
				// Straddles the gutter; jump to the next module top.
				pos += band.Cycle - rel
				continue
			}
		}
		tops = append(tops, pos)
		pos += step
	}
	return tops
}
