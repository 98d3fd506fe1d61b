package textflow

import (
	"math"
	"testing"
)

func TestSingleColumnLineTops_SkipsGutters(t *testing.T) {
	// 84pt module rows on a 96pt cycle: a 12pt gutter after each row.
	band := Band{Top: 100, Module: 84, Cycle: 96}
	tops := SingleColumnLineTops(100, 12, 400, band, 50)

	if len(tops) == 0 {
		t.Fatal("SingleColumnLineTops() returned no lines")
	}
	for i, top := range tops {
		rel := math.Mod(top-band.Top, band.Cycle)
		if rel < 0 {
			rel += band.Cycle
		}
		if rel+12 > band.Module+1e-9 {
			t.Errorf("line %d at %v straddles the gutter (rel %v)", i, top, rel)
		}
		if i > 0 && top <= tops[i-1] {
			t.Errorf("line %d at %v does not advance past %v", i, top, tops[i-1])
		}
	}

	// Seven 12pt lines fill an 84pt module, then the next line lands on
	// the following module top.
	if got, want := tops[7], 196.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("tops[7] = %v, want %v", got, want)
	}
}

func TestSingleColumnLineTops_AdvancesOutOfGutter(t *testing.T) {
	band := Band{Top: 100, Module: 84, Cycle: 96}
	// 285 sits inside the gutter band of the second cycle.
	tops := SingleColumnLineTops(285, 12, 600, band, 3)

	if len(tops) == 0 {
		t.Fatal("SingleColumnLineTops() returned no lines")
	}
	if got, want := tops[0], 292.0; math.Abs(got-want) > 1e-9 {
		t.Errorf("tops[0] = %v, want next module top %v", got, want)
	}
	if tops[0] < 285 {
		t.Errorf("tops[0] = %v moved backward from candidate 285", tops[0])
	}
}

func TestSingleColumnLineTops_StopsAtBottom(t *testing.T) {
	band := Band{Top: 0, Module: 84, Cycle: 96}
	tops := SingleColumnLineTops(0, 12, 90, band, 100)
	for _, top := range tops {
		if top+12 > 90+1e-9 {
			t.Errorf("line at %v extends past the 90 bound", top)
		}
	}
	if len(tops) != 7 {
		t.Errorf("len(tops) = %d, want 7", len(tops))
	}
}

func TestSingleColumnLineTops_CountCap(t *testing.T) {
	band := Band{Top: 0, Module: 84, Cycle: 96}
	tops := SingleColumnLineTops(0, 12, 10000, band, 5)
	if len(tops) != 5 {
		t.Errorf("len(tops) = %d, want 5", len(tops))
	}
}

func TestSingleColumnLineTops_DegenerateBand(t *testing.T) {
	// Module filling the whole cycle means no gutter to skip; the ladder
	// is a plain arithmetic progression.
	band := Band{Top: 0, Module: 96, Cycle: 96}
	tops := SingleColumnLineTops(10, 12, 70, band, 10)
	want := []float64{10, 22, 34, 46, 58}
	if len(tops) != len(want) {
		t.Fatalf("len(tops) = %d, want %d (%v)", len(tops), len(want), tops)
	}
	for i := range want {
		if math.Abs(tops[i]-want[i]) > 1e-9 {
			t.Errorf("tops[%d] = %v, want %v", i, tops[i], want[i])
		}
	}
}

func TestSingleColumnLineTops_InvalidArguments(t *testing.T) {
	band := Band{Top: 0, Module: 84, Cycle: 96}
	if tops := SingleColumnLineTops(0, 12, 400, band, 0); tops != nil {
		t.Errorf("count 0: got %v, want nil", tops)
	}
	if tops := SingleColumnLineTops(0, 0, 400, band, 5); tops != nil {
		t.Errorf("step 0: got %v, want nil", tops)
	}
	if tops := SingleColumnLineTops(0, -3, 400, band, 5); tops != nil {
		t.Errorf("negative step: got %v, want nil", tops)
	}
}

func TestSingleColumnLineTops_TerminatesWhenStepExceedsModule(t *testing.T) {
	// A 40pt step can never fit a 30pt module; the walk must still
	// terminate at the bound with no lines emitted.
	band := Band{Top: 0, Module: 30, Cycle: 96}
	tops := SingleColumnLineTops(0, 40, 500, band, 10)
	if len(tops) != 0 {
		t.Errorf("len(tops) = %d, want 0 (%v)", len(tops), tops)
	}
}
