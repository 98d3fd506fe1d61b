package units

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestPointMillimeterRoundTrip(t *testing.T) {
	l := Pt(595.276) // A4 width
	mm := l.ToMm()
	back := Mm(mm).ToPt()

	if !almostEqual(back, 595.276) {
		t.Errorf("pt->mm->pt = %v, want 595.276", back)
	}
	// 595.276pt is 210mm within rounding noise
	if math.Abs(mm-210.0) > 0.01 {
		t.Errorf("595.276pt = %vmm, want ~210mm", mm)
	}
}

func TestPixelConversion(t *testing.T) {
	// At 96 DPI one point is 96/72 pixels.
	px := Pt(72).ToPx(96)
	if !almostEqual(px, 96) {
		t.Errorf("72pt at 96dpi = %vpx, want 96", px)
	}

	// Round trip at non-default density.
	pt := Px(300).To(Point, 300)
	if !almostEqual(pt, 72) {
		t.Errorf("300px at 300dpi = %vpt, want 72", pt)
	}
}

func TestToDefaultsBadDPI(t *testing.T) {
	got := Px(96).To(Point, 0)
	want := Px(96).To(Point, DefaultDPI)
	if !almostEqual(got, want) {
		t.Errorf("To() with dpi=0 = %v, want %v (default density)", got, want)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Length
		wantErr bool
	}{
		{"12pt", Length{12, Point}, false},
		{"4mm", Length{4, Millimeter}, false},
		{"16px", Length{16, Pixel}, false},
		{"9.5", Length{9.5, Point}, false},
		{" 12 pt ", Length{12, Point}, false},
		{"4MM", Length{4, Millimeter}, false},
		{"", Length{}, true},
		{"abc", Length{}, true},
		{"12qq", Length{}, true},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestUnitString(t *testing.T) {
	if Point.String() != "pt" || Millimeter.String() != "mm" || Pixel.String() != "px" {
		t.Errorf("Unit.String() = %q/%q/%q, want pt/mm/px",
			Point.String(), Millimeter.String(), Pixel.String())
	}
}
