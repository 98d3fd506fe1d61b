package pipeline

import (
	"strings"
	"testing"

	"github.com/gridwerk/gridwerk/pkg/grid"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"txt", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}

	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}

	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}

	if err := opts.ValidateForCalc(); err != nil {
		t.Errorf("Empty options should pass: %v", err)
	}

	// Check defaults were set
	if opts.Format != DefaultFormat {
		t.Errorf("Format should be %s, got %s", DefaultFormat, opts.Format)
	}
	if opts.Orientation != DefaultOrientation {
		t.Errorf("Orientation should be %s, got %s", DefaultOrientation, opts.Orientation)
	}
	if opts.MarginMethod != DefaultMarginMethod {
		t.Errorf("MarginMethod should be %d, got %d", DefaultMarginMethod, opts.MarginMethod)
	}
	if opts.GridCols != DefaultGridCols || opts.GridRows != DefaultGridRows {
		t.Errorf("Grid should default to %dx%d, got %dx%d",
			DefaultGridCols, DefaultGridRows, opts.GridCols, opts.GridRows)
	}
	if opts.Baseline != DefaultBaseline {
		t.Errorf("Baseline should be %v, got %v", DefaultBaseline, opts.Baseline)
	}
	if opts.TypeScale != DefaultTypeScale {
		t.Errorf("TypeScale should be %s, got %s", DefaultTypeScale, opts.TypeScale)
	}
}

func TestOptionsValidateForCalcNormalizes(t *testing.T) {
	opts := Options{Format: "a3", Orientation: "Landscape"}

	if err := opts.ValidateForCalc(); err != nil {
		t.Fatalf("ValidateForCalc() error = %v", err)
	}

	if opts.Format != "A3" {
		t.Errorf("Format should be normalized to A3, got %s", opts.Format)
	}
	if opts.Orientation != grid.Landscape {
		t.Errorf("Orientation should be normalized to %s, got %s", grid.Landscape, opts.Orientation)
	}
}

func TestOptionsValidateAndSetDefaultsIdempotent(t *testing.T) {
	opts := Options{}

	// First call
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("First validation failed: %v", err)
	}

	originalFormat := opts.Format
	originalBaseline := opts.Baseline
	originalFormats := len(opts.Formats)

	// Second call should be idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("Second validation failed: %v", err)
	}

	if opts.Format != originalFormat {
		t.Error("Format changed on second call")
	}
	if opts.Baseline != originalBaseline {
		t.Error("Baseline changed on second call")
	}
	if len(opts.Formats) != originalFormats {
		t.Error("Formats changed on second call")
	}
}

func TestSetLayoutDefaults(t *testing.T) {
	opts := Options{}
	opts.SetLayoutDefaults()

	if opts.Measurer == nil {
		t.Error("Measurer should default to the text metrics engine")
	}
}

func TestSetRenderDefaults(t *testing.T) {
	opts := Options{}
	opts.SetRenderDefaults()

	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats should be [svg], got %v", opts.Formats)
	}
	if opts.PNGScale != DefaultPNGScale {
		t.Errorf("PNGScale should be %v, got %v", DefaultPNGScale, opts.PNGScale)
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{Formats: []string{"svg", "bmp"}}

	err := opts.ValidateForRender()
	if err == nil {
		t.Fatal("Invalid format should fail")
	}
	if !strings.Contains(err.Error(), `"bmp"`) {
		t.Errorf("Error should name the bad format, got %v", err)
	}
}

func TestOptionsGridSettings(t *testing.T) {
	opts := Options{
		Format:        "a4",
		CustomMargins: &grid.Margins{Top: 20, Left: 15, Right: 15, Bottom: 25},
	}
	if err := opts.ValidateForCalc(); err != nil {
		t.Fatalf("ValidateForCalc() error = %v", err)
	}

	s := opts.GridSettings()
	if s.Format != "A4" {
		t.Errorf("Settings format = %s, want A4", s.Format)
	}
	if s.GridCols != DefaultGridCols || s.GridRows != DefaultGridRows {
		t.Errorf("Settings grid = %dx%d, want %dx%d", s.GridCols, s.GridRows, DefaultGridCols, DefaultGridRows)
	}
	if s.CustomMargins == nil || s.CustomMargins.Top != 20 {
		t.Errorf("Settings should carry custom margins, got %+v", s.CustomMargins)
	}
}

func TestOptionsGridKeyOpts(t *testing.T) {
	opts := Options{
		CustomMargins: &grid.Margins{Top: 1, Left: 2, Right: 3, Bottom: 4},
	}
	if err := opts.ValidateForCalc(); err != nil {
		t.Fatalf("ValidateForCalc() error = %v", err)
	}

	keyOpts := opts.GridKeyOpts()
	want := []float64{1, 2, 3, 4}
	if len(keyOpts.CustomMargins) != 4 {
		t.Fatalf("CustomMargins length = %d, want 4", len(keyOpts.CustomMargins))
	}
	for i, v := range want {
		if keyOpts.CustomMargins[i] != v {
			t.Errorf("CustomMargins[%d] = %v, want %v", i, keyOpts.CustomMargins[i], v)
		}
	}
}

func TestOptionsArtifactKeyOpts(t *testing.T) {
	opts := Options{ShowBaselines: true, Title: "Poster"}
	opts.SetRenderDefaults()

	png := opts.ArtifactKeyOpts(FormatPNG)
	if png.PNGScale != DefaultPNGScale {
		t.Errorf("PNG key should carry the scale, got %v", png.PNGScale)
	}

	// Scale is a raster concern; vector keys must not vary with it.
	svg := opts.ArtifactKeyOpts(FormatSVG)
	if svg.PNGScale != 0 {
		t.Errorf("SVG key should ignore the scale, got %v", svg.PNGScale)
	}
	if !svg.ShowBaselines || svg.Title != "Poster" {
		t.Errorf("SVG key should carry display options, got %+v", svg)
	}
}
