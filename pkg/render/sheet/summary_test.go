package sheet

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/gridwerk/gridwerk/pkg/grid"
)

func TestRenderTXT(t *testing.T) {
	out := string(RenderTXT(a4Sheet(t)))

	for _, want := range []string{
		"SWISS GRID SYSTEM - PARAMETERS",
		"  Format:          A4",
		"  Orientation:     portrait",
		"  Margin Method:   Progressive (1:2:2:3)",
		"  Grid:            6 cols × 8 rows",
		"  Page Size:       595.276 × 841.890 pt (210 × 297 mm)",
		"  Content Area:    547.276 × 756.000 pt",
		"  Module Size:     81.213 × 84.000 pt",
		"  Aspect Ratio:    0.967",
		"  Scale Factor:    1.000× (relative to A4)",
		"  Baseline Grid:   12.000 pt",
		"  Cell Height:     96.000 pt (8 baseline units)",
		"  Margins:         T:12.000 B:36.000 L:24.000 R:24.000",
		"TYPOGRAPHY SYSTEM",
		"SWISS DESIGN PRINCIPLES",
		"  Reference:  Müller-Brockmann, Grid Systems in Graphic Design (1981)",
		"  ✓ All typography aligns to baseline grid",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderTXT() missing %q", want)
		}
	}
}

func TestRenderTXT_StyleTable(t *testing.T) {
	out := string(RenderTXT(a4Sheet(t)))

	for _, cell := range []string{"Caption", "Body", "Subhead", "Headline", "Display",
		"10.000 pt", "17.280 pt", "36.000 pt", "Regular", "Bold", "Left"} {
		if !strings.Contains(out, cell) {
			t.Errorf("style table missing %q", cell)
		}
	}
	if strings.Index(out, "Caption") > strings.Index(out, "Display") {
		t.Error("style table should run caption first")
	}
}

func TestRenderTXT_Rules(t *testing.T) {
	out := string(RenderTXT(a4Sheet(t)))

	heavy := strings.Repeat("=", 70)
	if !strings.HasPrefix(out, heavy+"\n") {
		t.Error("RenderTXT() should open with a heavy rule")
	}
	if !strings.HasSuffix(out, heavy+"\n") {
		t.Error("RenderTXT() should close with a heavy rule")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(a4Sheet(t))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out summary
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	if out.Format != "A4" {
		t.Errorf("Format = %q, want %q", out.Format, "A4")
	}
	if out.Settings.MarginMethod != "Progressive (1:2:2:3)" {
		t.Errorf("Settings.MarginMethod = %q, want %q", out.Settings.MarginMethod, "Progressive (1:2:2:3)")
	}
	if out.Settings.MarginMethodID != 1 {
		t.Errorf("Settings.MarginMethodID = %d, want 1", out.Settings.MarginMethodID)
	}
	if out.PageSizePt.Width != 595.276 || out.PageSizePt.Height != 841.890 {
		t.Errorf("PageSizePt = %v, want 595.276 x 841.890", out.PageSizePt)
	}
	if out.Grid.GridUnit != 12 {
		t.Errorf("Grid.GridUnit = %v, want 12", out.Grid.GridUnit)
	}
	if out.Grid.Gutter != 12 {
		t.Errorf("Grid.Gutter = %v, want 12", out.Grid.Gutter)
	}
	if out.Grid.BaselineUnitsPerCell != 8 {
		t.Errorf("Grid.BaselineUnitsPerCell = %d, want 8", out.Grid.BaselineUnitsPerCell)
	}
	if out.Grid.Margins != (summaryMargins{Top: 12, Bottom: 36, Left: 24, Right: 24}) {
		t.Errorf("Grid.Margins = %+v, want T:12 B:36 L:24 R:24", out.Grid.Margins)
	}
	if out.ContentArea.Width != 547.276 || out.ContentArea.Height != 756 {
		t.Errorf("ContentArea = %v, want 547.276 x 756", out.ContentArea)
	}
	if out.Module.Width != 81.213 {
		t.Errorf("Module.Width = %v, want 81.213", out.Module.Width)
	}
	if out.Module.AspectRatio != 0.967 {
		t.Errorf("Module.AspectRatio = %v, want 0.967", out.Module.AspectRatio)
	}
}

func TestRenderJSON_Typography(t *testing.T) {
	data, err := RenderJSON(a4Sheet(t))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out summary
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}

	meta := out.Typography.Metadata
	if meta.Format != "A4" || meta.Unit != "pt" {
		t.Errorf("Metadata = %+v, want format A4 in pt", meta)
	}
	if meta.BaselineGrid != 12 || meta.A4Baseline != 12 {
		t.Errorf("Metadata baselines = %v/%v, want 12/12", meta.BaselineGrid, meta.A4Baseline)
	}

	if len(out.Typography.Styles) != len(grid.StyleKeys) {
		t.Fatalf("style count = %d, want %d", len(out.Typography.Styles), len(grid.StyleKeys))
	}
	body := out.Typography.Styles["body"]
	if body.Size != 10 || body.Leading != 12 || body.Weight != "Regular" || body.Alignment != "Left" {
		t.Errorf("body style = %+v, want 10/12 Regular Left", body)
	}
	display := out.Typography.Styles["display"]
	if display.Size != 17.28 || display.Leading != 36 || display.Weight != "Bold" {
		t.Errorf("display style = %+v, want 17.28/36 Bold", display)
	}

	if out.Principles.Reference != principleReference {
		t.Errorf("Principles.Reference = %q, want %q", out.Principles.Reference, principleReference)
	}
}

func ExampleRenderTXT() {
	set := grid.Settings{
		Format:           "A4",
		Orientation:      grid.Portrait,
		MarginMethod:     1,
		GridCols:         6,
		GridRows:         8,
		Baseline:         12,
		BaselineMultiple: 1,
		GutterMultiple:   1,
	}
	res, _ := grid.Generate(set)
	out := RenderTXT(Sheet{Settings: set, Grid: res})

	for _, line := range strings.Split(string(out), "\n")[6:10] {
		fmt.Println(line)
	}
	// Output:
	//   Format:          A4
	//   Orientation:     portrait
	//   Margin Method:   Progressive (1:2:2:3)
	//   Grid:            6 cols × 8 rows
}
