package pipeline

import (
	"bytes"
	"context"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/gridwerk/gridwerk/pkg/cache"
	"github.com/gridwerk/gridwerk/pkg/errors"
	"github.com/gridwerk/gridwerk/pkg/reflow"
	"github.com/gridwerk/gridwerk/pkg/textflow"
)

// runeMeasurer measures every rune at a fixed width regardless of font.
type runeMeasurer struct {
	perRune float64
}

func (m runeMeasurer) Measure(_ textflow.FontSpec, text string) float64 {
	return float64(len([]rune(text))) * m.perRune
}

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 0.001
}

func TestCalc(t *testing.T) {
	g, err := Calc(Options{})
	if err != nil {
		t.Fatalf("Calc() error = %v", err)
	}

	if g.PageWidth != 595.276 || g.PageHeight != 841.890 {
		t.Errorf("Page = %v × %v, want 595.276 × 841.890", g.PageWidth, g.PageHeight)
	}
	if g.Cols != DefaultGridCols || g.Rows != DefaultGridRows {
		t.Errorf("Grid = %dx%d, want %dx%d", g.Cols, g.Rows, DefaultGridCols, DefaultGridRows)
	}
	if g.GridUnit != DefaultBaseline {
		t.Errorf("GridUnit = %v, want %v", g.GridUnit, DefaultBaseline)
	}
	if g.UnitsPerCell != 8 {
		t.Errorf("UnitsPerCell = %d, want 8", g.UnitsPerCell)
	}
}

func TestCalc_InvalidFormat(t *testing.T) {
	_, err := Calc(Options{Format: "z9"})
	if err == nil {
		t.Fatal("Unknown format should fail")
	}
	if !strings.Contains(err.Error(), "Z9") {
		t.Errorf("Error should name the normalized format, got %v", err)
	}
}

func TestAssemble(t *testing.T) {
	g, err := Calc(Options{})
	if err != nil {
		t.Fatalf("Calc() error = %v", err)
	}

	opts := Options{
		Blocks: []reflow.Block{{
			Key:      "intro",
			Text:     "the quick brown fox jumps over the lazy dog",
			StyleKey: "body",
			ColSpan:  2,
			RowSpan:  1,
		}},
		Measurer: runeMeasurer{perRune: 6},
	}

	overlay, err := Assemble(g, opts)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}
	if len(overlay.Blocks) != 1 {
		t.Fatalf("Blocks = %d, want 1", len(overlay.Blocks))
	}

	b := overlay.Blocks[0]
	if b.Key != "intro" || b.StyleKey != "body" {
		t.Errorf("Block identity = %s/%s, want intro/body", b.Key, b.StyleKey)
	}
	if b.Size != 10 || b.Leading != 12 {
		t.Errorf("Body style = %v/%v, want 10/12", b.Size, b.Leading)
	}
	if !approx(b.X, 24) || !approx(b.Y, 12) {
		t.Errorf("Frame origin = (%v, %v), want (24, 12)", b.X, b.Y)
	}
	if !approx(b.Width, 2*g.ModuleWidth+g.GutterH) {
		t.Errorf("Frame width = %v, want %v", b.Width, 2*g.ModuleWidth+g.GutterH)
	}

	if len(b.Lines) != 2 {
		t.Fatalf("Lines = %d, want 2", len(b.Lines))
	}
	if b.Lines[0].Text != "the quick brown fox jumps" {
		t.Errorf("First line = %q", b.Lines[0].Text)
	}
	// Baselines sit one leading below each line top.
	if !approx(b.Lines[0].Y, 24) || !approx(b.Lines[1].Y, 36) {
		t.Errorf("Baselines = %v, %v, want 24, 36", b.Lines[0].Y, b.Lines[1].Y)
	}
}

func TestAssemble_UnknownStyle(t *testing.T) {
	g, err := Calc(Options{})
	if err != nil {
		t.Fatalf("Calc() error = %v", err)
	}

	opts := Options{
		Blocks:   []reflow.Block{{Key: "x", Text: "text", StyleKey: "mega"}},
		Measurer: runeMeasurer{perRune: 6},
	}

	_, err = Assemble(g, opts)
	if err == nil {
		t.Fatal("Unknown style key should fail")
	}
	if !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("Error code = %v, want %v", err, errors.ErrCodeInvalidStyle)
	}
	if !strings.Contains(err.Error(), "mega") {
		t.Errorf("Error should name the style key, got %v", err)
	}
}

func TestAssemble_CollidingBlocksSeparate(t *testing.T) {
	g, err := Calc(Options{})
	if err != nil {
		t.Fatalf("Calc() error = %v", err)
	}

	opts := Options{
		Blocks: []reflow.Block{
			{Key: "a", Text: "first", StyleKey: "body", ColSpan: 1, RowSpan: 1, Reflow: true},
			{Key: "b", Text: "second", StyleKey: "body", ColSpan: 1, RowSpan: 1, Reflow: true},
		},
		Measurer: runeMeasurer{perRune: 6},
	}

	overlay, err := Assemble(g, opts)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	a, b := overlay.Blocks[0], overlay.Blocks[1]
	if !approx(a.X, 24) {
		t.Errorf("First block X = %v, want 24", a.X)
	}
	if !approx(b.X, 24+g.ModuleWidth+g.GutterH) {
		t.Errorf("Second block should move one column right, X = %v", b.X)
	}
}

func TestAssemble_PinnedBlockKeepsPosition(t *testing.T) {
	g, err := Calc(Options{})
	if err != nil {
		t.Fatalf("Calc() error = %v", err)
	}

	opts := Options{
		Blocks: []reflow.Block{{
			Key:      "pinned",
			Text:     "folio",
			StyleKey: "caption",
			ColSpan:  1,
			RowSpan:  1,
			Position: reflow.Position{Col: 3, Row: 8},
		}},
		Measurer: runeMeasurer{perRune: 6},
	}

	overlay, err := Assemble(g, opts)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	b := overlay.Blocks[0]
	wantX := 24 + 3*(g.ModuleWidth+g.GutterH)
	if !approx(b.X, wantX) {
		t.Errorf("X = %v, want %v", b.X, wantX)
	}
	if !approx(b.Y, 12+8*g.GridUnit) {
		t.Errorf("Y = %v, want %v", b.Y, 12+8*g.GridUnit)
	}
}

func TestAssemble_AutoFitShrinksSpan(t *testing.T) {
	g, err := Calc(Options{})
	if err != nil {
		t.Fatalf("Calc() error = %v", err)
	}

	opts := Options{
		AutoFit: true,
		Blocks: []reflow.Block{{
			Key:      "short",
			Text:     "hello",
			StyleKey: "body",
			ColSpan:  6,
			RowSpan:  1,
		}},
		Measurer: runeMeasurer{perRune: 6},
	}

	overlay, err := Assemble(g, opts)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	b := overlay.Blocks[0]
	if !approx(b.Width, g.ModuleWidth) {
		t.Errorf("Auto-fit should shrink to one module, width = %v", b.Width)
	}
}

func TestRunnerExecute(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	opts := Options{
		Formats: []string{FormatSVG, FormatTXT, FormatJSON},
		Blocks: []reflow.Block{{
			Key:      "title",
			Text:     "Rastersysteme",
			StyleKey: "headline",
			ColSpan:  3,
			RowSpan:  1,
		}},
		Measurer: runeMeasurer{perRune: 6},
	}

	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if result.Grid == nil || result.GridHash == "" {
		t.Error("Result should carry the grid and its hash")
	}
	if result.Overlay == nil || len(result.Overlay.Blocks) != 1 {
		t.Fatalf("Overlay = %+v, want one block", result.Overlay)
	}
	if result.Stats.BlockCount != 1 || result.Stats.LineCount == 0 {
		t.Errorf("Stats = %+v, want one block with lines", result.Stats)
	}
	if len(result.Artifacts) != 3 {
		t.Fatalf("Artifacts = %d, want 3", len(result.Artifacts))
	}

	if !bytes.Contains(result.Artifacts[FormatSVG], []byte(">Rastersysteme</text>")) {
		t.Error("SVG should place the block text")
	}
	if !bytes.Contains(result.Artifacts[FormatTXT], []byte("SWISS GRID SYSTEM")) {
		t.Error("TXT should carry the parameter summary")
	}
	if !bytes.Contains(result.Artifacts[FormatJSON], []byte(`"margin_method"`)) {
		t.Error("JSON should carry the settings summary")
	}
}

func TestRunnerExecute_CacheHit(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(c, nil, quietLogger())
	defer r.Close()

	opts := Options{
		Formats: []string{FormatSVG, FormatTXT},
		Blocks: []reflow.Block{{
			Key:      "body",
			Text:     "Typographie ist Ordnung",
			StyleKey: "body",
			ColSpan:  2,
			RowSpan:  1,
		}},
		Measurer: runeMeasurer{perRune: 6},
	}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("First Execute() error = %v", err)
	}
	if first.CacheInfo.CalcHit || first.CacheInfo.LayoutHit || first.CacheInfo.RenderHit {
		t.Errorf("First run should miss everywhere, got %+v", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Second Execute() error = %v", err)
	}
	if !second.CacheInfo.CalcHit || !second.CacheInfo.LayoutHit || !second.CacheInfo.RenderHit {
		t.Errorf("Second run should hit everywhere, got %+v", second.CacheInfo)
	}

	if !bytes.Equal(first.Artifacts[FormatSVG], second.Artifacts[FormatSVG]) {
		t.Error("Cached SVG should match the rendered one")
	}
}

func TestRunnerExecute_RefreshSkipsCache(t *testing.T) {
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache() error = %v", err)
	}
	r := NewRunner(c, nil, quietLogger())
	defer r.Close()

	opts := Options{Formats: []string{FormatTXT}}

	if _, err := r.Execute(context.Background(), opts); err != nil {
		t.Fatalf("First Execute() error = %v", err)
	}

	opts.Refresh = true
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Refresh Execute() error = %v", err)
	}
	if result.CacheInfo.CalcHit || result.CacheInfo.RenderHit {
		t.Errorf("Refresh should bypass cache reads, got %+v", result.CacheInfo)
	}
}

func TestRunnerExecute_NoBlocksSkipsLayout(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	defer r.Close()

	result, err := r.Execute(context.Background(), Options{Formats: []string{FormatSVG}})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if result.Overlay != nil {
		t.Errorf("Overlay should be nil without blocks, got %+v", result.Overlay)
	}
	if result.Stats.LayoutTime != 0 {
		t.Errorf("Layout stage should not run, took %v", result.Stats.LayoutTime)
	}
}
