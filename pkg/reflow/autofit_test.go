package reflow

import (
	"reflect"
	"strings"
	"testing"

	"github.com/gridwerk/gridwerk/pkg/textflow"
)

// runeMeasurer measures every rune at a fixed width regardless of font.
type runeMeasurer struct {
	perRune float64
}

func (m runeMeasurer) Measure(_ textflow.FontSpec, text string) float64 {
	return float64(len([]rune(text))) * m.perRune
}

// autofitInput matches a 6-column grid with 80pt modules, 10pt
// horizontal gutters, and 84/12 vertical rhythm.
func autofitInput(items ...AutoFitItem) AutoFitInput {
	return AutoFitInput{
		GridCols:     6,
		ModuleWidth:  80,
		ModuleHeight: 84,
		GutterH:      10,
		GutterV:      12,
		Items:        items,
	}
}

func TestAutoFitBatch_FindsMinimalSpan(t *testing.T) {
	// Twenty 4-char words at 10pt per rune. One module holds one word
	// per line (20 lines); two modules hold three words (7 lines), which
	// exactly fits the 7-line capacity of one 84pt row at 12pt leading.
	item := AutoFitItem{
		Key:         "body",
		Text:        strings.TrimSpace(strings.Repeat("grid ", 20)),
		Leading:     12,
		CurrentSpan: 4,
		RowSpan:     1,
		Position:    Position{Col: 0, Row: 0},
	}
	result := AutoFitBatch(autofitInput(item), runeMeasurer{perRune: 10})

	if got, want := result.SpanUpdates["body"], 2; got != want {
		t.Errorf("span update = %d, want %d", got, want)
	}
	if _, ok := result.PositionUpdates["body"]; ok {
		t.Errorf("unexpected position update: %+v", result.PositionUpdates["body"])
	}
}

func TestAutoFitBatch_GrowsWhenCurrentSpanOverflows(t *testing.T) {
	item := AutoFitItem{
		Key:         "body",
		Text:        strings.TrimSpace(strings.Repeat("grid ", 20)),
		Leading:     12,
		CurrentSpan: 1,
		RowSpan:     1,
	}
	result := AutoFitBatch(autofitInput(item), runeMeasurer{perRune: 10})

	if got, want := result.SpanUpdates["body"], 2; got != want {
		t.Errorf("span update = %d, want %d", got, want)
	}
}

func TestAutoFitBatch_AcceptsOverflowAtFullWidth(t *testing.T) {
	// Far more text than six modules can hold: the resolver settles on
	// the full grid width rather than failing.
	item := AutoFitItem{
		Key:         "flood",
		Text:        strings.TrimSpace(strings.Repeat("overflow ", 400)),
		Leading:     12,
		CurrentSpan: 2,
		RowSpan:     1,
	}
	result := AutoFitBatch(autofitInput(item), runeMeasurer{perRune: 10})

	if got, want := result.SpanUpdates["flood"], 6; got != want {
		t.Errorf("span update = %d, want %d", got, want)
	}
}

func TestAutoFitBatch_BlankTextOmitted(t *testing.T) {
	items := []AutoFitItem{
		{Key: "empty", Text: "", CurrentSpan: 2, RowSpan: 1, Leading: 12},
		{Key: "spaces", Text: "   \n\t  ", CurrentSpan: 2, RowSpan: 1, Leading: 12},
		{Key: "real", Text: "words here", CurrentSpan: 6, RowSpan: 1, Leading: 12},
	}
	result := AutoFitBatch(autofitInput(items...), runeMeasurer{perRune: 10})

	for _, key := range []string{"empty", "spaces"} {
		if _, ok := result.SpanUpdates[key]; ok {
			t.Errorf("spanUpdates contains blank item %q", key)
		}
		if _, ok := result.PositionUpdates[key]; ok {
			t.Errorf("positionUpdates contains blank item %q", key)
		}
	}
	if _, ok := result.SpanUpdates["real"]; !ok {
		t.Error("non-blank item missing from spanUpdates")
	}
}

func TestAutoFitBatch_NoChangeMeansNoEntry(t *testing.T) {
	// "grid grid" needs one 2-module line; span 1 would wrap to two
	// lines but capacity is 7, so span 1 already fits and shrinking
	// stops there only if current span is 1.
	item := AutoFitItem{
		Key:         "snug",
		Text:        "grid",
		Leading:     12,
		CurrentSpan: 1,
		RowSpan:     1,
	}
	result := AutoFitBatch(autofitInput(item), runeMeasurer{perRune: 10})

	if len(result.SpanUpdates) != 0 {
		t.Errorf("spanUpdates = %+v, want empty", result.SpanUpdates)
	}
	if len(result.PositionUpdates) != 0 {
		t.Errorf("positionUpdates = %+v, want empty", result.PositionUpdates)
	}
}

func TestAutoFitBatch_ReclampsColumnForNewSpan(t *testing.T) {
	// The block sits in the last column; growing past span 1 forces it
	// left to stay on the grid.
	item := AutoFitItem{
		Key:         "corner",
		Text:        strings.TrimSpace(strings.Repeat("grid ", 20)),
		Leading:     12,
		CurrentSpan: 1,
		RowSpan:     1,
		Position:    Position{Col: 5, Row: 16},
	}
	result := AutoFitBatch(autofitInput(item), runeMeasurer{perRune: 10})

	span := result.SpanUpdates["corner"]
	if span != 2 {
		t.Fatalf("span update = %d, want 2", span)
	}
	pos, ok := result.PositionUpdates["corner"]
	if !ok {
		t.Fatal("expected a position update for the re-clamped column")
	}
	if pos.Col != 4 || pos.Row != 16 {
		t.Errorf("position update = %+v, want (4, 16)", pos)
	}
}

func TestAutoFitBatch_NilMeasurerEmptyResult(t *testing.T) {
	item := AutoFitItem{Key: "any", Text: "text", CurrentSpan: 1, RowSpan: 1, Leading: 12}
	result := AutoFitBatch(autofitInput(item), nil)

	if result.SpanUpdates == nil || result.PositionUpdates == nil {
		t.Fatal("result maps must be non-nil")
	}
	if len(result.SpanUpdates) != 0 || len(result.PositionUpdates) != 0 {
		t.Errorf("result = %+v, want empty maps", result)
	}
}

func TestAutoFitBatch_RowSpanRaisesCapacity(t *testing.T) {
	// Two rows give floor((2*84+12)/12) = 15 lines, so one module wide
	// is enough for 14 lines of one word each.
	item := AutoFitItem{
		Key:         "tall",
		Text:        strings.TrimSpace(strings.Repeat("grid ", 14)),
		Leading:     12,
		CurrentSpan: 3,
		RowSpan:     2,
	}
	result := AutoFitBatch(autofitInput(item), runeMeasurer{perRune: 10})

	if got, want := result.SpanUpdates["tall"], 1; got != want {
		t.Errorf("span update = %d, want %d", got, want)
	}
}

func TestAutoFitBatch_Deterministic(t *testing.T) {
	items := []AutoFitItem{
		{Key: "a", Text: strings.Repeat("alpha ", 30), Leading: 12, CurrentSpan: 3, RowSpan: 1},
		{Key: "b", Text: "beta", Leading: 12, CurrentSpan: 2, RowSpan: 1},
		{Key: "c", Text: "", Leading: 12, CurrentSpan: 2, RowSpan: 1},
	}
	first := AutoFitBatch(autofitInput(items...), runeMeasurer{perRune: 10})
	second := AutoFitBatch(autofitInput(items...), runeMeasurer{perRune: 10})
	if !reflect.DeepEqual(first, second) {
		t.Errorf("results differ:\n%+v\n%+v", first, second)
	}
}
