package reflow

import (
	"math"
	"strings"

	"github.com/gridwerk/gridwerk/pkg/textflow"
)

// AutoFitItem is one block to size. Leading is the style's line height
// in the same unit as the module geometry; CurrentSpan seeds the search.
type AutoFitItem struct {
	Key         string            `json:"key"`
	Text        string            `json:"text"`
	Font        textflow.FontSpec `json:"font"`
	Leading     float64           `json:"leading"`
	CurrentSpan int               `json:"currentSpan"`
	RowSpan     int               `json:"rowSpan"`
	Position    Position          `json:"position"`
	Syllables   bool              `json:"syllableDivision"`
}

// AutoFitInput carries the module geometry shared by every item in a
// batch.
type AutoFitInput struct {
	GridCols     int           `json:"gridCols"`
	ModuleWidth  float64       `json:"moduleWidth"`
	ModuleHeight float64       `json:"moduleHeight"`
	GutterH      float64       `json:"gutterH"`
	GutterV      float64       `json:"gutterV"`
	Items        []AutoFitItem `json:"items"`
}

// AutoFitResult holds per-key updates. An absent key means that item
// needs no change; blank-text items never appear in either map.
type AutoFitResult struct {
	SpanUpdates     map[string]int      `json:"spanUpdates"`
	PositionUpdates map[string]Position `json:"positionUpdates"`
}

// AutoFitBatch finds, independently for each item with non-blank text,
// the minimal column span whose wrapped line count fits the item's row
// span. The search starts at the item's current span, shrinking while
// the text still fits and growing when it does not; when even gridCols
// overflows, gridCols is selected and the overflow accepted. Columns are
// re-clamped for the chosen span; the caller clamps rows against its own
// page bounds. A nil measurer yields the well-formed empty result.
func AutoFitBatch(in AutoFitInput, m textflow.Measurer) AutoFitResult {
	result := AutoFitResult{
		SpanUpdates:     make(map[string]int),
		PositionUpdates: make(map[string]Position),
	}
	if m == nil {
		return result
	}

	cols := in.GridCols
	if cols < 1 {
		cols = 1
	}
	for _, item := range in.Items {
		if strings.TrimSpace(item.Text) == "" {
			continue
		}

		span := fitSpan(in, item, cols, m)
		if span != item.CurrentSpan {
			result.SpanUpdates[item.Key] = span
		}

		col := ClampCol(item.Position.Col, span, cols)
		row := ClampRow(item.Position.Row, -1)
		if col != item.Position.Col || row != item.Position.Row {
			result.PositionUpdates[item.Key] = Position{Col: col, Row: row}
		}
	}
	return result
}

// fitSpan returns the minimal span in [1, cols] whose wrapped line count
// stays within the item's row capacity, or cols when nothing fits.
func fitSpan(in AutoFitInput, item AutoFitItem, cols int, m textflow.Measurer) int {
	width := textflow.Bind(m, item.Font)
	capacity := lineCapacity(item, in)

	fits := func(span int) bool {
		lines := textflow.WrapText(item.Text, spanWidth(in, span), item.Syllables, width)
		return len(lines) <= capacity
	}

	span := ClampSpan(item.CurrentSpan, cols)
	if fits(span) {
		for span > 1 && fits(span-1) {
			span--
		}
		return span
	}
	for span < cols {
		span++
		if fits(span) {
			return span
		}
	}
	return cols
}

// spanWidth is the rendered width of a span: its modules plus the
// gutters between them.
func spanWidth(in AutoFitInput, span int) float64 {
	return float64(span)*in.ModuleWidth + float64(span-1)*in.GutterH
}

// lineCapacity converts an item's row span to the number of lines of
// its leading that fit the spanned height, never below one.
func lineCapacity(item AutoFitItem, in AutoFitInput) int {
	rows := item.RowSpan
	if rows < 1 {
		rows = 1
	}
	if item.Leading <= 0 {
		return 1
	}
	height := float64(rows)*in.ModuleHeight + float64(rows-1)*in.GutterV
	capacity := int(math.Floor(height / item.Leading))
	if capacity < 1 {
		return 1
	}
	return capacity
}
