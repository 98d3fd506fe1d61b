package pipeline

import (
	"math"
	"strings"

	"github.com/gridwerk/gridwerk/pkg/errors"
	"github.com/gridwerk/gridwerk/pkg/fonts"
	"github.com/gridwerk/gridwerk/pkg/grid"
	"github.com/gridwerk/gridwerk/pkg/reflow"
	"github.com/gridwerk/gridwerk/pkg/render/sheet"
	"github.com/gridwerk/gridwerk/pkg/textflow"
)

// alignCenter centers lines within the block frame. Left and right come
// from textflow, which also supplies the optical margin correction for
// those two edges.
const alignCenter = "center"

// =============================================================================
// Overlay Assembly
// =============================================================================

// Assemble places document blocks onto the module grid and wraps their
// text against the baseline grid. The result is a serializable overlay
// with every line at its final page coordinates.
//
// Blocks pass through four steps:
//
//  1. Clamp spans, positions, and rotations to the grid
//  2. Auto-fit column spans to the text (when opts.AutoFit is set)
//  3. Plan reflow-enabled blocks onto free module cells
//  4. Wrap and place each block's text line by line
//
// Pinned blocks (Reflow false) keep their clamped position and may
// overlap; the planner only packs the blocks that opted in.
func Assemble(g *grid.Result, opts Options) (*sheet.Overlay, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	blocks, err := clampAll(opts.Blocks, g)
	if err != nil {
		return nil, err
	}
	if opts.AutoFit {
		applyAutoFit(blocks, g, opts.Measurer)
	}

	placements := planBlocks(blocks, g)

	overlay := &sheet.Overlay{Blocks: make([]sheet.PlacedBlock, 0, len(blocks))}
	for _, b := range blocks {
		placed := placeBlock(b, placements[b.Key], g.Styles[b.StyleKey], g, opts.Measurer)
		overlay.Blocks = append(overlay.Blocks, placed)
	}
	return overlay, nil
}

// PlanBlocks runs the same clamp, auto-fit, and planning steps as
// Assemble but returns the updated blocks instead of placed text. The
// layout command uses it to write resolved spans and positions back into
// a document.
func PlanBlocks(g *grid.Result, opts Options) ([]reflow.Block, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	blocks, err := clampAll(opts.Blocks, g)
	if err != nil {
		return nil, err
	}
	if opts.AutoFit {
		applyAutoFit(blocks, g, opts.Measurer)
	}

	placements := planBlocks(blocks, g)
	for i := range blocks {
		if p, ok := placements[blocks[i].Key]; ok {
			blocks[i].ColSpan = p.Span
			blocks[i].Position = p.Position
		}
	}
	return blocks, nil
}

// AutoFitBlocks clamps the blocks and resolves each span against its
// measured text, leaving positions untouched.
func AutoFitBlocks(g *grid.Result, opts Options) ([]reflow.Block, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return nil, err
	}

	blocks, err := clampAll(opts.Blocks, g)
	if err != nil {
		return nil, err
	}
	applyAutoFit(blocks, g, opts.Measurer)
	return blocks, nil
}

// clampAll copies and normalizes the blocks against the grid.
func clampAll(in []reflow.Block, g *grid.Result) ([]reflow.Block, error) {
	blocks := make([]reflow.Block, len(in))
	copy(blocks, in)

	maxRow := reflow.MaxBaselineRow(g.PageHeight, g.Margins.Top, g.Margins.Bottom, g.GridUnit)
	for i := range blocks {
		if err := clampBlock(&blocks[i], g, maxRow); err != nil {
			return nil, err
		}
	}
	return blocks, nil
}

// clampBlock normalizes one block in place. Style keys are checked here
// so every later step can index g.Styles without a second lookup.
func clampBlock(b *reflow.Block, g *grid.Result, maxRow float64) error {
	if _, ok := g.Styles[b.StyleKey]; !ok {
		return errors.New(errors.ErrCodeInvalidStyle, "Unknown style key: %q", b.StyleKey)
	}
	b.ColSpan = reflow.ClampSpan(b.ColSpan, g.Cols)
	if b.RowSpan < 1 {
		b.RowSpan = 1
	}
	if b.RowSpan > g.Rows {
		b.RowSpan = g.Rows
	}
	b.Position.Col = reflow.ClampCol(b.Position.Col, b.ColSpan, g.Cols)
	b.Position.Row = reflow.ClampRow(b.Position.Row, maxRow)
	b.Rotation = reflow.ClampRotation(b.Rotation)
	if b.Align == "" {
		b.Align = textflow.AlignLeft
	}
	return nil
}

// applyAutoFit sizes each block's column span to its text and writes the
// updates back into the slice.
func applyAutoFit(blocks []reflow.Block, g *grid.Result, m textflow.Measurer) {
	in := reflow.AutoFitInput{
		GridCols:     g.Cols,
		ModuleWidth:  g.ModuleWidth,
		ModuleHeight: g.ModuleHeight,
		GutterH:      g.GutterH,
		GutterV:      g.GutterV,
		Items:        make([]reflow.AutoFitItem, 0, len(blocks)),
	}
	for _, b := range blocks {
		style := g.Styles[b.StyleKey]
		in.Items = append(in.Items, reflow.AutoFitItem{
			Key:         b.Key,
			Text:        b.Text,
			Font:        blockFont(b, style),
			Leading:     style.Leading,
			CurrentSpan: b.ColSpan,
			RowSpan:     b.RowSpan,
			Position:    b.Position,
			Syllables:   b.Syllables,
		})
	}

	result := reflow.AutoFitBatch(in, m)
	for i := range blocks {
		if span, ok := result.SpanUpdates[blocks[i].Key]; ok {
			blocks[i].ColSpan = span
		}
		if pos, ok := result.PositionUpdates[blocks[i].Key]; ok {
			blocks[i].Position = pos
		}
	}
}

// planBlocks resolves final placements. Reflow-enabled blocks go through
// the collision-free planner in input order; pinned blocks keep their
// clamped span and position.
func planBlocks(blocks []reflow.Block, g *grid.Result) map[string]reflow.Placement {
	in := reflow.PlanInput{
		GridCols:     g.Cols,
		GridRows:     g.Rows,
		Spans:        make(map[string]int),
		Sources:      make(map[string]reflow.Position),
		PageHeight:   g.PageHeight,
		MarginTop:    g.Margins.Top,
		MarginBottom: g.Margins.Bottom,
		GridUnit:     g.GridUnit,
		ModuleHeight: g.ModuleHeight,
		GutterV:      g.GutterV,
	}

	placements := make(map[string]reflow.Placement, len(blocks))
	for _, b := range blocks {
		if !b.Reflow {
			placements[b.Key] = reflow.Placement{Span: b.ColSpan, Position: b.Position}
			continue
		}
		in.Order = append(in.Order, b.Key)
		in.Spans[b.Key] = b.ColSpan
		in.Sources[b.Key] = b.Position
	}
	for key, p := range reflow.ComputePlan(in) {
		placements[key] = p
	}
	return placements
}

// =============================================================================
// Block Placement
// =============================================================================

// placeBlock wraps one block's text into its module frame and fixes each
// line to the baseline grid. Lines never straddle a vertical gutter; a
// line that would is pushed to the top of the next module row. Overflow
// past the bottom margin is placed rather than clipped, so the artifact
// shows exactly what auto-fit is asked to repair.
func placeBlock(b reflow.Block, p reflow.Placement, style grid.Style, g *grid.Result, m textflow.Measurer) sheet.PlacedBlock {
	frameX := g.Margins.Left + float64(p.Position.Col)*(g.ModuleWidth+g.GutterH)
	frameY := g.Margins.Top + p.Position.Row*g.GridUnit
	frameW := float64(p.Span)*g.ModuleWidth + float64(p.Span-1)*g.GutterH
	frameH := float64(b.RowSpan)*g.ModuleHeight + float64(b.RowSpan-1)*g.GutterV

	font := blockFont(b, style)
	width := textflow.Bind(m, font)

	var lines []string
	if strings.TrimSpace(b.Text) != "" {
		lines = textflow.WrapText(b.Text, frameW, b.Syllables, width)
	}

	band := textflow.Band{Top: g.Margins.Top, Module: g.ModuleHeight, Cycle: g.ModuleHeight + g.GutterV}
	tops := textflow.SingleColumnLineTops(frameY, style.Leading, math.Inf(1), band, len(lines))

	placed := sheet.PlacedBlock{
		Key:      b.Key,
		StyleKey: b.StyleKey,
		Size:     style.Size,
		Leading:  style.Leading,
		Weight:   font.Weight,
		Align:    b.Align,
		Rotation: b.Rotation,
		X:        frameX,
		Y:        frameY,
		Width:    frameW,
		Height:   frameH,
		Lines:    make([]sheet.PlacedLine, 0, len(tops)),
	}
	for i, top := range tops {
		line := lines[i]
		x := frameX
		switch b.Align {
		case alignCenter:
			x += (frameW - width(line)) / 2
		case textflow.AlignRight:
			x += frameW - width(line)
			x += textflow.OpticalOffset(line, textflow.AlignRight, style.Size, width)
		default:
			x += textflow.OpticalOffset(line, textflow.AlignLeft, style.Size, width)
		}
		placed.Lines = append(placed.Lines, sheet.PlacedLine{
			Text: line,
			X:    x,
			Y:    top + style.Leading,
		})
	}
	return placed
}

// blockFont resolves the measuring font for a block: the block's family
// override or the sheet default, with Bold taking precedence over the
// style weight.
func blockFont(b reflow.Block, style grid.Style) textflow.FontSpec {
	family := b.FontFamily
	if family == "" {
		family = fonts.FontFamily
	}
	weight := style.Weight
	if b.Bold {
		weight = "Bold"
	}
	return textflow.FontSpec{Family: family, Weight: weight, Size: style.Size, Italic: b.Italic}
}
