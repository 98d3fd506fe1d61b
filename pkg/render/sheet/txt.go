package sheet

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gridwerk/gridwerk/pkg/grid"
	"github.com/gridwerk/gridwerk/pkg/units"
)

const ruleWidth = 70

// RenderTXT renders a plain-text summary of the grid system, suitable for
// reference output or inclusion in documentation. Sections follow the
// order settings, page dimensions, gutters, typography and principles.
func RenderTXT(s Sheet) []byte {
	g := s.Grid
	heavy := strings.Repeat("=", ruleWidth)
	light := strings.Repeat("-", ruleWidth)

	var buf bytes.Buffer
	line := func(format string, args ...any) {
		fmt.Fprintf(&buf, format+"\n", args...)
	}

	line(heavy)
	line("SWISS GRID SYSTEM - PARAMETERS")
	line(heavy)
	line("")

	line("SETTINGS")
	line(light)
	line("  Format:          %s", s.Settings.Format)
	line("  Orientation:     %s", s.Settings.Orientation)
	line("  Margin Method:   %s", grid.MarginMethodLabels[s.Settings.MarginMethod])
	line("  Grid:            %d cols × %d rows", g.Cols, g.Rows)
	line("")

	line("PAGE DIMENSIONS")
	line(light)
	line("  Page Size:       %.3f × %.3f pt (%.0f × %.0f mm)",
		g.PageWidth, g.PageHeight, units.Pt(g.PageWidth).ToMm(), units.Pt(g.PageHeight).ToMm())
	line("  Content Area:    %.3f × %.3f pt", g.ContentWidth, g.ContentHeight)
	line("  Module Size:     %.3f × %.3f pt", g.ModuleWidth, g.ModuleHeight)
	line("  Aspect Ratio:    %.3f", g.ModuleAspect)
	line("  Scale Factor:    %.3f× (relative to A4)", g.ScaleFactor)
	line("")

	line("GUTTER CONFIGURATION")
	line(light)
	line("  Baseline Grid:   %.3f pt", g.GridUnit)
	line("  H. Gutter:       %.3f pt", g.GutterH)
	line("  V. Gutter:       %.3f pt", g.GutterV)
	line("  Cell Height:     %.3f pt (%d baseline units)", float64(g.UnitsPerCell)*g.GridUnit, g.UnitsPerCell)
	line("  Margins:         T:%.3f B:%.3f L:%.3f R:%.3f", g.Margins.Top, g.Margins.Bottom, g.Margins.Left, g.Margins.Right)
	line("")

	line("TYPOGRAPHY SYSTEM")
	line(light)
	line("  %-12s %-12s %-12s %-10s %s", "Style", "Size", "Leading", "Weight", "Alignment")
	line("  %s %s %s %s %s", strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 12), strings.Repeat("-", 10), strings.Repeat("-", 10))
	for _, key := range grid.StyleKeys {
		style, ok := g.Styles[key]
		if !ok {
			continue
		}
		line("  %-12s %-12s %-12s %-10s %s",
			capitalize(key),
			fmt.Sprintf("%.3f pt", style.Size),
			fmt.Sprintf("%.3f pt", style.Leading),
			style.Weight,
			styleAlignment)
	}
	line("")

	line("SWISS DESIGN PRINCIPLES")
	line(light)
	line("  Reference:  %s", principleReference)
	line("  ✓ %s", principleBaselines)
	line("  ✓ %s", principleModules)
	line("  ✓ %s", principleScaling)
	line("")

	line(heavy)
	return buf.Bytes()
}
