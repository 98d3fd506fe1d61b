package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridwerk/gridwerk/pkg/grid"
	"github.com/gridwerk/gridwerk/pkg/pipeline"
	"github.com/gridwerk/gridwerk/pkg/render/sheet"
)

// calcCommand creates the calc command for computing grid specifications.
func (c *CLI) calcCommand() *cobra.Command {
	var (
		flags       gridFlags
		jsonOut     bool
		maxBaseline bool
	)

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute a grid specification",
		Long: `Compute a grid specification from settings or a preset.

The calc command derives the complete grid: page size, margins, module
matrix, baseline count, and the typographic styles locked to the
baseline grid. Nothing is rendered; use 'render' for specification
sheets.

Examples:
  gridwerk calc                         # A4 portrait, 6x8, 12pt baseline
  gridwerk calc -f A2 -c 4 -r 6         # A2 poster grid
  gridwerk calc --preset book           # A5 Van de Graaf book page
  gridwerk calc --json                  # machine-readable output
  gridwerk calc -f A5 --max-baseline    # largest baseline that fits`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			if maxBaseline {
				return c.runMaxBaseline(opts)
			}
			return c.runCalc(opts, jsonOut)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print the grid as indented JSON")
	cmd.Flags().BoolVar(&maxBaseline, "max-baseline", false, "print the largest baseline unit the margin method fits on the page")

	return cmd
}

// runCalc computes the grid and prints the specification summary.
func (c *CLI) runCalc(opts pipeline.Options, jsonOut bool) error {
	if err := opts.ValidateForCalc(); err != nil {
		return err
	}
	g, err := pipeline.Calc(opts)
	if err != nil {
		return err
	}

	if jsonOut {
		data, err := sheet.RenderJSON(sheet.Sheet{Settings: opts.GridSettings(), Grid: g})
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printSpecSheet(opts, g)
	return nil
}

// runMaxBaseline answers the largest baseline query for the page and
// margin method. Custom point margins do not participate: the query asks
// what unit the method's ratios allow, and the unit is the unknown.
func (c *CLI) runMaxBaseline(opts pipeline.Options) error {
	if err := opts.ValidateForCalc(); err != nil {
		return err
	}
	g, err := pipeline.Calc(opts)
	if err != nil {
		return err
	}

	maxUnit, err := grid.MaxBaseline(g.PageHeight, opts.MarginMethod, opts.BaselineMultiple, nil)
	if err != nil {
		return err
	}

	printKeyValue("Max baseline", fmt.Sprintf("%g pt", maxUnit))
	printDetail("%s %s · %s · page height %.1f pt",
		opts.Format, opts.Orientation, marginMethodLabel(opts), g.PageHeight)
	return nil
}

// printSpecSheet prints the human-readable grid summary.
func printSpecSheet(opts pipeline.Options, g *grid.Result) {
	printSuccess("Grid computed")
	printKeyValue("Page", fmt.Sprintf("%s %s · %.1f × %.1f pt", opts.Format, opts.Orientation, g.PageWidth, g.PageHeight))
	printKeyValue("Margins", fmt.Sprintf("top %g  left %g  right %g  bottom %g", g.Margins.Top, g.Margins.Left, g.Margins.Right, g.Margins.Bottom))
	printKeyValue("Method", marginMethodLabel(opts))
	printKeyValue("Modules", fmt.Sprintf("%d × %d · %.3f × %.3f pt", g.Cols, g.Rows, g.ModuleWidth, g.ModuleHeight))
	printKeyValue("Baseline", fmt.Sprintf("%g pt · %d units per module", g.GridUnit, g.UnitsPerCell))
	printKeyValue("Gutter", fmt.Sprintf("%g pt", g.GutterH))
	printKeyValue("Content", fmt.Sprintf("%.3f × %.3f pt", g.ContentWidth, g.ContentHeight))
	printKeyValue("Type scale", fmt.Sprintf("%s · factor %.3f", g.Scale, g.ScaleFactor))

	printNewline()
	for _, key := range grid.StyleKeys {
		s := g.Styles[key]
		printKeyValue(key, fmt.Sprintf("%.4g/%g %s", s.Size, s.Leading, s.Weight))
	}

	printNewline()
	printNextStep("Render", "gridwerk render -f "+opts.Format)
}

// marginMethodLabel names the margin source, including the custom case
// the numbered methods do not cover.
func marginMethodLabel(opts pipeline.Options) string {
	if opts.CustomMargins != nil {
		return "Custom (points)"
	}
	if label, ok := grid.MarginMethodLabels[opts.MarginMethod]; ok {
		return label
	}
	return fmt.Sprintf("Method %d", opts.MarginMethod)
}
