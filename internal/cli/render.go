package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridwerk/gridwerk/pkg/document"
	"github.com/gridwerk/gridwerk/pkg/pipeline"
)

// renderCommand creates the render command for generating specification
// sheets.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags          gridFlags
		formatsStr     string
		output         string
		noCache        bool
		refresh        bool
		title          string
		showBaselines  bool
		showTypeLadder bool
		pngScale       float64
		autoFit        bool
	)

	cmd := &cobra.Command{
		Use:   "render [document.json]",
		Short: "Render grid specification sheets",
		Long: `Render grid specification sheets to SVG, PNG, PDF, TXT, or JSON.

Without an argument the sheet shows the bare grid anatomy. With a
document file the document's blocks are planned onto the grid and drawn
as a text overlay; document settings apply beneath any explicit flags.

PNG and PDF output require rsvg-convert (librsvg) on the PATH.

Examples:
  gridwerk render                            # A4 sheet to grid.svg
  gridwerk render --formats svg,pdf,txt      # three artifacts
  gridwerk render --preset poster -o poster  # poster.svg
  gridwerk render poster.json --autofit      # document overlay
  gridwerk render --baselines --type-ladder  # anatomy layers`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options()
			if err != nil {
				return err
			}
			opts.Formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			opts.Title = title
			opts.ShowBaselines = showBaselines
			opts.ShowTypeLadder = showTypeLadder
			opts.Refresh = refresh
			opts.PNGScale = pngScale
			opts.AutoFit = autoFit

			var input string
			if len(args) == 1 {
				input = args[0]
				doc, err := document.ImportJSON(input)
				if err != nil {
					return err
				}
				opts.Blocks = doc.Blocks
				applySettings(&opts, doc.Settings)
				if opts.Title == "" {
					opts.Title = doc.Name
				}
			}
			return c.runRender(cmd.Context(), opts, input, output, noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&formatsStr, "formats", "", "output format(s): svg (default), png, pdf, txt, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output basename (format extensions are appended)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().StringVar(&title, "title", "", "sheet title")
	cmd.Flags().BoolVar(&showBaselines, "baselines", false, "draw the baseline grid layer")
	cmd.Flags().BoolVar(&showTypeLadder, "type-ladder", false, "draw the type specimen ladder")
	cmd.Flags().Float64Var(&pngScale, "png-scale", 0, "PNG raster scale (default 2)")
	cmd.Flags().BoolVar(&autoFit, "autofit", false, "fit block spans to their text before planning")

	return cmd
}

// runRender executes the pipeline and writes one artifact per format.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, input, output string, noCache bool) error {
	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()
	opts.Logger = c.Logger

	spinner := newSpinnerWithContext(ctx, "Rendering grid sheets...")
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	base := outputBase(output, input, opts.Formats)
	printSuccess("Sheets rendered")
	for _, format := range opts.Formats {
		path := base + "." + format
		if err := os.WriteFile(path, result.Artifacts[format], 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}

	printStats(result.Grid.Cols*result.Grid.Rows, result.Stats.LineCount, result.CacheInfo.RenderHit)
	return nil
}

// outputBase derives the artifact basename from the --out flag or the
// input document path. A source document is never overwritten: when an
// artifact path would collide with it, the base shifts to <input>_sheet.
func outputBase(output, input string, formats []string) string {
	if output != "" {
		ext := strings.TrimPrefix(filepath.Ext(output), ".")
		if pipeline.ValidFormats[ext] {
			return strings.TrimSuffix(output, "."+ext)
		}
		return output
	}
	if input != "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		for _, format := range formats {
			if base+"."+format == input {
				return base + "_sheet"
			}
		}
		return base
	}
	return "grid"
}
