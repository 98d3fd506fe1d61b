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

// layoutCommand creates the layout command for planning document blocks.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output   string
		sheetOut string
		autoFit  bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "layout [document.json]",
		Short: "Plan a document's blocks onto the module grid",
		Long: `Plan a document's text blocks onto the module grid.

The layout command loads a document, clamps every block to the grid,
optionally fits spans to measured text, and packs reflow-enabled blocks
into free module cells. The resolved spans and positions are written
back into the document file (or --out). Pinned blocks keep their
positions.

Examples:
  gridwerk layout poster.json                     # plan in place
  gridwerk layout poster.json --autofit           # fit spans first
  gridwerk layout poster.json -o planned.json     # keep the original
  gridwerk layout poster.json --sheet poster.svg  # render the overlay`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, sheetOut, autoFit, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "output document file (default: overwrite the input)")
	cmd.Flags().StringVar(&sheetOut, "sheet", "", "also render the planned overlay to this sheet file")
	cmd.Flags().BoolVar(&autoFit, "autofit", false, "fit block spans to their text before planning")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching for the --sheet render")

	return cmd
}

// runLayout plans the document's blocks and writes the updated document.
func (c *CLI) runLayout(ctx context.Context, input, output, sheetOut string, autoFit, noCache bool) error {
	doc, err := document.ImportJSON(input)
	if err != nil {
		return err
	}

	opts := pipeline.Options{Blocks: doc.Blocks, AutoFit: autoFit, Logger: c.Logger}
	applySettings(&opts, doc.Settings)

	if err := opts.ValidateForCalc(); err != nil {
		return err
	}
	g, err := pipeline.Calc(opts)
	if err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, "Planning layout...")
	spinner.Start()

	blocks, err := pipeline.PlanBlocks(g, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	doc.Blocks = blocks
	doc.Touch()

	outputPath := output
	if outputPath == "" {
		outputPath = input
	}
	if err := document.ExportJSON(doc, outputPath); err != nil {
		return err
	}

	printSuccess("Layout planned")
	printFile(outputPath)
	printDetail("%d blocks on %d × %d modules", len(blocks), g.Cols, g.Rows)

	if sheetOut != "" {
		if err := c.renderPlannedSheet(ctx, opts, doc, sheetOut, noCache); err != nil {
			return err
		}
	}

	printNewline()
	printNextStep("Render", "gridwerk render "+outputPath)
	return nil
}

// renderPlannedSheet renders the planned document onto a sheet whose
// format comes from the output file extension.
func (c *CLI) renderPlannedSheet(ctx context.Context, opts pipeline.Options, doc *document.Document, sheetOut string, noCache bool) error {
	format := strings.TrimPrefix(filepath.Ext(sheetOut), ".")
	if err := pipeline.ValidateFormat(format); err != nil {
		return err
	}

	opts.Blocks = doc.Blocks
	opts.AutoFit = false // spans are already resolved
	opts.Formats = []string{format}
	if opts.Title == "" {
		opts.Title = doc.Name
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	if err := os.WriteFile(sheetOut, result.Artifacts[format], 0644); err != nil {
		return fmt.Errorf("write %s: %w", sheetOut, err)
	}
	printFile(sheetOut)
	return nil
}
