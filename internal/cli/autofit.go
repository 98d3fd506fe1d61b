package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gridwerk/gridwerk/pkg/document"
	"github.com/gridwerk/gridwerk/pkg/pipeline"
)

// ============================================================================
// Autofit Command
// ============================================================================

// autofitCommand creates the autofit command for resolving block spans
// against measured text.
func (c *CLI) autofitCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "autofit <document>",
		Short: "Resolve block spans against measured text",
		Long: `Resolve the column span of every reflow-enabled block in a document.

Each block's text is measured with real font metrics and its span grows
or shrinks until the text fits the covered modules. Positions stay where
they are; use "gridwerk layout" to also plan collision-free placements.

Examples:
  # Fit spans in place
  gridwerk autofit poster.json

  # Write the fitted document elsewhere
  gridwerk autofit poster.json -o fitted.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAutofit(args[0], output)
		},
	}

	cmd.Flags().StringVarP(&output, "out", "o", "", "output document path (default: overwrite input)")

	return cmd
}

func (c *CLI) runAutofit(inputPath, output string) error {
	doc, err := document.ImportJSON(inputPath)
	if err != nil {
		return err
	}
	if len(doc.Blocks) == 0 {
		printWarning("Document has no blocks to fit")
		return nil
	}

	opts := pipeline.Options{Blocks: doc.Blocks, Logger: c.Logger}
	applySettings(&opts, doc.Settings)
	if err := opts.ValidateForCalc(); err != nil {
		return err
	}
	g, err := pipeline.Calc(opts)
	if err != nil {
		return err
	}

	c.Logger.Infof("Fitting %d blocks on a %d x %d grid", len(doc.Blocks), g.Cols, g.Rows)

	prog := newProgress(c.Logger)
	blocks, err := pipeline.AutoFitBlocks(g, opts)
	if err != nil {
		return err
	}

	changed := 0
	for i := range blocks {
		if blocks[i].ColSpan != doc.Blocks[i].ColSpan || blocks[i].Position != doc.Blocks[i].Position {
			changed++
		}
	}
	doc.Blocks = blocks
	doc.Touch()

	outputPath := output
	if outputPath == "" {
		outputPath = inputPath
	}
	if err := document.ExportJSON(doc, outputPath); err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Fitted %d blocks, %d changed", len(blocks), changed))

	printSuccess("Spans resolved")
	printFile(outputPath)
	return nil
}
