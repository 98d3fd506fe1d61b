package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gridwerk/gridwerk/pkg/config"
	"github.com/gridwerk/gridwerk/pkg/pipeline"
)

// ============================================================================
// Setup Command
// ============================================================================

// setupCommand creates the interactive setup wizard command.
func (c *CLI) setupCommand() *cobra.Command {
	var savePreset string

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Walk through grid settings interactively",
		Long: `Walk through the grid settings one page at a time.

The wizard steps through format, orientation, margin method, columns,
rows, baseline unit and type scale. Baseline choices are limited to
units the chosen margin method still fits on the page. Confirming the
last page computes the grid and prints the spec sheet.

Examples:
  # Pick settings interactively
  gridwerk setup

  # Keep the result as a reusable preset
  gridwerk setup --save exhibition`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSetup(savePreset)
		},
	}

	cmd.Flags().StringVar(&savePreset, "save", "", "save the chosen settings as a named preset")

	return cmd
}

func (c *CLI) runSetup(savePreset string) error {
	p := tea.NewProgram(NewSetupModel())
	finalModel, err := p.Run()
	if err != nil {
		return err
	}

	fm, ok := finalModel.(SetupModel)
	if !ok || !fm.Done {
		printDetail("Setup cancelled")
		return nil
	}

	opts := pipeline.Options{Logger: c.Logger}
	applySettings(&opts, fm.Settings)
	if err := opts.ValidateForCalc(); err != nil {
		return err
	}
	g, err := pipeline.Calc(opts)
	if err != nil {
		return err
	}

	printNewline()
	printSpecSheet(opts, g)

	if savePreset != "" {
		preset := config.Preset{
			Format:           fm.Settings.Format,
			Orientation:      fm.Settings.Orientation,
			MarginMethod:     fm.Settings.MarginMethod,
			GridCols:         fm.Settings.GridCols,
			GridRows:         fm.Settings.GridRows,
			Baseline:         fm.Settings.Baseline,
			BaselineMultiple: fm.Settings.BaselineMultiple,
			GutterMultiple:   fm.Settings.GutterMultiple,
			Scale:            fm.Settings.Scale,
		}
		if err := config.Save("", savePreset, preset); err != nil {
			return err
		}
		path, err := config.UserPresetPath()
		if err != nil {
			return err
		}
		printNewline()
		printSuccess("Saved preset %q", savePreset)
		printFile(path)
	}

	return nil
}
