package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/gridwerk/gridwerk/pkg/config"
	"github.com/gridwerk/gridwerk/pkg/grid"
)

// ============================================================================
// Presets Command
// ============================================================================

// presetsCommand creates the preset inspection command.
func (c *CLI) presetsCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Inspect named grid presets",
		Long: `List the available grid presets.

Built-in presets cover common sheet setups; entries in
~/.config/gridwerk/presets.toml extend or override them. Any preset
name works with --preset on calc, render and layout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPresetsList(file)
		},
	}

	cmd.PersistentFlags().StringVar(&file, "file", "", "preset file (default ~/.config/gridwerk/presets.toml)")

	cmd.AddCommand(c.presetsShowCommand(&file))

	return cmd
}

// presetsShowCommand creates the "presets show" subcommand.
func (c *CLI) presetsShowCommand(file *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Show one preset in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPresetsShow(*file, args[0])
		},
	}
}

func (c *CLI) runPresetsList(file string) error {
	set, err := config.Load(file)
	if err != nil {
		return err
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	rows := [][]string{}
	for _, name := range set.Names() {
		p := set[name]
		rows = append(rows, []string{
			name,
			fmt.Sprintf("%s %s", strings.ToUpper(p.Format), p.Orientation),
			fmt.Sprintf("%d × %d", p.GridCols, p.GridRows),
			fmt.Sprintf("%g pt", p.Baseline),
			p.Scale,
			p.Description,
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Name", "Page", "Grid", "Baseline", "Scale", "Description").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			if col == 5 {
				return lipgloss.NewStyle().Foreground(colorDim)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	fmt.Println(t.Render())
	printNextStep("Use", "gridwerk calc --preset poster")
	return nil
}

func (c *CLI) runPresetsShow(file, name string) error {
	set, err := config.Load(file)
	if err != nil {
		return err
	}
	p, err := set.Lookup(name)
	if err != nil {
		return err
	}

	printInfo("Preset %s", StyleHighlight.Render(name))
	if p.Description != "" {
		printDetail(p.Description)
	}
	printNewline()

	method := grid.MarginMethodLabels[p.MarginMethod]
	if method == "" {
		method = fmt.Sprintf("Method %d", p.MarginMethod)
	}

	printKeyValue("Page", fmt.Sprintf("%s %s", strings.ToUpper(p.Format), p.Orientation))
	printKeyValue("Method", method)
	printKeyValue("Grid", fmt.Sprintf("%d × %d modules", p.GridCols, p.GridRows))
	printKeyValue("Baseline", fmt.Sprintf("%g pt · multiple %g", p.Baseline, p.BaselineMultiple))
	printKeyValue("Gutter", fmt.Sprintf("multiple %g", p.GutterMultiple))
	printKeyValue("Type scale", p.Scale)
	printNewline()
	printNextStep("Use", "gridwerk calc --preset "+name)
	return nil
}
