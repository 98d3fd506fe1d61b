// Package cli implements the gridwerk command-line interface.
//
// This package provides commands for computing Swiss typographic grid
// systems, rendering them as specification sheets, and laying out
// document text blocks on the module grid. The CLI is built using cobra
// and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - calc: Compute a grid specification from settings or a preset
//   - render: Generate SVG, PDF, PNG, TXT, or JSON specification sheets
//   - layout: Plan a document's text blocks onto the module grid
//   - autofit: Resolve block column spans against measured text
//   - setup: Interactive wizard for composing grid settings
//   - serve: Run the HTTP preview server
//   - presets: Inspect named grid presets
//   - cache: Manage the render cache
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/gridwerk/gridwerk/pkg/buildinfo"
	"github.com/gridwerk/gridwerk/pkg/cache"
	"github.com/gridwerk/gridwerk/pkg/config"
	"github.com/gridwerk/gridwerk/pkg/errors"
	"github.com/gridwerk/gridwerk/pkg/grid"
	"github.com/gridwerk/gridwerk/pkg/pipeline"
	"github.com/gridwerk/gridwerk/pkg/units"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gridwerk"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "gridwerk",
		Short:        "Gridwerk computes Swiss typographic grid systems",
		Long:         `Gridwerk is a CLI tool for constructing typographic grids in the Swiss tradition: modular page divisions locked to a baseline grid, with margins, gutters, and type sizes all derived from a single unit.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.calcCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.autofitCommand())
	root.AddCommand(c.setupCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/gridwerk/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Grid Settings Flags
// =============================================================================

// gridFlags is the shared set of grid-setting flags. Unset flags keep
// their zero value so preset values and pipeline defaults fill in below
// them: explicit flag > preset > default.
type gridFlags struct {
	preset           string
	format           string
	orientation      string
	marginMethod     int
	gridCols         int
	gridRows         int
	baseline         string
	baselineMultiple float64
	gutterMultiple   float64
	typeScale        string
	margins          string
}

// register adds the grid-setting flags to cmd.
func (f *gridFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.preset, "preset", "p", "", "named preset (see 'gridwerk presets')")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "page format: A0-A6 (default A4)")
	cmd.Flags().StringVar(&f.orientation, "orientation", "", "page orientation: portrait (default), landscape")
	cmd.Flags().IntVarP(&f.marginMethod, "margin-method", "m", 0, "margin method: 1 progressive (default), 2 van de Graaf, 3 baseline")
	cmd.Flags().IntVarP(&f.gridCols, "cols", "c", 0, "grid columns (default 6)")
	cmd.Flags().IntVarP(&f.gridRows, "rows", "r", 0, "grid rows (default 8)")
	cmd.Flags().StringVarP(&f.baseline, "baseline", "b", "", "baseline unit, points unless suffixed mm or px (default 12)")
	cmd.Flags().Float64Var(&f.baselineMultiple, "baseline-multiple", 0, "margin multiplier in baseline units (default 1)")
	cmd.Flags().Float64Var(&f.gutterMultiple, "gutter-multiple", 0, "gutter multiplier in baseline units (default 1)")
	cmd.Flags().StringVar(&f.typeScale, "type-scale", "", "type scale: swiss (default), golden, majorThird, perfectFourth, perfectFifth")
	cmd.Flags().StringVar(&f.margins, "margins", "", "custom margins in points: top,left,right,bottom")
}

// options resolves the flags into pipeline options. A preset fills only
// the fields no flag set; pipeline validation fills the rest.
func (f *gridFlags) options() (pipeline.Options, error) {
	opts := pipeline.Options{
		Format:           f.format,
		Orientation:      f.orientation,
		MarginMethod:     f.marginMethod,
		GridCols:         f.gridCols,
		GridRows:         f.gridRows,
		BaselineMultiple: f.baselineMultiple,
		GutterMultiple:   f.gutterMultiple,
		TypeScale:        f.typeScale,
	}

	if f.baseline != "" {
		l, err := units.Parse(f.baseline)
		if err != nil {
			return opts, err
		}
		opts.Baseline = l.ToPt()
	}

	if f.preset != "" {
		set, err := config.Load("")
		if err != nil {
			return opts, err
		}
		p, err := set.Lookup(f.preset)
		if err != nil {
			return opts, err
		}
		applyPreset(&opts, p)
	}

	if f.margins != "" {
		m, err := parseMargins(f.margins)
		if err != nil {
			return opts, err
		}
		opts.CustomMargins = m
	}
	return opts, nil
}

// applyPreset fills every zero-valued setting from the preset.
func applyPreset(opts *pipeline.Options, p config.Preset) {
	if opts.Format == "" {
		opts.Format = p.Format
	}
	if opts.Orientation == "" {
		opts.Orientation = p.Orientation
	}
	if opts.MarginMethod == 0 {
		opts.MarginMethod = p.MarginMethod
	}
	if opts.GridCols == 0 {
		opts.GridCols = p.GridCols
	}
	if opts.GridRows == 0 {
		opts.GridRows = p.GridRows
	}
	if opts.Baseline == 0 {
		opts.Baseline = p.Baseline
	}
	if opts.BaselineMultiple == 0 {
		opts.BaselineMultiple = p.BaselineMultiple
	}
	if opts.GutterMultiple == 0 {
		opts.GutterMultiple = p.GutterMultiple
	}
	if opts.TypeScale == "" {
		opts.TypeScale = p.Scale
	}
}

// applySettings fills every zero-valued setting from stored document
// settings, so flags still override what a document carries.
func applySettings(opts *pipeline.Options, s grid.Settings) {
	applyPreset(opts, config.Preset{
		Format:           s.Format,
		Orientation:      s.Orientation,
		MarginMethod:     s.MarginMethod,
		GridCols:         s.GridCols,
		GridRows:         s.GridRows,
		Baseline:         s.Baseline,
		BaselineMultiple: s.BaselineMultiple,
		GutterMultiple:   s.GutterMultiple,
		Scale:            s.Scale,
	})
	if opts.CustomMargins == nil && s.CustomMargins != nil {
		opts.CustomMargins = s.CustomMargins
	}
}

// parseMargins parses "top,left,right,bottom" point values.
func parseMargins(s string) (*grid.Margins, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, errors.New(errors.ErrCodeInvalidMargins,
			"margins must be four comma-separated values (top,left,right,bottom), got %q", s)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidMargins, "invalid margin value: %q", p)
		}
		vals[i] = v
	}
	return &grid.Margins{Top: vals[0], Left: vals[1], Right: vals[2], Bottom: vals[3]}, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	return strings.Split(s, ",")
}
