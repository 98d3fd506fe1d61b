package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gridwerk/gridwerk/pkg/cache"
)

// cacheLayers maps user-facing layer names to the key namespaces the
// pipeline writes. Order matters for stats output.
var cacheLayers = []struct {
	Name   string
	Label  string
	Prefix string
}{
	{"grids", "Grids", "grid:"},
	{"sheets", "Sheets", "sheet:"},
	{"artifacts", "Artifacts", "artifact:"},
	{"plans", "Plans", "plan:"},
}

func cacheLayerNames() []string {
	names := make([]string, len(cacheLayers))
	for i, l := range cacheLayers {
		names[i] = l.Name
	}
	return names
}

func cacheLayerPrefix(name string) string {
	for _, l := range cacheLayers {
		if l.Name == name {
			return l.Prefix
		}
	}
	return ""
}

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheStatsCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "clear [layer]",
		Short:     "Drop cached entries, all layers or a single one",
		ValidArgs: cacheLayerNames(),
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix := ""
			if len(args) == 1 {
				prefix = cacheLayerPrefix(args[0])
			}

			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			count, err := fc.Purge(prefix)
			if err != nil {
				return err
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cacheStatsCommand creates the "cache stats" subcommand.
func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show entry counts per cache layer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}

			if _, err := os.Stat(dir); os.IsNotExist(err) {
				printInfo("Cache is empty")
				return nil
			}

			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}

			counts := make(map[string]int)
			expired := 0
			var total int64
			err = fc.Scan(func(e cache.EntryInfo) {
				total += e.Size
				if e.Expired {
					expired++
				}
				for _, l := range cacheLayers {
					if strings.HasPrefix(e.Key, l.Prefix) {
						counts[l.Name]++
						return
					}
				}
			})
			if err != nil {
				return err
			}

			printInfo("Cache %s", dir)
			printNewline()
			for _, l := range cacheLayers {
				printKeyValue(l.Label, fmt.Sprintf("%d", counts[l.Name]))
			}
			printKeyValue("Expired", fmt.Sprintf("%d", expired))
			printKeyValue("Size", formatSize(total))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// formatSize renders a byte count for display.
func formatSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
