package pipeline

import (
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/gridwerk/gridwerk/pkg/render/sheet"
)

// Render generates output artifacts in the requested formats. Formats
// render concurrently; PNG and PDF each shell out to librsvg, so the
// fan-out overlaps subprocess time instead of serializing it. The first
// failure wins and no partial artifact map is returned.
func Render(s sheet.Sheet, overlay *sheet.Overlay, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	svgOpts := buildSVGOptions(overlay, opts)

	var mu sync.Mutex
	artifacts := make(map[string][]byte, len(opts.Formats))

	var eg errgroup.Group
	for _, format := range opts.Formats {
		format := format
		eg.Go(func() error {
			data, err := renderFormat(s, format, svgOpts, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return artifacts, nil
}

// renderFormat produces one artifact.
func renderFormat(s sheet.Sheet, format string, svgOpts []sheet.SVGOption, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sheet.RenderSVG(s, svgOpts...), nil
	case FormatPNG:
		return sheet.RenderPNG(s, sheet.WithPNGSVGOptions(svgOpts...), sheet.WithScale(opts.PNGScale))
	case FormatPDF:
		return sheet.RenderPDF(s, sheet.WithPDFSVGOptions(svgOpts...))
	case FormatJSON:
		return sheet.RenderJSON(s)
	case FormatTXT:
		return sheet.RenderTXT(s), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// buildSVGOptions builds SVG rendering options from pipeline options.
func buildSVGOptions(overlay *sheet.Overlay, opts Options) []sheet.SVGOption {
	var svgOpts []sheet.SVGOption

	if opts.ShowBaselines {
		svgOpts = append(svgOpts, sheet.WithBaselines())
	}
	if opts.ShowTypeLadder {
		svgOpts = append(svgOpts, sheet.WithTypeLadder())
	}
	if opts.Title != "" {
		svgOpts = append(svgOpts, sheet.WithTitle(opts.Title))
	}
	if overlay != nil {
		svgOpts = append(svgOpts, sheet.WithOverlay(overlay))
	}

	return svgOpts
}
