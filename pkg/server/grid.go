package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gridwerk/gridwerk/pkg/errors"
	"github.com/gridwerk/gridwerk/pkg/grid"
	"github.com/gridwerk/gridwerk/pkg/pipeline"
)

// contentTypes maps output formats to their MIME types.
var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatTXT:  "text/plain; charset=utf-8",
}

// handleGrid renders one sheet in the format named by the URL. Settings
// come from query parameters named like the pipeline options.
func (s *Server) handleGrid(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "unsupported sheet format: %q", format))
		return
	}

	opts, err := parseGridOptions(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// parseGridOptions reads pipeline options from query parameters. Absent
// parameters keep their zero value so the pipeline defaults apply.
func parseGridOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:      q.Get("format"),
		Orientation: q.Get("orientation"),
		TypeScale:   q.Get("type_scale"),
		Title:       q.Get("title"),
	}

	var err error
	if opts.MarginMethod, err = intParam(q.Get("margin_method"), "margin_method"); err != nil {
		return opts, err
	}
	if opts.GridCols, err = intParam(q.Get("grid_cols"), "grid_cols"); err != nil {
		return opts, err
	}
	if opts.GridRows, err = intParam(q.Get("grid_rows"), "grid_rows"); err != nil {
		return opts, err
	}
	if opts.Baseline, err = floatParam(q.Get("baseline"), "baseline"); err != nil {
		return opts, err
	}
	if opts.BaselineMultiple, err = floatParam(q.Get("baseline_multiple"), "baseline_multiple"); err != nil {
		return opts, err
	}
	if opts.GutterMultiple, err = floatParam(q.Get("gutter_multiple"), "gutter_multiple"); err != nil {
		return opts, err
	}
	if opts.PNGScale, err = floatParam(q.Get("png_scale"), "png_scale"); err != nil {
		return opts, err
	}
	if opts.ShowBaselines, err = boolParam(q.Get("show_baselines"), "show_baselines"); err != nil {
		return opts, err
	}
	if opts.ShowTypeLadder, err = boolParam(q.Get("show_type_ladder"), "show_type_ladder"); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh"), "refresh"); err != nil {
		return opts, err
	}
	if opts.CustomMargins, err = marginsParam(q.Get("margins")); err != nil {
		return opts, err
	}
	return opts, nil
}

func intParam(value, name string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, value)
	}
	return n, nil
}

func floatParam(value, name string) (float64, error) {
	if value == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, value)
	}
	return f, nil
}

func boolParam(value, name string) (bool, error) {
	if value == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, errors.New(errors.ErrCodeInvalidInput, "invalid %s: %q", name, value)
	}
	return b, nil
}

// marginsParam parses "top,left,right,bottom" into custom margins.
func marginsParam(value string) (*grid.Margins, error) {
	if value == "" {
		return nil, nil
	}
	parts := strings.Split(value, ",")
	if len(parts) != 4 {
		return nil, errors.New(errors.ErrCodeInvalidMargins,
			"margins must be four comma-separated values (top,left,right,bottom), got %q", value)
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidMargins, "invalid margin value: %q", p)
		}
		vals[i] = f
	}
	return &grid.Margins{Top: vals[0], Left: vals[1], Right: vals[2], Bottom: vals[3]}, nil
}
