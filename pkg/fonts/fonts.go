// Package fonts resolves the typefaces used for text measurement and
// artifact rendering.
//
// Swiss-style sheets set everything in a grotesque sans serif. The
// package looks for Helvetica on the host system and falls back through
// the common metric-compatible substitutes, so measurement still works
// on machines that ship Arial, Liberation Sans, or DejaVu Sans instead.
package fonts

import (
	"fmt"
	"os"
	"sync"

	"github.com/flopp/go-findfont"

	"github.com/gridwerk/gridwerk/pkg/errors"
)

// FontFamily is the preferred family name for sheet text.
const FontFamily = "Helvetica"

// FallbackFontFamily is the CSS font stack written into SVG artifacts,
// for viewers on systems without Helvetica installed.
const FallbackFontFamily = `Helvetica, 'Helvetica Neue', Arial, 'Liberation Sans', sans-serif`

// Candidate font file names per style, in preference order. findfont
// matches names case-insensitively against the system font directories.
var styleCandidates = map[string][]string{
	"regular": {
		"Helvetica.ttf", "HelveticaNeue.ttf", "Arial.ttf",
		"LiberationSans-Regular.ttf", "DejaVuSans.ttf",
	},
	"bold": {
		"Helvetica-Bold.ttf", "HelveticaNeue-Bold.ttf", "Arialbd.ttf",
		"LiberationSans-Bold.ttf", "DejaVuSans-Bold.ttf",
	},
	"italic": {
		"Helvetica-Oblique.ttf", "HelveticaNeue-Italic.ttf", "Ariali.ttf",
		"LiberationSans-Italic.ttf", "DejaVuSans-Oblique.ttf",
	},
	"bolditalic": {
		"Helvetica-BoldOblique.ttf", "HelveticaNeue-BoldItalic.ttf", "Arialbi.ttf",
		"LiberationSans-BoldItalic.ttf", "DejaVuSans-BoldOblique.ttf",
	},
}

// Cache for resolved font files (read once per style).
var (
	mu       sync.Mutex
	resolved = map[string][]byte{}
)

// styleKey normalizes a weight/italic pair to a candidate table key.
func styleKey(bold, italic bool) string {
	switch {
	case bold && italic:
		return "bolditalic"
	case bold:
		return "bold"
	case italic:
		return "italic"
	default:
		return "regular"
	}
}

// Resolve returns the font file bytes for the requested style, searching
// the system font directories. Results are cached after first resolution.
func Resolve(bold, italic bool) ([]byte, error) {
	key := styleKey(bold, italic)

	mu.Lock()
	defer mu.Unlock()
	if data, ok := resolved[key]; ok {
		return data, nil
	}

	for _, name := range styleCandidates[key] {
		path, err := findfont.Find(name)
		if err != nil {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil || len(data) == 0 {
			continue
		}
		resolved[key] = data
		return data, nil
	}
	return nil, errors.New(errors.ErrCodeFontNotFound,
		"no %s font found on this system (tried %v)", key, styleCandidates[key])
}

// ResolvePath returns the path of the best font file for the requested
// style without reading it. Useful for diagnostics.
func ResolvePath(bold, italic bool) (string, error) {
	key := styleKey(bold, italic)
	for _, name := range styleCandidates[key] {
		if path, err := findfont.Find(name); err == nil {
			return path, nil
		}
	}
	return "", errors.New(errors.ErrCodeFontNotFound, "no %s font found on this system", key)
}

// Describe reports which file each style resolves to, for the fonts
// diagnostic command.
func Describe() string {
	var out string
	for _, key := range []string{"regular", "bold", "italic", "bolditalic"} {
		bold := key == "bold" || key == "bolditalic"
		italic := key == "italic" || key == "bolditalic"
		path, err := ResolvePath(bold, italic)
		if err != nil {
			path = "(not found)"
		}
		out += fmt.Sprintf("%-11s %s\n", key, path)
	}
	return out
}
