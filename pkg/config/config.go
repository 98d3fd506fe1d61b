// Package config loads named grid presets from TOML.
//
// Built-in presets cover the common sheet setups; a user file at
// ~/.config/gridwerk/presets.toml extends or overrides them. Preset
// values are validated by the grid calculator when used, not at load
// time, so a user file with an experimental setup still loads.
package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gridwerk/gridwerk/pkg/errors"
	"github.com/gridwerk/gridwerk/pkg/grid"
)

// Preset is a named grid configuration.
type Preset struct {
	Description      string  `toml:"description,omitempty" json:"description,omitempty"`
	Format           string  `toml:"format" json:"format"`
	Orientation      string  `toml:"orientation" json:"orientation"`
	MarginMethod     int     `toml:"margin_method" json:"marginMethod"`
	GridCols         int     `toml:"grid_cols" json:"gridCols"`
	GridRows         int     `toml:"grid_rows" json:"gridRows"`
	Baseline         float64 `toml:"baseline" json:"baseline"`
	BaselineMultiple float64 `toml:"baseline_multiple" json:"baselineMultiple"`
	GutterMultiple   float64 `toml:"gutter_multiple" json:"gutterMultiple"`
	Scale            string  `toml:"scale,omitempty" json:"scale,omitempty"`
}

// Settings converts the preset to calculator settings.
func (p Preset) Settings() grid.Settings {
	return grid.Settings{
		Format:           p.Format,
		Orientation:      p.Orientation,
		MarginMethod:     p.MarginMethod,
		GridCols:         p.GridCols,
		GridRows:         p.GridRows,
		Baseline:         p.Baseline,
		BaselineMultiple: p.BaselineMultiple,
		GutterMultiple:   p.GutterMultiple,
		Scale:            p.Scale,
	}
}

// Set maps preset names to presets.
type Set map[string]Preset

// presetFile is the TOML file shape:
//
//	[preset.poster]
//	format = "a2"
//	...
type presetFile struct {
	Presets map[string]Preset `toml:"preset"`
}

// builtins are the presets shipped with the tool.
var builtins = Set{
	"poster": {
		Description:      "A2 exhibition poster, progressive margins",
		Format:           "a2",
		Orientation:      "portrait",
		MarginMethod:     1,
		GridCols:         6,
		GridRows:         8,
		Baseline:         12,
		BaselineMultiple: 1,
		GutterMultiple:   1,
		Scale:            "swiss",
	},
	"book": {
		Description:      "A5 book page on the Van de Graaf canon",
		Format:           "a5",
		Orientation:      "portrait",
		MarginMethod:     2,
		GridCols:         2,
		GridRows:         6,
		Baseline:         12,
		BaselineMultiple: 1,
		GutterMultiple:   1,
		Scale:            "swiss",
	},
	"magazine": {
		Description:      "A4 magazine spread with a tight baseline",
		Format:           "a4",
		Orientation:      "portrait",
		MarginMethod:     1,
		GridCols:         6,
		GridRows:         10,
		Baseline:         10,
		BaselineMultiple: 1,
		GutterMultiple:   1,
		Scale:            "majorThird",
	},
	"manual": {
		Description:      "A4 landscape manual with uniform margins",
		Format:           "a4",
		Orientation:      "landscape",
		MarginMethod:     3,
		GridCols:         8,
		GridRows:         6,
		Baseline:         12,
		BaselineMultiple: 1,
		GutterMultiple:   1,
		Scale:            "swiss",
	},
}

// Defaults returns a copy of the built-in presets.
func Defaults() Set {
	out := make(Set, len(builtins))
	for name, p := range builtins {
		out[name] = p
	}
	return out
}

// UserPresetPath returns the default location of the user preset file.
func UserPresetPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "gridwerk", "presets.toml"), nil
}

// Load returns the built-in presets merged with the user file at path.
// User entries override built-ins of the same name. An empty path loads
// the default user file; a missing file is not an error.
func Load(path string) (Set, error) {
	set := Defaults()

	if path == "" {
		p, err := UserPresetPath()
		if err != nil {
			return set, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return set, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "read preset file %s", path)
	}

	var file presetFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse preset file %s", path)
	}
	for name, p := range file.Presets {
		set[name] = p
	}
	return set, nil
}

// Lookup returns the named preset. The error lists the available names
// so a typo on the command line is self-correcting.
func (s Set) Lookup(name string) (Preset, error) {
	if p, ok := s[name]; ok {
		return p, nil
	}
	return Preset{}, errors.New(errors.ErrCodePresetNotFound,
		"unknown preset %q (available: %s)", name, strings.Join(s.Names(), ", "))
}

// Names returns the preset names in sorted order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Save writes a preset into the user file at path, creating the file and
// its directory as needed. Existing user presets are preserved; built-ins
// are never written.
func Save(path, name string, p Preset) error {
	if name == "" {
		return errors.New(errors.ErrCodeInvalidPreset, "preset name cannot be empty")
	}
	if path == "" {
		userPath, err := UserPresetPath()
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPreset, err, "resolve preset file path")
		}
		path = userPath
	}

	var file presetFile
	if data, err := os.ReadFile(path); err == nil {
		if err := toml.Unmarshal(data, &file); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidPreset, err, "parse preset file %s", path)
		}
	} else if !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInvalidPreset, err, "read preset file %s", path)
	}
	if file.Presets == nil {
		file.Presets = map[string]Preset{}
	}
	file.Presets[name] = p

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPreset, err, "create preset dir")
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPreset, err, "write preset file %s", path)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(file); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPreset, err, "encode preset file %s", path)
	}
	return nil
}
