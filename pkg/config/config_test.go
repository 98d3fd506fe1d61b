package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gridwerk/gridwerk/pkg/grid"
)

func TestDefaults_AllComputable(t *testing.T) {
	set := Defaults()
	for _, name := range []string{"poster", "book", "magazine", "manual"} {
		p, ok := set[name]
		if !ok {
			t.Errorf("built-in preset %q missing", name)
			continue
		}
		if _, err := grid.Generate(p.Settings()); err != nil {
			t.Errorf("preset %q does not compute: %v", name, err)
		}
	}
}

func TestLoad_MissingFileReturnsBuiltins(t *testing.T) {
	set, err := Load(filepath.Join(t.TempDir(), "none.toml"))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(set) != len(Defaults()) {
		t.Errorf("Load(missing) returned %d presets, want %d", len(set), len(Defaults()))
	}
}

func TestLoad_UserFileMergesAndOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	userFile := `
[preset.poster]
description = "oversize poster"
format = "a1"
orientation = "portrait"
margin_method = 1
grid_cols = 4
grid_rows = 6
baseline = 14
baseline_multiple = 1
gutter_multiple = 1

[preset.flyer]
format = "a6"
orientation = "portrait"
margin_method = 3
grid_cols = 3
grid_rows = 4
baseline = 9
baseline_multiple = 1
gutter_multiple = 1
`
	if err := os.WriteFile(path, []byte(userFile), 0600); err != nil {
		t.Fatal(err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	poster, err := set.Lookup("poster")
	if err != nil {
		t.Fatalf("Lookup(poster) error: %v", err)
	}
	if poster.Format != "a1" || poster.GridCols != 4 {
		t.Errorf("user override not applied: %+v", poster)
	}

	flyer, err := set.Lookup("flyer")
	if err != nil {
		t.Fatalf("Lookup(flyer) error: %v", err)
	}
	if flyer.Format != "a6" || flyer.Baseline != 9 {
		t.Errorf("user preset = %+v, want a6 at 9pt", flyer)
	}

	// Untouched built-ins survive the merge
	if _, err := set.Lookup("book"); err != nil {
		t.Errorf("Lookup(book) error: %v", err)
	}
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	if err := os.WriteFile(path, []byte("[preset.broken\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load(malformed) error = nil, want error")
	}
}

func TestLookup_UnknownListsNames(t *testing.T) {
	set := Defaults()
	_, err := set.Lookup("brochure")
	if err == nil {
		t.Fatal("Lookup(unknown) error = nil, want error")
	}
	if !strings.Contains(err.Error(), "poster") {
		t.Errorf("error %q does not list available presets", err)
	}
}

func TestNames_Sorted(t *testing.T) {
	names := Defaults().Names()
	want := []string{"book", "magazine", "manual", "poster"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets.toml")
	custom := Preset{
		Description:      "test card",
		Format:           "a6",
		Orientation:      "landscape",
		MarginMethod:     3,
		GridCols:         2,
		GridRows:         2,
		Baseline:         8,
		BaselineMultiple: 1,
		GutterMultiple:   1,
	}

	if err := Save(path, "card", custom); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	set, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	got, err := set.Lookup("card")
	if err != nil {
		t.Fatalf("Lookup(card) error: %v", err)
	}
	if got != custom {
		t.Errorf("round-trip preset = %+v, want %+v", got, custom)
	}

	// A second Save must preserve the first preset
	if err := Save(path, "second", custom); err != nil {
		t.Fatalf("Save(second) error: %v", err)
	}
	set, err = Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if _, err := set.Lookup("card"); err != nil {
		t.Errorf("earlier preset lost after second Save: %v", err)
	}
}

func TestSave_RejectsEmptyName(t *testing.T) {
	if err := Save(filepath.Join(t.TempDir(), "p.toml"), "", Preset{}); err == nil {
		t.Error("Save(empty name) error = nil, want error")
	}
}
