package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gridwerk/gridwerk/pkg/config"
	"github.com/gridwerk/gridwerk/pkg/errors"
	"github.com/gridwerk/gridwerk/pkg/grid"
	"github.com/gridwerk/gridwerk/pkg/pipeline"
)

func TestCacheDir(t *testing.T) {
	// Clear XDG_CACHE_HOME to test default behavior
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Unsetenv("XDG_CACHE_HOME")
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", appName)
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	customCache := "/tmp/custom-cache"
	oldXdg := os.Getenv("XDG_CACHE_HOME")
	os.Setenv("XDG_CACHE_HOME", customCache)
	defer func() {
		if oldXdg != "" {
			os.Setenv("XDG_CACHE_HOME", oldXdg)
		} else {
			os.Unsetenv("XDG_CACHE_HOME")
		}
	}()

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join(customCache, appName)
	if dir != expected {
		t.Errorf("cacheDir() with XDG_CACHE_HOME = %q, want %q", dir, expected)
	}
}

func TestParseMargins(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    *grid.Margins
		wantErr bool
	}{
		{"plain quad", "20,30,30,50", &grid.Margins{Top: 20, Left: 30, Right: 30, Bottom: 50}, false},
		{"whitespace tolerated", " 20 , 30 , 30 , 50 ", &grid.Margins{Top: 20, Left: 30, Right: 30, Bottom: 50}, false},
		{"fractional points", "12.5,24,24,37.5", &grid.Margins{Top: 12.5, Left: 24, Right: 24, Bottom: 37.5}, false},
		{"too few values", "20,30,30", nil, true},
		{"too many values", "20,30,30,50,60", nil, true},
		{"not a number", "20,thirty,30,50", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseMargins(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseMargins(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if code := errors.GetCode(err); code != errors.ErrCodeInvalidMargins {
					t.Errorf("parseMargins(%q) code = %v, want %v", tt.input, code, errors.ErrCodeInvalidMargins)
				}
				return
			}
			if *got != *tt.want {
				t.Errorf("parseMargins(%q) = %+v, want %+v", tt.input, *got, *tt.want)
			}
		})
	}
}

func TestApplyPresetFillsOnlyZeroFields(t *testing.T) {
	opts := pipeline.Options{Format: "A2", GridCols: 4}

	applyPreset(&opts, config.Preset{
		Format:       "a5",
		Orientation:  "landscape",
		MarginMethod: 2,
		GridCols:     6,
		GridRows:     10,
		Baseline:     14,
		Scale:        "golden",
	})

	if opts.Format != "A2" {
		t.Errorf("Format = %q, explicit flag should win over preset", opts.Format)
	}
	if opts.GridCols != 4 {
		t.Errorf("GridCols = %d, explicit flag should win over preset", opts.GridCols)
	}
	if opts.Orientation != "landscape" {
		t.Errorf("Orientation = %q, want preset value %q", opts.Orientation, "landscape")
	}
	if opts.MarginMethod != 2 {
		t.Errorf("MarginMethod = %d, want preset value 2", opts.MarginMethod)
	}
	if opts.GridRows != 10 {
		t.Errorf("GridRows = %d, want preset value 10", opts.GridRows)
	}
	if opts.Baseline != 14 {
		t.Errorf("Baseline = %g, want preset value 14", opts.Baseline)
	}
	if opts.TypeScale != "golden" {
		t.Errorf("TypeScale = %q, want preset value %q", opts.TypeScale, "golden")
	}
}

func TestApplySettingsCarriesCustomMargins(t *testing.T) {
	custom := &grid.Margins{Top: 24, Left: 36, Right: 36, Bottom: 48}
	opts := pipeline.Options{}

	applySettings(&opts, grid.Settings{
		Format:        "A3",
		Orientation:   grid.Portrait,
		CustomMargins: custom,
	})

	if opts.Format != "A3" {
		t.Errorf("Format = %q, want %q", opts.Format, "A3")
	}
	if opts.CustomMargins != custom {
		t.Error("CustomMargins should carry over from document settings")
	}

	// A margins flag already parsed into opts must not be replaced.
	flagMargins := &grid.Margins{Top: 10, Left: 10, Right: 10, Bottom: 10}
	opts2 := pipeline.Options{CustomMargins: flagMargins}
	applySettings(&opts2, grid.Settings{CustomMargins: custom})
	if opts2.CustomMargins != flagMargins {
		t.Error("explicit margins flag should win over document margins")
	}
}

func TestGridFlagsOptionsBaselineUnits(t *testing.T) {
	tests := []struct {
		name     string
		baseline string
		want     float64
		wantErr  bool
	}{
		{"bare number is points", "12", 12, false},
		{"explicit points", "14pt", 14, false},
		{"millimeters", "4mm", 4 * 72 / 25.4, false},
		{"unset leaves the default to validation", "", 0, false},
		{"garbage", "lots", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := gridFlags{baseline: tt.baseline}
			opts, err := f.options()
			if tt.wantErr {
				if err == nil {
					t.Fatal("options() should fail")
				}
				if code := errors.GetCode(err); code != errors.ErrCodeInvalidUnit {
					t.Errorf("options() code = %v, want %v", code, errors.ErrCodeInvalidUnit)
				}
				return
			}
			if err != nil {
				t.Fatalf("options() error: %v", err)
			}
			if opts.Baseline != tt.want {
				t.Errorf("Baseline = %v, want %v", opts.Baseline, tt.want)
			}
		})
	}
}

func TestGridFlagsOptionsUnknownPreset(t *testing.T) {
	f := gridFlags{preset: "no-such-preset"}
	_, err := f.options()
	if err == nil {
		t.Fatal("options() with unknown preset should fail")
	}
	if code := errors.GetCode(err); code != errors.ErrCodePresetNotFound {
		t.Errorf("options() code = %v, want %v", code, errors.ErrCodePresetNotFound)
	}
	if !strings.Contains(err.Error(), "poster") {
		t.Errorf("options() error should list available presets, got %q", err.Error())
	}
}

func TestListenURL(t *testing.T) {
	tests := []struct {
		addr string
		want string
	}{
		{":8750", "http://localhost:8750"},
		{"0.0.0.0:9000", "http://0.0.0.0:9000"},
		{"grid.example.com:80", "http://grid.example.com:80"},
	}

	for _, tt := range tests {
		if got := listenURL(tt.addr); got != tt.want {
			t.Errorf("listenURL(%q) = %q, want %q", tt.addr, got, tt.want)
		}
	}
}

func TestCacheLayerPrefix(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"grids", "grid:"},
		{"sheets", "sheet:"},
		{"artifacts", "artifact:"},
		{"plans", "plan:"},
		{"unknown", ""},
	}

	for _, tt := range tests {
		if got := cacheLayerPrefix(tt.name); got != tt.want {
			t.Errorf("cacheLayerPrefix(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{3 << 20, "3.0 MB"},
	}

	for _, tt := range tests {
		if got := formatSize(tt.n); got != tt.want {
			t.Errorf("formatSize(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
