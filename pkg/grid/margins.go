package grid

import (
	"math"

	"github.com/gridwerk/gridwerk/pkg/errors"
)

// Margin methods. The numbers are part of the public contract; settings
// files and the CLI refer to methods by number.
const (
	MarginProgressive = 1 // 1:2:2:3, contemporary Swiss practice
	MarginVanDeGraaf  = 2 // 2:3:4:6, classical canon proportions
	MarginBaseline    = 3 // uniform single-unit margins
)

// MarginMethodLabels maps method numbers to display names.
var MarginMethodLabels = map[int]string{
	MarginProgressive: "Progressive (1:2:2:3)",
	MarginVanDeGraaf:  "Van de Graaf (2:3:4:6)",
	MarginBaseline:    "Baseline (1:1:1:1)",
}

// Margins holds the four page margins in points.
type Margins struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Bottom float64 `json:"bottom"`
}

// marginRatio expresses a method's margins in baseline units.
type marginRatio struct {
	top, left, right, bottom float64
}

var marginRatios = map[int]marginRatio{
	MarginProgressive: {top: 1, left: 2, right: 2, bottom: 3},
	MarginVanDeGraaf:  {top: 2, left: 3, right: 4, bottom: 6},
	MarginBaseline:    {top: 1, left: 1, right: 1, bottom: 1},
}

// snapToUnit rounds v to the nearest multiple of unit, ties away from zero.
func snapToUnit(v, unit float64) float64 {
	if unit <= 0 {
		return v
	}
	return math.Round(v/unit) * unit
}

// deriveMargins computes the four margins for the given method.
// Top and bottom snap to the baseline grid; left and right do not.
// Custom margins, when present, replace left/right directly and top/bottom
// after the same snap. Custom values must already be validated.
func deriveMargins(method int, unit, multiple float64, custom *Margins) (Margins, error) {
	ratio, ok := marginRatios[method]
	if !ok {
		return Margins{}, errors.New(errors.ErrCodeInvalidMarginMethod, "Unsupported margin method: %d", method)
	}

	m := Margins{
		Top:    snapToUnit(ratio.top*multiple*unit, unit),
		Left:   ratio.left * multiple * unit,
		Right:  ratio.right * multiple * unit,
		Bottom: snapToUnit(ratio.bottom*multiple*unit, unit),
	}

	if custom != nil {
		m.Top = snapToUnit(math.Max(custom.Top, 0), unit)
		m.Bottom = snapToUnit(math.Max(custom.Bottom, 0), unit)
		m.Left = math.Max(custom.Left, 0)
		m.Right = math.Max(custom.Right, 0)
	}

	return m, nil
}

// MaxBaselineCap is the hard upper bound MaxBaseline will return,
// regardless of page size.
const MaxBaselineCap = 72.0

// MaxBaseline returns the largest baseline unit, in whole points, such
// that the top and bottom margin bands derived from the margin method
// still fit within the page height. The result never exceeds
// [MaxBaselineCap].
//
// When customUnits is non-nil its Top and Bottom fields are read as
// baseline-unit counts (not points) and substitute the method's ratio
// units; the baseline multiple then does not apply, since custom counts
// are absolute.
func MaxBaseline(pageHeight float64, method int, baselineMultiple float64, customUnits *Margins) (float64, error) {
	ratio, ok := marginRatios[method]
	if !ok {
		return 0, errors.New(errors.ErrCodeInvalidMarginMethod, "Unsupported margin method: %d", method)
	}

	divisor := (ratio.top + ratio.bottom) * baselineMultiple
	if customUnits != nil {
		divisor = customUnits.Top + customUnits.Bottom
	}
	if divisor <= 0 || math.IsNaN(divisor) || math.IsInf(divisor, 0) {
		return MaxBaselineCap, nil
	}

	b := math.Floor(pageHeight / divisor)
	if b > MaxBaselineCap {
		return MaxBaselineCap, nil
	}
	return b, nil
}
