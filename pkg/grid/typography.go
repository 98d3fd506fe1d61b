package grid

import (
	"math"
	"slices"

	"github.com/gridwerk/gridwerk/pkg/errors"
)

// StyleKeys is the ordered set of typographic roles every grid derives.
var StyleKeys = []string{"caption", "body", "subhead", "headline", "display"}

// Style is one derived typographic style. Leading is always an exact
// multiple of the grid unit; BaselineMultiplier records that multiple.
type Style struct {
	Size               float64 `json:"size"`
	Leading            float64 `json:"leading"`
	BaselineMultiplier float64 `json:"baselineMultiplier"`
	Weight             string  `json:"weight"`
}

// Typographic scale identifiers.
const (
	ScaleSwiss         = "swiss"         // 1.2 ladder, the default
	ScaleGolden        = "golden"        // 1.618 ladder
	ScaleMajorThird    = "majorThird"    // 1.25 ladder
	ScalePerfectFourth = "perfectFourth" // 1.333 ladder
	ScalePerfectFifth  = "perfectFifth"  // 1.5 ladder
)

// referenceBodySize is the body size on an A4 page, Müller-Brockmann's
// 10-on-12 setting. All other sizes step from here by the scale ratio.
const referenceBodySize = 10.0

// scaleDef fixes a scale's size ratio and its baseline multipliers per
// style key (same order as StyleKeys). Multipliers are whole numbers so
// leading lands on the baseline grid by construction.
type scaleDef struct {
	ratio       float64
	multipliers [5]float64
}

var scaleDefs = map[string]scaleDef{
	ScaleSwiss:         {ratio: 1.2, multipliers: [5]float64{1, 1, 2, 2, 3}},
	ScaleGolden:        {ratio: 1.618, multipliers: [5]float64{1, 1, 2, 3, 4}},
	ScaleMajorThird:    {ratio: 1.25, multipliers: [5]float64{1, 1, 2, 2, 2}},
	ScalePerfectFourth: {ratio: 1.333, multipliers: [5]float64{1, 1, 2, 2, 3}},
	ScalePerfectFifth:  {ratio: 1.5, multipliers: [5]float64{1, 1, 2, 2, 3}},
}

// Scales returns the supported scale identifiers, sorted.
func Scales() []string {
	names := make([]string, 0, len(scaleDefs))
	for name := range scaleDefs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// sizeSteps maps each style key to its ladder step relative to body:
// caption sits one step below, display three steps above.
var sizeSteps = map[string]int{
	"caption":  -1,
	"body":     0,
	"subhead":  1,
	"headline": 2,
	"display":  3,
}

func styleWeight(key string) string {
	switch key {
	case "caption", "body":
		return "Regular"
	default:
		return "Bold"
	}
}

// deriveStyles builds the style map for a scale. Sizes step the reference
// body size by the scale ratio and then scale with the format factor;
// leading multiplies the grid unit by the scale's fixed whole-number
// multiplier, which keeps every leading an exact multiple of gridUnit.
func deriveStyles(scale string, gridUnit, factor float64) (map[string]Style, error) {
	if scale == "" {
		scale = ScaleSwiss
	}
	def, ok := scaleDefs[scale]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidScale, "Unsupported typography scale: %q", scale)
	}

	styles := make(map[string]Style, len(StyleKeys))
	for i, key := range StyleKeys {
		size := referenceBodySize * math.Pow(def.ratio, float64(sizeSteps[key])) * factor
		mult := def.multipliers[i]
		styles[key] = Style{
			Size:               round3(size),
			Leading:            gridUnit * mult,
			BaselineMultiplier: mult,
			Weight:             styleWeight(key),
		}
	}
	return styles, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
