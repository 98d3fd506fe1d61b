package sheet

import "github.com/gridwerk/gridwerk/pkg/grid"

// Sheet pairs grid settings with the geometry derived from them. Renderers
// need both: the geometry for drawing and the settings for labeling.
type Sheet struct {
	Settings grid.Settings
	Grid     *grid.Result
}

// PlacedLine is one wrapped line of text fixed to the baseline grid. X is
// the final drawing position with any optical margin correction already
// applied; Y is the baseline in page coordinates.
type PlacedLine struct {
	Text string  `json:"text"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// PlacedBlock is a document block resolved to page coordinates. The frame
// is the module span the block occupies; Lines carry the wrapped text with
// each line positioned individually.
type PlacedBlock struct {
	Key      string       `json:"key"`
	StyleKey string       `json:"styleKey"`
	Size     float64      `json:"size"`
	Leading  float64      `json:"leading"`
	Weight   string       `json:"weight"`
	Align    string       `json:"align"`
	Rotation float64      `json:"rotation,omitempty"`
	X        float64      `json:"x"`
	Y        float64      `json:"y"`
	Width    float64      `json:"width"`
	Height   float64      `json:"height"`
	Lines    []PlacedLine `json:"lines"`
}

// Overlay carries planned document content onto the sheet. A nil overlay
// renders the bare grid.
type Overlay struct {
	Blocks []PlacedBlock `json:"blocks"`
}
