package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gridwerk/gridwerk/pkg/grid"
	"github.com/gridwerk/gridwerk/pkg/units"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// SetupModel - Interactive grid wizard
// =============================================================================

// setupStep identifies one page of the wizard.
type setupStep int

const (
	stepFormat setupStep = iota
	stepOrientation
	stepMethod
	stepColumns
	stepRows
	stepBaseline
	stepScale
	stepCount
)

var stepTitles = map[setupStep]string{
	stepFormat:      "Page format",
	stepOrientation: "Orientation",
	stepMethod:      "Margin method",
	stepColumns:     "Grid columns",
	stepRows:        "Grid rows",
	stepBaseline:    "Baseline unit",
	stepScale:       "Type scale",
}

// Fixed choice lists for the numeric pages. Baseline candidates are
// filtered per page against what the margin method still fits.
var (
	marginMethodOrder  = []int{grid.MarginProgressive, grid.MarginVanDeGraaf, grid.MarginBaseline}
	columnChoices      = []int{1, 2, 3, 4, 6, 8, 12}
	rowChoices         = []int{2, 4, 6, 8, 10, 12}
	baselineCandidates = []float64{8, 9, 10, 11, 12, 14, 16, 18}
)

var scaleDetails = map[string]string{
	grid.ScaleSwiss:         "1.2 ladder",
	grid.ScaleGolden:        "1.618 ladder",
	grid.ScaleMajorThird:    "1.25 ladder",
	grid.ScalePerfectFourth: "1.333 ladder",
	grid.ScalePerfectFifth:  "1.5 ladder",
}

// setupChoice is one selectable row on a wizard page.
type setupChoice struct {
	Label  string
	Detail string
}

// SetupModel is the bubbletea model for the step-by-step grid wizard.
// Each confirmed page writes one field of Settings; Done reports whether
// the final page was confirmed rather than aborted.
type SetupModel struct {
	Step     setupStep
	Cursor   int
	Settings grid.Settings
	Done     bool
}

// NewSetupModel creates a wizard model seeded with the calculator defaults.
func NewSetupModel() SetupModel {
	m := SetupModel{
		Settings: grid.Settings{
			Format:           "A4",
			Orientation:      grid.Portrait,
			MarginMethod:     grid.MarginProgressive,
			GridCols:         6,
			GridRows:         8,
			Baseline:         12,
			BaselineMultiple: 1,
			GutterMultiple:   1,
			Scale:            grid.ScaleSwiss,
		},
	}
	m.Cursor = m.defaultCursor()
	return m
}

func (m SetupModel) Init() tea.Cmd {
	return nil
}

func (m SetupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "left", "h":
			if m.Step == 0 {
				return m, tea.Quit
			}
			m.Step--
			m.Cursor = m.defaultCursor()
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.choices())-1 {
				m.Cursor++
			}
		case "enter":
			m.apply()
			if m.Step == stepScale {
				m.Done = true
				return m, tea.Quit
			}
			m.Step++
			m.Cursor = m.defaultCursor()
		}
	}
	return m, nil
}

func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Grid Setup"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  esc back  q quit"))
	b.WriteString("\n\n")

	b.WriteString(listNormalStyle.Render(stepTitles[m.Step]))
	if m.Step == stepBaseline {
		if limit, ok := m.baselineLimit(); ok {
			b.WriteString(listDimStyle.Render(fmt.Sprintf("  (method allows up to %g pt)", limit)))
		}
	}
	b.WriteString("\n\n")

	for i, ch := range m.choices() {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		line := fmt.Sprintf("%s%-16s %s", cursor, ch.Label, listDimStyle.Render(ch.Detail))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %s", int(m.Step)+1, int(stepCount), m.chosen())))

	return b.String()
}

// choices returns the rows for the current page.
func (m SetupModel) choices() []setupChoice {
	switch m.Step {
	case stepFormat:
		formats := grid.Formats()
		out := make([]setupChoice, len(formats))
		for i, f := range formats {
			detail := ""
			if w, h, err := grid.PageSize(f, m.Settings.Orientation); err == nil {
				detail = fmt.Sprintf("%.0f × %.0f mm", units.Pt(w).ToMm(), units.Pt(h).ToMm())
			}
			out[i] = setupChoice{Label: f, Detail: detail}
		}
		return out
	case stepOrientation:
		orients := grid.Orientations()
		out := make([]setupChoice, len(orients))
		for i, o := range orients {
			detail := ""
			if w, h, err := grid.PageSize(m.Settings.Format, o); err == nil {
				detail = fmt.Sprintf("%.0f × %.0f pt", w, h)
			}
			out[i] = setupChoice{Label: o, Detail: detail}
		}
		return out
	case stepMethod:
		out := make([]setupChoice, len(marginMethodOrder))
		for i, method := range marginMethodOrder {
			out[i] = setupChoice{Label: grid.MarginMethodLabels[method], Detail: fmt.Sprintf("method %d", method)}
		}
		return out
	case stepColumns:
		out := make([]setupChoice, len(columnChoices))
		for i, n := range columnChoices {
			out[i] = setupChoice{Label: fmt.Sprintf("%d", n), Detail: "columns"}
		}
		return out
	case stepRows:
		out := make([]setupChoice, len(rowChoices))
		for i, n := range rowChoices {
			out[i] = setupChoice{Label: fmt.Sprintf("%d", n), Detail: "rows"}
		}
		return out
	case stepBaseline:
		candidates := m.baselineChoices()
		out := make([]setupChoice, len(candidates))
		for i, u := range candidates {
			out[i] = setupChoice{Label: fmt.Sprintf("%g pt", u), Detail: fmt.Sprintf("%.1f mm", units.Pt(u).ToMm())}
		}
		return out
	case stepScale:
		scales := grid.Scales()
		out := make([]setupChoice, len(scales))
		for i, s := range scales {
			out[i] = setupChoice{Label: s, Detail: scaleDetails[s]}
		}
		return out
	}
	return nil
}

// apply records the highlighted row into Settings.
func (m *SetupModel) apply() {
	switch m.Step {
	case stepFormat:
		m.Settings.Format = grid.Formats()[m.Cursor]
	case stepOrientation:
		m.Settings.Orientation = grid.Orientations()[m.Cursor]
	case stepMethod:
		m.Settings.MarginMethod = marginMethodOrder[m.Cursor]
	case stepColumns:
		m.Settings.GridCols = columnChoices[m.Cursor]
	case stepRows:
		m.Settings.GridRows = rowChoices[m.Cursor]
	case stepBaseline:
		m.Settings.Baseline = m.baselineChoices()[m.Cursor]
	case stepScale:
		m.Settings.Scale = grid.Scales()[m.Cursor]
	}
}

// defaultCursor returns the row holding the current value, so each page
// opens on the seeded default instead of the first row.
func (m SetupModel) defaultCursor() int {
	i := -1
	switch m.Step {
	case stepFormat:
		i = slices.Index(grid.Formats(), m.Settings.Format)
	case stepOrientation:
		i = slices.Index(grid.Orientations(), m.Settings.Orientation)
	case stepMethod:
		i = slices.Index(marginMethodOrder, m.Settings.MarginMethod)
	case stepColumns:
		i = slices.Index(columnChoices, m.Settings.GridCols)
	case stepRows:
		i = slices.Index(rowChoices, m.Settings.GridRows)
	case stepBaseline:
		i = slices.Index(m.baselineChoices(), m.Settings.Baseline)
	case stepScale:
		i = slices.Index(grid.Scales(), m.Settings.Scale)
	}
	if i < 0 {
		return 0
	}
	return i
}

// baselineLimit returns the largest unit the chosen method fits on the
// chosen page.
func (m SetupModel) baselineLimit() (float64, bool) {
	_, pageH, err := grid.PageSize(m.Settings.Format, m.Settings.Orientation)
	if err != nil {
		return 0, false
	}
	limit, err := grid.MaxBaseline(pageH, m.Settings.MarginMethod, m.Settings.BaselineMultiple, nil)
	if err != nil {
		return 0, false
	}
	return limit, true
}

// baselineChoices filters the candidate units against the method limit.
func (m SetupModel) baselineChoices() []float64 {
	limit, ok := m.baselineLimit()
	if !ok {
		return baselineCandidates
	}
	out := make([]float64, 0, len(baselineCandidates))
	for _, u := range baselineCandidates {
		if u <= limit {
			out = append(out, u)
		}
	}
	if len(out) == 0 {
		out = []float64{limit}
	}
	return out
}

// chosen renders the settings confirmed so far as a short trail.
func (m SetupModel) chosen() string {
	s := m.Settings
	var parts []string
	if m.Step > stepFormat {
		parts = append(parts, s.Format)
	}
	if m.Step > stepOrientation {
		parts = append(parts, s.Orientation)
	}
	if m.Step > stepMethod {
		parts = append(parts, grid.MarginMethodLabels[s.MarginMethod])
	}
	if m.Step > stepColumns {
		parts = append(parts, fmt.Sprintf("%d cols", s.GridCols))
	}
	if m.Step > stepRows {
		parts = append(parts, fmt.Sprintf("%d rows", s.GridRows))
	}
	if m.Step > stepBaseline {
		parts = append(parts, fmt.Sprintf("%g pt", s.Baseline))
	}
	return strings.Join(parts, " · ")
}
