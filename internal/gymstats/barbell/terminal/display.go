package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/render"
)

// colors maps the plate color names to terminal colors.
var colors = map[string]lipgloss.Color{
	"red":    lipgloss.Color("#D62828"),
	"blue":   lipgloss.Color("#1D4ED8"),
	"yellow": lipgloss.Color("#FACC15"),
	"green":  lipgloss.Color("#16A34A"),
	"grey":   lipgloss.Color("#6B7280"),
	"white":  lipgloss.Color("#F5F5F5"),
	"black":  lipgloss.Color("#000000"),
}

var summaryStyle = lipgloss.NewStyle().Faint(true)

func colorFor(name string) lipgloss.Color {
	if c, ok := colors[name]; ok {
		return c
	}
	return lipgloss.Color(name)
}

// Display draws barbells as a single terminal line plus the summary.
type Display struct {
	name   string
	target float64
	out    string
}

func NewDisplay(name string, targetWeight float64) *Display {
	return &Display{
		name:   name,
		target: targetWeight,
	}
}

func (d *Display) TargetWeight() float64 {
	return d.target
}

func (d *Display) Show(layout render.Layout) {
	parts := make([]string, 0, len(layout.Elements))
	for _, e := range layout.Elements {
		parts = append(parts, element(e))
	}

	var sb strings.Builder
	if d.name != "" {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render(d.name))
		sb.WriteString("\n")
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, parts...))
	sb.WriteString("\n")
	sb.WriteString(summaryStyle.Render(layout.Summary))
	d.out = sb.String()
}

// String is the last drawn barbell.
func (d *Display) String() string {
	return d.out
}

func element(e render.Element) string {
	switch e.Kind {
	case render.KindPlate:
		style := lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFor(e.TextColor)).
			Background(colorFor(e.Color)).
			Padding(1, 1).
			MarginRight(1)
		if e.Compact {
			style = style.Padding(0, 0)
		}
		return style.Render(e.Label)
	case render.KindBarSection:
		return lipgloss.NewStyle().Foreground(colorFor(e.Color)).Render("===")
	case render.KindBarCenter:
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(colorFor(e.TextColor)).
			Background(colorFor(e.Color)).
			Padding(0, 1).
			Render(e.Label)
	default:
		return ""
	}
}
