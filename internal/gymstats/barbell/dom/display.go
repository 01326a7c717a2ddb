package dom

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
	"github.com/2beens/barbellviz/internal/gymstats/barbell/render"
)

const (
	DisplayClass      = "barbellWorkout"
	WeightAttr        = "data-weight"
	PlateClass        = "plate"
	BarClass          = "bar"
	BarSectionClass   = "barbell-line"
	ContainerClass    = "barbell"
	WeightsTextClass  = "barbell-weights"
	exerciseNameAttr  = "data-exercise"
	containerMaxWidth = "100%"
)

// Display is a `.barbellWorkout` element. Its target weight lives in the
// data-weight attribute and its children are owned by Show.
type Display struct {
	node *html.Node
}

func NewDisplay(targetWeight float64, exerciseName string) *Display {
	n := newElement(atom.Div,
		attr("class", DisplayClass),
		attr(WeightAttr, plates.FormatWeight(targetWeight)),
	)
	if exerciseName != "" {
		n.Attr = append(n.Attr, attr(exerciseNameAttr, exerciseName))
	}
	return &Display{node: n}
}

// WrapDisplay uses an existing node as a display.
func WrapDisplay(n *html.Node) *Display {
	return &Display{node: n}
}

// FindDisplays returns every `.barbellWorkout` element below root, in document order.
func FindDisplays(root *html.Node) []*Display {
	var displays []*Display
	walk(root, func(n *html.Node) {
		if n.Type == html.ElementNode && HasClass(n, DisplayClass) {
			displays = append(displays, WrapDisplay(n))
		}
	})
	return displays
}

func (d *Display) Node() *html.Node {
	return d.node
}

// TargetWeight reads the data-weight attribute; a missing or malformed value counts as zero.
func (d *Display) TargetWeight() float64 {
	raw, ok := GetAttr(d.node, WeightAttr)
	if !ok {
		return 0
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return w
}

// Show drops whatever the display held and draws the layout from scratch.
func (d *Display) Show(layout render.Layout) {
	removeChildren(d.node)

	container := newElement(atom.Div,
		attr("class", ContainerClass),
		styleAttr(Style{
			"display":         "flex",
			"align-items":     "center",
			"justify-content": "center",
			"flex-wrap":       "nowrap",
			"margin":          "0 auto",
			"overflow-x":      "hidden",
			"padding":         "5px 0",
			"max-width":       containerMaxWidth,
		}),
	)

	for _, e := range layout.Elements {
		switch e.Kind {
		case render.KindPlate:
			container.AppendChild(plateNode(e))
		case render.KindBarSection:
			container.AppendChild(barSectionNode(e))
		case render.KindBarCenter:
			container.AppendChild(barCenterNode(e))
		}
	}

	weightsText := newElement(atom.Div,
		attr("class", WeightsTextClass),
		styleAttr(Style{
			"text-align":    "center",
			"font-size":     "14px",
			"margin-bottom": "5px",
		}),
	)
	weightsText.AppendChild(newText(layout.Summary))

	d.node.AppendChild(container)
	d.node.AppendChild(weightsText)
}

func plateNode(e render.Element) *html.Node {
	style := Style{
		"background-color": e.Color,
		"color":            e.TextColor,
		"border-radius":    "4px",
		"margin":           "0 2px",
		"text-align":       "center",
		"font-weight":      "bold",
		"text-shadow":      "0 1px 1px rgba(0,0,0,0.4)",
		"min-width":        "30px",
		"padding":          "12px 0px",
		"font-size":        "0.9em",
	}
	if e.Compact {
		style["min-width"] = "20px"
		style["padding"] = "6px 2px"
		style["font-size"] = "0.7em"
	}

	n := newElement(atom.Span,
		attr("class", PlateClass+" "+e.Color),
		styleAttr(style),
	)
	n.AppendChild(newText(e.Label))
	return n
}

func barSectionNode(e render.Element) *html.Node {
	return newElement(atom.Span,
		attr("class", BarSectionClass),
		styleAttr(Style{
			"background-color": e.Color,
			"border-color":     e.Color,
		}),
	)
}

func barCenterNode(e render.Element) *html.Node {
	n := newElement(atom.Span,
		attr("class", BarClass),
		styleAttr(Style{
			"background-color": e.Color,
			"color":            e.TextColor,
			"padding":          "6px 12px",
			"margin":           "15px 0px",
			"border-radius":    "6px",
			"font-weight":      "bold",
			"text-align":       "center",
		}),
	)
	n.AppendChild(newText(e.Label))
	return n
}
