package dom

import (
	"math"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
)

const (
	BarWeightInputName = "barWeight"
	colorAttr          = "data-color"
	checkedAttr        = "checked"
)

// BarRadioGroup is the set of `input[name="barWeight"]` radios of a document.
// Moving the checked mark through Select fires the change subscribers.
type BarRadioGroup struct {
	inputs      []*html.Node
	subscribers []func()
}

func FindBarRadioGroup(root *html.Node) *BarRadioGroup {
	g := &BarRadioGroup{}
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.DataAtom != atom.Input {
			return
		}
		if name, _ := GetAttr(n, "name"); name == BarWeightInputName {
			g.inputs = append(g.inputs, n)
		}
	})
	return g
}

func newBarRadio(bar plates.BarSpec, checked bool) *html.Node {
	input := newElement(atom.Input,
		attr("type", "radio"),
		attr("name", BarWeightInputName),
		attr("value", bar.Label()),
		attr(colorAttr, bar.Color),
		attr("onchange", "this.form.submit()"),
	)
	if checked {
		input.Attr = append(input.Attr, attr(checkedAttr, ""))
	}
	return input
}

// Selected reads the value and color of the checked radio.
func (g *BarRadioGroup) Selected() (plates.BarSpec, bool) {
	for _, in := range g.inputs {
		if _, checked := GetAttr(in, checkedAttr); !checked {
			continue
		}
		raw, _ := GetAttr(in, "value")
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return plates.BarSpec{}, false
		}
		color, _ := GetAttr(in, colorAttr)
		return plates.BarSpec{Weight: w, Color: color}, true
	}
	return plates.BarSpec{}, false
}

// Select checks the radio holding the given bar weight and notifies subscribers.
// It reports false and leaves the group untouched when no radio matches.
func (g *BarRadioGroup) Select(weight float64) bool {
	var target *html.Node
	for _, in := range g.inputs {
		raw, _ := GetAttr(in, "value")
		w, err := strconv.ParseFloat(raw, 64)
		if err == nil && math.Abs(w-weight) < plates.Epsilon {
			target = in
			break
		}
	}
	if target == nil {
		return false
	}

	for _, in := range g.inputs {
		removeAttr(in, checkedAttr)
	}
	setAttr(target, checkedAttr, "")

	for _, fn := range g.subscribers {
		fn()
	}
	return true
}

func (g *BarRadioGroup) Subscribe(fn func()) {
	g.subscribers = append(g.subscribers, fn)
}

func (g *BarRadioGroup) Len() int {
	return len(g.inputs)
}
