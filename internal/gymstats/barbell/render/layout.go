package render

import (
	"fmt"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
)

const (
	// LbsPerKg is the conversion factor used in the summary line.
	LbsPerKg = 2.2
	// CompactBelow is the plate weight under which the compact plate style is used.
	CompactBelow = 5.0
)

type ElementKind int

const (
	KindPlate ElementKind = iota
	KindBarSection
	KindBarCenter
)

func (k ElementKind) String() string {
	switch k {
	case KindPlate:
		return "plate"
	case KindBarSection:
		return "bar-section"
	case KindBarCenter:
		return "bar-center"
	default:
		return "unknown"
	}
}

// Element is one visual piece of the barbell, left to right.
type Element struct {
	Kind      ElementKind
	Label     string
	Weight    float64
	Color     string
	TextColor string
	Compact   bool
}

// Layout is everything a surface needs to draw one barbell.
type Layout struct {
	Elements      []Element
	Bar           plates.BarSpec
	WeightPerSide float64
	Summary       string
}

// Plates returns only the plate elements, left to right.
func (l Layout) Plates() []Element {
	var pl []Element
	for _, e := range l.Elements {
		if e.Kind == KindPlate {
			pl = append(pl, e)
		}
	}
	return pl
}

// Build lays out a loadout symmetrically around the bar: the left side is the
// reversed loadout so the heaviest plates sit next to the bar on both sides.
func Build(loadout plates.Loadout, bar plates.BarSpec, weightPerSide float64) Layout {
	elements := make([]Element, 0, 2*len(loadout)+3)
	for _, p := range loadout.Reversed() {
		elements = append(elements, plateElement(p))
	}

	elements = append(elements,
		Element{Kind: KindBarSection, Color: bar.Color},
		Element{
			Kind:      KindBarCenter,
			Label:     bar.Label(),
			Weight:    bar.Weight,
			Color:     bar.Color,
			TextColor: TextColorFor(bar.Color),
		},
		Element{Kind: KindBarSection, Color: bar.Color},
	)

	for _, p := range loadout {
		elements = append(elements, plateElement(p))
	}

	return Layout{
		Elements:      elements,
		Bar:           bar,
		WeightPerSide: weightPerSide,
		Summary:       Summary(weightPerSide),
	}
}

func plateElement(p plates.Plate) Element {
	return Element{
		Kind:      KindPlate,
		Label:     plates.FormatWeight(p.Weight),
		Weight:    p.Weight,
		Color:     p.Color,
		TextColor: TextColorFor(p.Color),
		Compact:   p.Weight < CompactBelow,
	}
}

// TextColorFor keeps labels readable on light plates.
func TextColorFor(background string) string {
	if background == "white" || background == "yellow" {
		return "black"
	}
	return "white"
}

func Summary(weightPerSide float64) string {
	return fmt.Sprintf("%.1f kg (%.1f lbs) per side", weightPerSide, ToLbs(weightPerSide))
}

func ToLbs(kg float64) float64 {
	return kg * LbsPerKg
}
