package controller

import (
	log "github.com/sirupsen/logrus"

	"github.com/2beens/barbellviz/internal/gymstats/barbell/plates"
	"github.com/2beens/barbellviz/internal/gymstats/barbell/render"
)

// Display is a surface showing one exercise's barbell.
type Display interface {
	// TargetWeight is the total weight to show, bar included.
	TargetWeight() float64
	// Show replaces everything the display currently holds.
	Show(layout render.Layout)
}

type BarSelector interface {
	Selected() (plates.BarSpec, bool)
}

type SelectionNotifier interface {
	Subscribe(fn func())
}

// Controller redraws every display whenever the bar selection changes.
// Target weights and the selected bar are re-read on every redraw.
type Controller struct {
	calc     *plates.Calculator
	selector BarSelector
	displays []Display
}

func New(calc *plates.Calculator, selector BarSelector, displays ...Display) *Controller {
	return &Controller{
		calc:     calc,
		selector: selector,
		displays: displays,
	}
}

// Start draws everything once and redraws on every selection change.
func (c *Controller) Start(notifier SelectionNotifier) {
	c.RenderAll()
	notifier.Subscribe(func() {
		c.RenderAll()
	})
}

// RenderAll returns false when no bar is selected; nothing is drawn then.
func (c *Controller) RenderAll() bool {
	bar, ok := c.selector.Selected()
	if !ok {
		log.Warnf("barbell controller: no bar selected, skipping render of %d displays", len(c.displays))
		return false
	}

	for _, d := range c.displays {
		Render(c.calc, d, bar)
	}

	return true
}

// Render draws a single display for the given bar.
func Render(calc *plates.Calculator, d Display, bar plates.BarSpec) render.Layout {
	weightPerSide := plates.WeightPerSide(d.TargetWeight(), bar.Weight)
	layout := render.Build(calc.Breakdown(weightPerSide), bar, weightPerSide)
	d.Show(layout)
	return layout
}
