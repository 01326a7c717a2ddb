package plates

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
)

var (
	ErrEmptyDenominations  = errors.New("denominations table is empty")
	ErrInvalidDenomination = errors.New("invalid denomination")
)

// Denomination is a plate weight (kg) with the color it is painted in.
type Denomination struct {
	Weight float64 `json:"weight" toml:"weight"`
	Color  string  `json:"color" toml:"color"`
}

// Plate is a single denomination put on the bar.
type Plate struct {
	Weight float64 `json:"weight"`
	Color  string  `json:"color"`
}

// BarSpec is the selected bar: its own weight and the color it is shown with.
type BarSpec struct {
	Weight float64 `json:"weight" toml:"weight"`
	Color  string  `json:"color" toml:"color"`
}

func (b BarSpec) Label() string {
	return FormatWeight(b.Weight)
}

// DefaultDenominations is the standard olympic plate set, largest first.
var DefaultDenominations = []Denomination{
	{Weight: 25, Color: "red"},
	{Weight: 20, Color: "blue"},
	{Weight: 15, Color: "yellow"},
	{Weight: 10, Color: "green"},
	{Weight: 5, Color: "grey"},
	{Weight: 2.5, Color: "red"},
	{Weight: 2, Color: "blue"},
	{Weight: 1.5, Color: "yellow"},
	{Weight: 1, Color: "green"},
	{Weight: 0.5, Color: "white"},
}

// DefaultBars are the bar options offered when nothing else is configured.
// The first one is checked by default.
var DefaultBars = []BarSpec{
	{Weight: 20, Color: "blue"},
	{Weight: 15, Color: "yellow"},
	{Weight: 10, Color: "green"},
}

// FindBar returns the bar option with the given weight.
func FindBar(bars []BarSpec, weight float64) (BarSpec, bool) {
	for _, b := range bars {
		if math.Abs(b.Weight-weight) < Epsilon {
			return b, true
		}
	}
	return BarSpec{}, false
}

// FormatWeight prints a weight in its shortest form: 25, 2.5, 0.5.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

func sortedDenominations(denoms []Denomination) ([]Denomination, error) {
	if len(denoms) == 0 {
		return nil, ErrEmptyDenominations
	}

	sorted := make([]Denomination, len(denoms))
	copy(sorted, denoms)
	for _, d := range sorted {
		// a plate lighter than Epsilon would be picked past the target
		if !(d.Weight > Epsilon) || math.IsInf(d.Weight, 0) {
			return nil, fmt.Errorf("%w: weight %v", ErrInvalidDenomination, d.Weight)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Weight > sorted[j].Weight
	})

	return sorted, nil
}
