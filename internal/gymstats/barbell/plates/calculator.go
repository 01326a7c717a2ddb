package plates

import (
	"errors"
	"fmt"
	"math"
)

// Epsilon tolerates float rounding when comparing the remainder against a plate weight.
const Epsilon = 0.001

// MaxTotalWeight is the heaviest total (bar included) accepted from users, in kg.
const MaxTotalWeight = 1000

var ErrWeightOutOfRange = errors.New("weight out of range")

// CheckTotal rejects totals that cannot be drawn: NaN, infinities and anything
// above MaxTotalWeight. Totals at or below the bar are fine, they give an empty bar.
func CheckTotal(total float64) error {
	if math.IsNaN(total) || math.IsInf(total, 0) || total > MaxTotalWeight {
		return fmt.Errorf("%w: %v (max %d kg)", ErrWeightOutOfRange, total, MaxTotalWeight)
	}
	return nil
}

// Loadout is one side of the bar, heaviest plate (nearest to the bar) first.
type Loadout []Plate

func (l Loadout) Total() float64 {
	total := 0.0
	for _, p := range l {
		total += p.Weight
	}
	return total
}

// Reversed returns a copy ordered lightest first, as seen on the left side of the bar.
func (l Loadout) Reversed() Loadout {
	reversed := make(Loadout, len(l))
	for i, p := range l {
		reversed[len(l)-1-i] = p
	}
	return reversed
}

type PlateCount struct {
	Weight float64 `json:"weight"`
	Color  string  `json:"color"`
	Count  int     `json:"count"`
}

// Counts groups consecutive plates of the same weight, keeping the loadout order.
func (l Loadout) Counts() []PlateCount {
	counts := make([]PlateCount, 0, len(l))
	for _, p := range l {
		last := len(counts) - 1
		if last >= 0 && counts[last].Weight == p.Weight {
			counts[last].Count++
			continue
		}
		counts = append(counts, PlateCount{Weight: p.Weight, Color: p.Color, Count: 1})
	}
	return counts
}

type Calculator struct {
	denominations []Denomination
}

func NewCalculator(denoms []Denomination) (*Calculator, error) {
	sorted, err := sortedDenominations(denoms)
	if err != nil {
		return nil, err
	}
	return &Calculator{
		denominations: sorted,
	}, nil
}

func DefaultCalculator() *Calculator {
	c, err := NewCalculator(DefaultDenominations)
	if err != nil {
		panic(err)
	}
	return c
}

// Denominations returns a copy of the table, largest first.
func (c *Calculator) Denominations() []Denomination {
	denoms := make([]Denomination, len(c.denominations))
	copy(denoms, c.denominations)
	return denoms
}

func (c *Calculator) Smallest() float64 {
	return c.denominations[len(c.denominations)-1].Weight
}

// Breakdown greedily picks plates for one side of the bar. A leftover smaller
// than the smallest plate is dropped. Weights above MaxTotalWeight per side
// are not loadable and give an empty loadout.
func (c *Calculator) Breakdown(weightPerSide float64) Loadout {
	loadout := Loadout{}
	if !(weightPerSide > 0) || weightPerSide > MaxTotalWeight {
		return loadout
	}

	remaining := weightPerSide
	for _, d := range c.denominations {
		n := int(math.Floor((remaining + Epsilon) / d.Weight))
		for i := 0; i < n; i++ {
			loadout = append(loadout, Plate{Weight: d.Weight, Color: d.Color})
		}
		remaining -= float64(n) * d.Weight
	}

	return loadout
}

// WeightPerSide is (total - bar) / 2, never below zero.
func WeightPerSide(total, bar float64) float64 {
	perSide := (total - bar) / 2
	if !(perSide > 0) {
		return 0
	}
	return perSide
}
