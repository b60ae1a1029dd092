package chips

import (
	"fmt"
	"math"

	"ChipSentinel/internal/precision"
)

// minAccuracy keeps the grid step positive when the window's range collapses.
const minAccuracy = 0.01

// Grid is the discretized price axis of a query.
type Grid struct {
	MinPrice     float64
	MaxPrice     float64
	Accuracy     float64
	CurrentPrice float64
	Prices       []float64 // cents-rounded, ascending
	Boundary     int       // first index with Prices[i] >= CurrentPrice, -1 if none
}

// Len returns the number of buckets.
func (g Grid) Len() int { return len(g.Prices) }

// Price returns the unrounded price of bucket i.
func (g Grid) Price(i int) float64 { return g.MinPrice + g.Accuracy*float64(i) }

// clamp limits a bucket index to the grid.
func (g Grid) clamp(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(g.Prices) {
		return len(g.Prices) - 1
	}
	return i
}

// BuildGrid lays accuracyFactor equally spaced prices over the window's
// lowest low to highest high.
func BuildGrid(w Window, accuracyFactor int) (Grid, error) {
	if len(w.Bars) == 0 {
		return Grid{}, ErrEmptyWindow
	}
	if accuracyFactor < 2 {
		return Grid{}, fmt.Errorf("%w: accuracy factor %d, need at least 2", ErrInvalidArgument, accuracyFactor)
	}

	minPrice, maxPrice := priceRange(w)
	g := Grid{
		MinPrice:     minPrice,
		MaxPrice:     maxPrice,
		Accuracy:     math.Max(minAccuracy, (maxPrice-minPrice)/float64(accuracyFactor-1)),
		CurrentPrice: w.Last().Close,
		Prices:       make([]float64, accuracyFactor),
		Boundary:     -1,
	}
	for i := range g.Prices {
		g.Prices[i] = precision.Cents(g.Price(i))
		if g.Boundary == -1 && g.Prices[i] >= g.CurrentPrice {
			g.Boundary = i
		}
	}
	return g, nil
}

func priceRange(w Window) (low, high float64) {
	low = math.Inf(1)
	high = math.Inf(-1)
	for _, b := range w.Bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return low, high
}
