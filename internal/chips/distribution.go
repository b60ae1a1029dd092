package chips

import (
	"fmt"

	"ChipSentinel/internal/model"
)

// Distribution is a replayed chip histogram over a Grid.
type Distribution struct {
	grid  Grid
	mass  []float64
	total float64
}

// NewDistribution wraps replayed bucket masses. mass must have one entry per
// grid bucket and is owned by the Distribution afterwards.
func NewDistribution(g Grid, mass []float64) (*Distribution, error) {
	if len(mass) != g.Len() {
		return nil, fmt.Errorf("%w: %d masses for %d buckets", ErrInvalidArgument, len(mass), g.Len())
	}
	d := &Distribution{grid: g, mass: mass}
	for _, m := range mass {
		d.total += m
	}
	return d, nil
}

// Grid returns the price axis.
func (d *Distribution) Grid() Grid { return d.grid }

// Total returns the summed chip mass.
func (d *Distribution) Total() float64 { return d.total }

// Chips returns a copy of the per-bucket masses.
func (d *Distribution) Chips() []float64 {
	out := make([]float64, len(d.mass))
	copy(out, d.mass)
	return out
}

// CostByChip scans buckets from the lowest price up and returns the price of
// the first bucket at which the running mass exceeds threshold.
// It returns 0 when the threshold is never exceeded; callers must treat that
// value as "not reached", not as a price.
func (d *Distribution) CostByChip(threshold float64) float64 {
	sum := 0.0
	for i, m := range d.mass {
		if sum+m > threshold {
			return d.grid.Prices[i]
		}
		sum += m
	}
	return 0
}

// AvgCost returns the price at the 50th percentile of chip mass.
func (d *Distribution) AvgCost() float64 {
	return d.CostByChip(d.total * 0.5)
}

// PercentChips returns the price band holding the middle percent of chips,
// with percent in (0, 1].
func (d *Distribution) PercentChips(percent float64) (model.Band, error) {
	if !(percent > 0 && percent <= 1) {
		return model.Band{}, fmt.Errorf("%w: percent %v outside (0, 1]", ErrInvalidArgument, percent)
	}
	low := d.CostByChip(d.total * (1 - percent) / 2)
	high := d.CostByChip(d.total * (1 + percent) / 2)

	band := model.Band{Percent: percent, Low: low, High: high}
	if low+high != 0 {
		band.Concentration = (high - low) / (high + low)
	}
	return band, nil
}

// BenefitPart returns the fraction of chips held at or below price.
func (d *Distribution) BenefitPart(price float64) float64 {
	if d.total == 0 {
		return 0
	}
	below := 0.0
	for i, m := range d.mass {
		if d.grid.Prices[i] <= price {
			below += m
		}
	}
	return below / d.total
}
