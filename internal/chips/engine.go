package chips

import (
	"fmt"

	"ChipSentinel/internal/model"
)

// Compute selects the window ending at bar idx (0-based), replays it and
// returns the snapshot with 90% and 70% bands.
func Compute(bars []model.Bar, idx int, p Params) (*model.DistributionSnapshot, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	w, err := SelectWindow(bars, idx, p.Range, p.TradingDays)
	if err != nil {
		return nil, err
	}
	d, err := Estimate(w, p.AccuracyFactor)
	if err != nil {
		return nil, err
	}
	return d.Snapshot(w)
}

// ComputeLatest returns the snapshot whose window ends at the last bar of the
// series, i.e. the trailing p.TradingDays bars.
func ComputeLatest(bars []model.Bar, p Params) (*model.DistributionSnapshot, error) {
	return ComputeBack(bars, 0, p)
}

// ComputeBack returns the snapshot whose window ends offset bars before the
// last one. Compute's idx is shifted by p.Range so that end = len-offset.
func ComputeBack(bars []model.Bar, offset int, p Params) (*model.DistributionSnapshot, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset %d must not be negative", ErrInvalidArgument, offset)
	}
	return Compute(bars, len(bars)-1-offset+p.Range, p)
}

// Estimate builds the grid for w and replays it.
func Estimate(w Window, accuracyFactor int) (*Distribution, error) {
	g, err := BuildGrid(w, accuracyFactor)
	if err != nil {
		return nil, err
	}
	return NewDistribution(g, Replay(w, g))
}

// Snapshot packs the distribution and its derived metrics for window w.
func (d *Distribution) Snapshot(w Window) (*model.DistributionSnapshot, error) {
	p90, err := d.PercentChips(0.9)
	if err != nil {
		return nil, err
	}
	p70, err := d.PercentChips(0.7)
	if err != nil {
		return nil, err
	}

	prices := make([]float64, d.grid.Len())
	copy(prices, d.grid.Prices)

	return &model.DistributionSnapshot{
		Date:         w.Last().Date,
		Days:         len(w.Bars),
		Requested:    w.Requested,
		Partial:      w.Partial(),
		MinPrice:     d.grid.MinPrice,
		MaxPrice:     d.grid.MaxPrice,
		Accuracy:     d.grid.Accuracy,
		CurrentPrice: d.grid.CurrentPrice,
		Prices:       prices,
		Chips:        d.Chips(),
		Boundary:     d.grid.Boundary,
		TotalChips:   d.total,
		BenefitPart:  d.BenefitPart(d.grid.CurrentPrice),
		AvgCost:      d.AvgCost(),
		Percent90:    p90,
		Percent70:    p70,
	}, nil
}
