package chips

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_Example(t *testing.T) {
	bars := exampleBars()
	snap, err := Compute(bars, 2, Params{AccuracyFactor: 10, Range: 0, TradingDays: 3})
	require.NoError(t, err)

	assert.Equal(t, bars[2].Date, snap.Date)
	assert.Equal(t, 3, snap.Days)
	assert.False(t, snap.Partial)
	assert.Len(t, snap.Prices, 10)
	assert.Len(t, snap.Chips, 10)
	assert.Equal(t, 10.0, snap.Prices[0])
	assert.Equal(t, 16.0, snap.Prices[9])
	assert.Equal(t, 5, snap.Boundary)
	assert.Equal(t, 13.0, snap.CurrentPrice)
	assert.Less(t, snap.TotalChips, 1.0)
	assert.Equal(t, 12.67, snap.AvgCost)
	assert.Equal(t, 0.9, snap.Percent90.Percent)
	assert.Equal(t, 11.33, snap.Percent90.Low)
	assert.Equal(t, 14.67, snap.Percent90.High)
	assert.Equal(t, 12.0, snap.Percent70.Low)
	assert.Equal(t, 14.0, snap.Percent70.High)
	assert.InDelta(t, 0.5551, snap.BenefitPart, 1e-4)
}

func TestCompute_Defaults(t *testing.T) {
	bars := waveBars(400)
	snap, err := Compute(bars, len(bars)-1, DefaultParams())
	require.NoError(t, err)

	assert.Equal(t, 210, snap.Days)
	assert.False(t, snap.Partial)
	assert.Equal(t, bars[279].Date, snap.Date, "range excludes the last 120 bars")
	require.Len(t, snap.Prices, DefaultAccuracyFactor)
	for _, c := range snap.Chips {
		assert.GreaterOrEqual(t, c, 0.0)
	}

	assert.GreaterOrEqual(t, snap.AvgCost, snap.MinPrice)
	assert.LessOrEqual(t, snap.AvgCost, snap.MaxPrice+0.005)
	assert.LessOrEqual(t, snap.Percent90.Low, snap.Percent70.Low)
	assert.LessOrEqual(t, snap.Percent70.Low, snap.AvgCost)
	assert.LessOrEqual(t, snap.AvgCost, snap.Percent70.High)
	assert.LessOrEqual(t, snap.Percent70.High, snap.Percent90.High)
	assert.GreaterOrEqual(t, snap.BenefitPart, 0.0)
	assert.LessOrEqual(t, snap.BenefitPart, 1.0)
}

func TestComputeLatest_PartialWindow(t *testing.T) {
	bars := waveBars(100)
	snap, err := ComputeLatest(bars, Params{AccuracyFactor: 150, Range: 0, TradingDays: 210})
	require.NoError(t, err)
	assert.Equal(t, 100, snap.Days)
	assert.Equal(t, 210, snap.Requested)
	assert.True(t, snap.Partial)
	assert.Equal(t, bars[99].Date, snap.Date)
}

// The default range must not push the latest snapshot back in time.
func TestComputeLatest_DefaultParamsEndsAtLastBar(t *testing.T) {
	bars := waveBars(330)
	snap, err := ComputeLatest(bars, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, bars[329].Date, snap.Date)
	assert.Equal(t, 210, snap.Days)
	assert.False(t, snap.Partial)

	want, err := Compute(bars, 329, Params{AccuracyFactor: DefaultAccuracyFactor, Range: 0, TradingDays: 210})
	require.NoError(t, err)
	assert.Equal(t, want, snap, "range does not change the latest window")
}

func TestComputeBack(t *testing.T) {
	bars := waveBars(330)
	snap, err := ComputeBack(bars, 10, DefaultParams())
	require.NoError(t, err)
	assert.Equal(t, bars[319].Date, snap.Date)

	_, err = ComputeBack(bars, 330, DefaultParams())
	assert.ErrorIs(t, err, ErrEmptyWindow)

	_, err = ComputeBack(bars, -1, DefaultParams())
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestCompute_Errors(t *testing.T) {
	bars := waveBars(100)

	_, err := Compute(bars, 99, DefaultParams())
	assert.ErrorIs(t, err, ErrEmptyWindow, "range swallows the whole series")

	_, err = Compute(bars, 99, Params{AccuracyFactor: 1, TradingDays: 10})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Compute(bars, 99, Params{AccuracyFactor: 10, TradingDays: 0})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = ComputeLatest(nil, Params{AccuracyFactor: 10, TradingDays: 10})
	assert.ErrorIs(t, err, ErrEmptyWindow)
}

func TestCompute_Deterministic(t *testing.T) {
	bars := waveBars(350)
	p := DefaultParams()
	p.Range = 0

	want, err := ComputeLatest(bars, p)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]any, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			snap, err := ComputeLatest(bars, p)
			if err != nil {
				results[i] = err
				return
			}
			results[i] = snap
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		assert.Equal(t, want, r, "run %d", i)
	}
}

func TestSnapshot_DoesNotAliasDistribution(t *testing.T) {
	w := Window{Bars: exampleBars(), Requested: 3}
	d, err := Estimate(w, 10)
	require.NoError(t, err)
	snap, err := d.Snapshot(w)
	require.NoError(t, err)

	snap.Chips[4] = 42
	snap.Prices[4] = 42
	assert.NotEqual(t, 42.0, d.Chips()[4])
	assert.NotEqual(t, 42.0, d.Grid().Prices[4])
}
