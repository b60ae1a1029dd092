package chips

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleDistribution(t *testing.T) *Distribution {
	t.Helper()
	d, err := Estimate(Window{Bars: exampleBars(), Requested: 3}, 10)
	require.NoError(t, err)
	return d
}

func TestDistribution_Example(t *testing.T) {
	d := exampleDistribution(t)

	assert.Greater(t, d.Total(), 0.0)
	assert.Less(t, d.Total(), 1.0, "no day reaches full turnover")

	avg := d.AvgCost()
	assert.Equal(t, 12.67, avg)
	assert.Greater(t, avg, 10.0)
	assert.Less(t, avg, 16.0)

	p90, err := d.PercentChips(0.9)
	require.NoError(t, err)
	assert.Equal(t, 11.33, p90.Low)
	assert.Equal(t, 14.67, p90.High)

	p70, err := d.PercentChips(0.7)
	require.NoError(t, err)
	assert.Equal(t, 12.0, p70.Low)
	assert.Equal(t, 14.0, p70.High)
	assert.InDelta(t, 2.0/26, p70.Concentration, 1e-12)

	assert.InDelta(t, 0.5551, d.BenefitPart(13), 1e-4)
}

func TestDistribution_CostByChipSentinel(t *testing.T) {
	d := exampleDistribution(t)
	assert.Equal(t, 0.0, d.CostByChip(d.Total()), "threshold never exceeded")
	assert.Equal(t, 0.0, d.CostByChip(d.Total()*2))
	assert.Equal(t, 10.0, d.CostByChip(-1), "negative threshold crosses at the first bucket")
	assert.Equal(t, 10.67, d.CostByChip(0), "first bucket holding mass")
}

func TestDistribution_PercentChipsInvalid(t *testing.T) {
	d := exampleDistribution(t)
	for _, p := range []float64{0, 1.5, -0.2, math.NaN()} {
		_, err := d.PercentChips(p)
		assert.ErrorIs(t, err, ErrInvalidArgument, "percent %v", p)
	}
}

func TestDistribution_PercentChipsFullRange(t *testing.T) {
	d := exampleDistribution(t)
	band, err := d.PercentChips(1)
	require.NoError(t, err)
	assert.Equal(t, 10.67, band.Low)
	assert.Equal(t, 0.0, band.High, "upper threshold equals the total and is never exceeded")
}

func TestDistribution_PercentileOrdering(t *testing.T) {
	w, err := SelectWindow(waveBars(300), 299, 0, 210)
	require.NoError(t, err)
	d, err := Estimate(w, DefaultAccuracyFactor)
	require.NoError(t, err)

	avg := d.AvgCost()
	prevLow, prevHigh := avg, avg
	for _, p := range []float64{0.1, 0.3, 0.5, 0.7, 0.9, 0.99} {
		band, err := d.PercentChips(p)
		require.NoError(t, err)
		assert.LessOrEqual(t, band.Low, avg, "p=%v", p)
		assert.GreaterOrEqual(t, band.High, avg, "p=%v", p)
		assert.LessOrEqual(t, band.Low, prevLow, "p=%v band widens downward", p)
		assert.GreaterOrEqual(t, band.High, prevHigh, "p=%v band widens upward", p)
		prevLow, prevHigh = band.Low, band.High
	}
}

func TestDistribution_BenefitPartMonotonic(t *testing.T) {
	w, err := SelectWindow(waveBars(300), 299, 0, 210)
	require.NoError(t, err)
	d, err := Estimate(w, DefaultAccuracyFactor)
	require.NoError(t, err)
	g := d.Grid()

	assert.Zero(t, d.BenefitPart(g.MinPrice-0.001))
	assert.InDelta(t, 1.0, d.BenefitPart(g.MaxPrice), 1e-12)

	prev := 0.0
	for p := g.MinPrice - 1; p <= g.MaxPrice+1; p += 0.05 {
		b := d.BenefitPart(p)
		assert.GreaterOrEqual(t, b, prev, "price %.2f", p)
		prev = b
	}
}

func TestDistribution_EmptyMass(t *testing.T) {
	g, err := BuildGrid(Window{Bars: exampleBars()}, 10)
	require.NoError(t, err)
	d, err := NewDistribution(g, make([]float64, g.Len()))
	require.NoError(t, err)

	assert.Zero(t, d.BenefitPart(100))
	assert.Zero(t, d.AvgCost())
	band, err := d.PercentChips(0.9)
	require.NoError(t, err)
	assert.Zero(t, band.Concentration)
}

func TestNewDistribution_LengthMismatch(t *testing.T) {
	g, err := BuildGrid(Window{Bars: exampleBars()}, 10)
	require.NoError(t, err)
	_, err = NewDistribution(g, make([]float64, 3))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDistribution_ChipsIsCopy(t *testing.T) {
	d := exampleDistribution(t)
	chips := d.Chips()
	chips[4] = 100
	assert.NotEqual(t, 100.0, d.Chips()[4])
}
