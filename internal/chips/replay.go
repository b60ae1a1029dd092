package chips

import (
	"math"

	"ChipSentinel/internal/model"
	"ChipSentinel/internal/precision"
)

// Replay walks the window oldest to newest and returns the chip mass held in
// each grid bucket, rounded to precision.MassDigits significant digits.
//
// Every day first decays all held mass by (1 - turnover rate), then adds the
// day's turnover as a triangular density over [low, high] peaked at the
// OHLC average. Bucket mass is density times bucket width, so one day at
// 100% turnover adds a total mass of about 1.
func Replay(w Window, g Grid) []float64 {
	mass := make([]float64, g.Len())
	for _, b := range w.Bars {
		replayDay(mass, g, b)
	}
	for i, m := range mass {
		mass[i] = precision.Significant(m, precision.MassDigits)
	}
	return mass
}

// turnoverRate converts a turnover percentage to a fraction in [0, 1].
func turnoverRate(turnover float64) float64 {
	if math.IsNaN(turnover) || turnover <= 0 {
		return 0
	}
	return math.Min(1, turnover/100)
}

func replayDay(mass []float64, g Grid, b model.Bar) {
	avg := (b.Open + b.Close + b.High + b.Low) / 4
	rate := turnoverRate(b.Turnover)

	for i := range mass {
		mass[i] *= 1 - rate
	}
	if rate == 0 {
		return
	}

	// Locked-limit day: no intraday range, the triangle collapses to a spike
	// holding half the mass a unit-area rectangle would. rate/2 is already a
	// mass, so it is not scaled by Accuracy; the day weighs half of a normal
	// day with the same turnover at any grid size.
	if b.High == b.Low {
		peak := g.clamp(int(math.Round((avg - g.MinPrice) / g.Accuracy)))
		mass[peak] += rate / 2
		return
	}

	lo := g.clamp(int(math.Floor((b.Low - g.MinPrice) / g.Accuracy)))
	hi := g.clamp(int(math.Ceil((b.High - g.MinPrice) / g.Accuracy)))
	amp := 2 / (b.High - b.Low)
	for j := lo; j <= hi; j++ {
		w := triangleWeight(g.Price(j), b.Low, avg, b.High, amp)
		if w > 0 {
			mass[j] += w * rate * g.Accuracy
		}
	}
}

// triangleWeight is the density at price p of a triangle over [low, high]
// with apex amp at peak. A zero-width leg carries the full apex height.
func triangleWeight(p, low, peak, high, amp float64) float64 {
	if p <= peak {
		if peak == low {
			return amp
		}
		return amp * (p - low) / (peak - low)
	}
	if high == peak {
		return amp
	}
	return amp * (high - p) / (high - peak)
}
