package chips

import (
	"math"
	"time"

	"ChipSentinel/internal/model"
)

var day0 = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

// exampleBars is the three-day window used throughout the query tests.
func exampleBars() []model.Bar {
	return []model.Bar{
		{Date: day0, Open: 11, High: 15, Low: 10, Close: 12, Turnover: 50},
		{Date: day0.AddDate(0, 0, 1), Open: 13, High: 16, Low: 12, Close: 14, Turnover: 30},
		{Date: day0.AddDate(0, 0, 2), Open: 12, High: 14, Low: 11, Close: 13, Turnover: 20},
	}
}

// waveBars generates n deterministic bars oscillating around 20.
func waveBars(n int) []model.Bar {
	bars := make([]model.Bar, n)
	prev := 20.0
	for i := range bars {
		c := 20 + 3*math.Sin(float64(i)/15) + 0.5*math.Sin(float64(i)/3)
		bars[i] = model.Bar{
			Date:     day0.AddDate(0, 0, i),
			Open:     prev,
			High:     math.Max(prev, c) + 0.3,
			Low:      math.Min(prev, c) - 0.3,
			Close:    c,
			Turnover: 1 + 2*(1+math.Sin(float64(i)/7)),
		}
		prev = c
	}
	return bars
}

func sum(xs []float64) float64 {
	s := 0.0
	for _, x := range xs {
		s += x
	}
	return s
}
