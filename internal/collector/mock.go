package collector

import (
	"math"
	"time"

	"ChipSentinel/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	Turnover  float64
	DailyData []model.Bar
	Err       error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ string, days int) ([]model.Bar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.DailyData != nil {
		if len(m.DailyData) > days {
			return m.DailyData[len(m.DailyData)-days:], nil
		}
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, m.Turnover, days), nil
}

// generateMockBars produces a gentle wave around basePrice ending yesterday.
func generateMockBars(basePrice, turnover float64, count int) []model.Bar {
	if turnover == 0 {
		turnover = 2
	}
	end := time.Now().Truncate(24 * time.Hour)
	bars := make([]model.Bar, count)
	prev := basePrice
	for i := 0; i < count; i++ {
		p := basePrice * (1 + 0.05*math.Sin(float64(i)/10))
		bars[i] = model.Bar{
			Date:     end.AddDate(0, 0, -(count - i)),
			Open:     prev,
			High:     math.Max(prev, p) * 1.005,
			Low:      math.Min(prev, p) * 0.995,
			Close:    p,
			Volume:   1000000,
			Turnover: turnover,
		}
		prev = p
	}
	return bars
}
