package model

import "time"

// Bar represents a single daily candlestick with turnover.
type Bar struct {
	Date     time.Time `json:"date"`
	Open     float64   `json:"open"`
	High     float64   `json:"high"`
	Low      float64   `json:"low"`
	Close    float64   `json:"close"`
	Volume   float64   `json:"volume"`
	Turnover float64   `json:"turnover"` // percent of floating shares traded, 0 ~ 100
}

// BarSeries holds an ordered run of daily bars for one security.
type BarSeries struct {
	Symbol    string
	Bars      []Bar
	FetchedAt time.Time
}

// Last returns the most recent bar and false when the series is empty.
func (s *BarSeries) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}
