package model

import "time"

// Band is a symmetric percentile band of the chip distribution.
type Band struct {
	Percent       float64 `json:"percent"`
	Low           float64 `json:"low"`
	High          float64 `json:"high"`
	Concentration float64 `json:"concentration"` // (High-Low)/(High+Low)
}

// DistributionSnapshot is the immutable result of one chip distribution query.
// Prices and Chips are parallel arrays indexed by grid bucket.
type DistributionSnapshot struct {
	Symbol       string    `json:"symbol,omitempty"`
	Date         time.Time `json:"date"`
	Days         int       `json:"days"`
	Requested    int       `json:"requested"`
	Partial      bool      `json:"partial"`
	MinPrice     float64   `json:"min_price"`
	MaxPrice     float64   `json:"max_price"`
	Accuracy     float64   `json:"accuracy"`
	CurrentPrice float64   `json:"current_price"`
	Prices       []float64 `json:"prices"`
	Chips        []float64 `json:"chips"`
	Boundary     int       `json:"boundary"`
	TotalChips   float64   `json:"total_chips"`
	BenefitPart  float64   `json:"benefit_part"`
	AvgCost      float64   `json:"avg_cost"`
	Percent90    Band      `json:"percent_90"`
	Percent70    Band      `json:"percent_70"`
}
