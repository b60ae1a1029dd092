package collector

import "ChipSentinel/internal/model"

// Fetcher supplies chronologically ordered daily bars with turnover.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.Bar, error)
	Name() string
}
