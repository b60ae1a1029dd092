package collector

import (
	"fmt"
	"log"

	"ChipSentinel/internal/chips"
	"ChipSentinel/internal/model"
)

// Collector orchestrates bar fetching and chip distribution computation.
type Collector struct {
	Fetcher     Fetcher
	Symbol      string
	Params      chips.Params
	HistoryDays int
}

// NewCollector creates a new Collector. historyDays <= 0 fetches just enough
// bars to fill one window.
func NewCollector(fetcher Fetcher, symbol string, params chips.Params, historyDays int) *Collector {
	if historyDays <= 0 {
		historyDays = params.Range + params.TradingDays
	}
	return &Collector{Fetcher: fetcher, Symbol: symbol, Params: params, HistoryDays: historyDays}
}

// FetchBars pulls the configured history from the fetcher.
func (c *Collector) FetchBars() ([]model.Bar, error) {
	bars, err := c.Fetcher.FetchDailyBars(c.Symbol, c.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars from %s: %w", c.Fetcher.Name(), err)
	}
	return bars, nil
}

// Collect fetches bars and computes the chip distribution at the latest bar.
func (c *Collector) Collect() (*model.DistributionSnapshot, error) {
	return c.CollectAt(0)
}

// CollectAt computes the distribution whose window ends offset bars before
// the latest one.
func (c *Collector) CollectAt(offset int) (*model.DistributionSnapshot, error) {
	bars, err := c.FetchBars()
	if err != nil {
		return nil, err
	}
	snap, err := chips.ComputeBack(bars, offset, c.Params)
	if err != nil {
		return nil, fmt.Errorf("compute chip distribution for %s: %w", c.Symbol, err)
	}
	snap.Symbol = c.Symbol
	if snap.Partial {
		log.Printf("[WARN] %s: only %d of %d trading days available for chip window", c.Symbol, snap.Days, snap.Requested)
	}
	return snap, nil
}
