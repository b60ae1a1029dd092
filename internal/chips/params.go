package chips

import "fmt"

// Defaults used across the service.
const (
	DefaultAccuracyFactor = 150
	DefaultRange          = 120
	DefaultTradingDays    = 210
)

// Params configures a chip distribution query.
//
//   - AccuracyFactor: number of price buckets in the grid.
//   - Range: bars excluded from the end of the series before the window.
//   - TradingDays: lookback window length.
type Params struct {
	AccuracyFactor int `yaml:"accuracy_factor"`
	Range          int `yaml:"range"`
	TradingDays    int `yaml:"trading_days"`
}

// DefaultParams returns the 150 / 120 / 210 configuration.
func DefaultParams() Params {
	return Params{
		AccuracyFactor: DefaultAccuracyFactor,
		Range:          DefaultRange,
		TradingDays:    DefaultTradingDays,
	}
}

// Validate reports parameters the engine cannot work with.
func (p Params) Validate() error {
	if p.AccuracyFactor < 2 {
		return fmt.Errorf("%w: accuracy factor %d, need at least 2", ErrInvalidArgument, p.AccuracyFactor)
	}
	if p.TradingDays <= 0 {
		return fmt.Errorf("%w: trading days %d must be positive", ErrInvalidArgument, p.TradingDays)
	}
	return nil
}
