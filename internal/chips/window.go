package chips

import (
	"fmt"

	"ChipSentinel/internal/model"
)

// Window is the contiguous slice of bars replayed by one query.
// Bars aliases the caller's slice and must be treated as read-only.
type Window struct {
	Bars      []model.Bar
	Requested int
}

// Partial reports whether fewer than the requested trading days were available.
func (w Window) Partial() bool { return len(w.Bars) < w.Requested }

// Last returns the anchor bar of the window.
func (w Window) Last() model.Bar { return w.Bars[len(w.Bars)-1] }

// SelectWindow returns bars[end-tradingDays : end] where end = idx-rng+1.
// idx is 0-based. When fewer than tradingDays bars precede end, all of them
// are used; Window.Partial reports that case.
func SelectWindow(bars []model.Bar, idx, rng, tradingDays int) (Window, error) {
	if tradingDays <= 0 {
		return Window{}, fmt.Errorf("%w: trading days %d must be positive", ErrInvalidArgument, tradingDays)
	}
	n := len(bars)
	end := idx - rng + 1
	if end > n {
		end = n
	}
	if end <= 0 {
		return Window{}, fmt.Errorf("%w: idx=%d range=%d over %d bars", ErrEmptyWindow, idx, rng, n)
	}

	start := end - tradingDays
	if start < 0 {
		start = 0
	}
	return Window{Bars: bars[start:end], Requested: tradingDays}, nil
}
