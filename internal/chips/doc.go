// Package chips estimates the chip distribution (cost-basis histogram) of a
// security from its daily bars.
//
// A query runs three stages over a freshly allocated mass array:
//
//	SelectWindow  picks the lookback slice of bars ending at the analysis point
//	BuildGrid     lays a uniform price axis over the window's low..high range
//	Replay        walks the window day by day, decaying held chips by turnover
//	              and injecting the day's turnover as a triangular density
//
// The resulting Distribution answers cost, band and profit-ratio queries and
// packs them into a model.DistributionSnapshot. Nothing is shared between
// calls, so Compute is safe for concurrent use over the same bar slice.
package chips
