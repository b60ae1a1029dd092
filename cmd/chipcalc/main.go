// Command chipcalc prints the chip distribution of one security computed
// from a CSV export or the SQLite bar store.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"ChipSentinel/internal/chips"
	"ChipSentinel/internal/collector"
	"ChipSentinel/internal/model"
	"ChipSentinel/internal/notifier"
	"ChipSentinel/internal/store"
)

func main() {
	log.SetFlags(0)

	defaults := chips.DefaultParams()
	var (
		csvPath  = flag.String("csv", "", "daily bar CSV export")
		encoding = flag.String("encoding", "utf-8", "CSV encoding: utf-8 or gbk")
		dbPath   = flag.String("db", "", "SQLite bar store (used when -csv is empty)")
		symbol   = flag.String("symbol", "", "symbol to read from the store, also fills {symbol} in -csv")
		idx      = flag.Int("idx", -1, "0-based bar index of the analysis point (window ends range bars earlier), -1 for a window ending at the latest bar")
		rng      = flag.Int("range", defaults.Range, "bars excluded from the end before the window")
		days     = flag.Int("days", defaults.TradingDays, "lookback window in trading days")
		factor   = flag.Int("factor", defaults.AccuracyFactor, "number of price buckets")
		asJSON   = flag.Bool("json", false, "print the snapshot as JSON")
		rows     = flag.Int("rows", 20, "histogram rows in text output, 0 to disable")
	)
	flag.Parse()

	var src collector.Fetcher
	switch {
	case *csvPath != "":
		src = collector.NewCSVFetcher(*csvPath, *encoding)
	case *dbPath != "":
		sq, err := store.NewSQLiteStore(*dbPath)
		if err != nil {
			log.Fatalf("[FATAL] open store: %v", err)
		}
		defer sq.Close()
		src = sq
	default:
		flag.Usage()
		os.Exit(2)
	}

	bars, err := src.FetchDailyBars(*symbol, 1<<20)
	if err != nil {
		log.Fatalf("[FATAL] load bars: %v", err)
	}
	params := chips.Params{AccuracyFactor: *factor, Range: *rng, TradingDays: *days}
	var snap *model.DistributionSnapshot
	if *idx < 0 {
		snap, err = chips.ComputeLatest(bars, params)
	} else {
		snap, err = chips.Compute(bars, *idx, params)
	}
	if err != nil {
		log.Fatalf("[FATAL] compute: %v", err)
	}
	snap.Symbol = *symbol
	if snap.Partial {
		log.Printf("[WARN] only %d of %d trading days available", snap.Days, snap.Requested)
	}

	if err := render(os.Stdout, snap, *asJSON, *rows); err != nil {
		log.Fatalf("[FATAL] write output: %v", err)
	}
}

func render(w io.Writer, snap *model.DistributionSnapshot, asJSON bool, rows int) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	out := notifier.FormatChipReport(snap)
	if rows > 0 {
		out += "\n" + notifier.FormatHistogram(snap, rows)
	}
	_, err := fmt.Fprintln(w, out)
	return err
}
