package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ChipSentinel/internal/collector"
	"ChipSentinel/internal/config"
	"ChipSentinel/internal/notifier"
	"ChipSentinel/internal/scheduler"
	"ChipSentinel/internal/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] ChipSentinel starting...")

	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("[FATAL] load .env: %v", err)
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Upstream bar source
	var source collector.Fetcher
	switch {
	case cfg.DataSource.BaseURL != "":
		source = collector.NewRESTFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	case cfg.DataSource.CSVPath != "":
		source = collector.NewCSVFetcher(cfg.DataSource.CSVPath, cfg.DataSource.CSVEncoding)
	default:
		source = collector.NewYahooFetcher(cfg.Proxy, cfg.DataSource.FloatShares)
	}
	log.Printf("[INFO] data source: %s", source.Name())

	// Bar store; snapshots read from it when available
	var st store.Store = store.NewNoopStore()
	compute := source
	if sq, err := store.NewSQLiteStore(cfg.Database.SQLitePath); err != nil {
		log.Printf("[WARN] init sqlite store failed, computing from %s directly: %v", source.Name(), err)
	} else {
		st, compute = sq, sq
		defer sq.Close()
	}

	col := collector.NewCollector(compute, cfg.DataSource.Symbol, cfg.Chip, cfg.DataSource.HistoryDays)
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(ctx, source, col, st, tn)
	if err := sched.RegisterAll(cfg.Schedule.SyncCron, cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, executing daily task now")
		go sched.RunDailyNow()
	}

	log.Printf("[INFO] ChipSentinel is running for %s (factor=%d range=%d days=%d). Press Ctrl+C to stop.",
		cfg.DataSource.Symbol, cfg.Chip.AccuracyFactor, cfg.Chip.Range, cfg.Chip.TradingDays)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] ChipSentinel stopped")
}
