package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"ChipSentinel/internal/collector"
	"ChipSentinel/internal/model"
	"ChipSentinel/internal/notifier"
	"ChipSentinel/internal/store"
)

const histogramRows = 20

// Sender delivers a formatted message.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Scheduler manages all cron tasks.
type Scheduler struct {
	Cron      *cron.Cron
	Source    collector.Fetcher
	Collector *collector.Collector
	Store     store.Store
	Notifier  Sender
	Ctx       context.Context
}

// NewScheduler creates a new Scheduler. source is the upstream bar feed synced
// into st; col computes snapshots, typically reading from st.
func NewScheduler(ctx context.Context, source collector.Fetcher, col *collector.Collector, st store.Store, n Sender) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Source:    source,
		Collector: col,
		Store:     st,
		Notifier:  n,
		Ctx:       ctx,
	}
}

// RegisterAll registers the bar sync and daily report tasks.
func (s *Scheduler) RegisterAll(syncCron, dailyCron string) error {
	if _, err := s.Cron.AddFunc(syncCron, func() { s.runTask("sync", s.syncTask) }); err != nil {
		return fmt.Errorf("register sync task: %w", err)
	}
	if _, err := s.Cron.AddFunc(dailyCron, func() { s.runTask("daily", s.dailyTask) }); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily task immediately (for RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.runTask("daily", s.dailyTask)
}

func (s *Scheduler) runTask(name string, task func(runID string) error) {
	runID := uuid.NewString()
	log.Printf("[INFO] running %s task run=%s", name, runID)
	if err := task(runID); err != nil {
		log.Printf("[ERROR] %s task run=%s: %v", name, runID, err)
	}
}

// SyncBars pulls bars from the upstream source into the store.
func (s *Scheduler) SyncBars() (int, error) {
	sym := s.Collector.Symbol
	bars, err := s.Source.FetchDailyBars(sym, s.Collector.HistoryDays)
	if err != nil {
		return 0, fmt.Errorf("fetch %s from %s: %w", sym, s.Source.Name(), err)
	}
	n, err := s.Store.SaveBars(sym, bars)
	if err != nil {
		return 0, fmt.Errorf("save %s bars: %w", sym, err)
	}
	return n, nil
}

func (s *Scheduler) syncTask(runID string) error {
	n, err := s.SyncBars()
	if err != nil {
		return err
	}
	log.Printf("[INFO] sync run=%s stored %d bars for %s", runID, n, s.Collector.Symbol)
	return nil
}

func (s *Scheduler) dailyTask(runID string) error {
	if err := s.syncTask(runID); err != nil {
		log.Printf("[WARN] daily run=%s sync failed, using stored bars: %v", runID, err)
	}
	snap, err := s.Collector.Collect()
	if err != nil {
		s.trySend(fmt.Sprintf("❌ 筹码分布计算失败: %v", err))
		return err
	}
	s.trySend(notifier.FormatChipReport(snap))
	return nil
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string, args []string) string {
	switch command {
	case "/chip", "筹码分布":
		snap, err := s.snapshotFor(args)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return notifier.FormatChipReport(snap)
	case "/hist", "筹码直方图":
		snap, err := s.snapshotFor(args)
		if err != nil {
			return fmt.Sprintf("❌ %v", err)
		}
		return notifier.FormatChipReport(snap) + "\n" + notifier.FormatHistogram(snap, histogramRows)
	case "/sync", "同步":
		n, err := s.SyncBars()
		if err != nil {
			return fmt.Sprintf("❌ 同步失败: %v", err)
		}
		return fmt.Sprintf("✅ 已同步 %s %d 根日K线", s.Collector.Symbol, n)
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) snapshotFor(args []string) (*model.DistributionSnapshot, error) {
	offset := 0
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return nil, fmt.Errorf("偏移必须是非负整数: %q", args[0])
		}
		offset = n
	}
	return s.Collector.CollectAt(offset)
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
