package store

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"ChipSentinel/internal/model"
)

const dateLayout = "2006-01-02"

// SQLiteStore keeps daily bars per symbol in a SQLite database. It also
// serves as a collector.Fetcher so snapshots can be computed offline.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore opens (or creates) the SQLite database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets chart readers query while the bot syncs.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite bar store opened: %s", dbPath)
	return s, nil
}

func (s *SQLiteStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS daily_bars (
			symbol     TEXT    NOT NULL,
			trade_date TEXT    NOT NULL,
			open       REAL    NOT NULL,
			high       REAL    NOT NULL,
			low        REAL    NOT NULL,
			close      REAL    NOT NULL,
			volume     REAL,
			turnover   REAL    NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (symbol, trade_date)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bars_symbol_date ON daily_bars(symbol, trade_date DESC)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("exec %q: %w", stmt[:40], err)
		}
	}
	return nil
}

func (s *SQLiteStore) Name() string { return "sqlite" }

// SaveBars upserts bars keyed by (symbol, trade date) and returns the count written.
func (s *SQLiteStore) SaveBars(symbol string, bars []model.Bar) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO daily_bars
		(symbol, trade_date, open, high, low, close, volume, turnover, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT(symbol, trade_date) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low, close=excluded.close,
			volume=excluded.volume, turnover=excluded.turnover, updated_at=excluded.updated_at`)
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, b := range bars {
		if _, err := stmt.Exec(symbol, b.Date.Format(dateLayout),
			b.Open, b.High, b.Low, b.Close, b.Volume, b.Turnover, now); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("upsert %s %s: %w", symbol, b.Date.Format(dateLayout), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(bars), nil
}

// FetchDailyBars returns the most recent days bars for symbol, oldest first.
func (s *SQLiteStore) FetchDailyBars(symbol string, days int) ([]model.Bar, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT trade_date, open, high, low, close, volume, turnover
		FROM daily_bars WHERE symbol = ? ORDER BY trade_date DESC LIMIT ?`, symbol, days)
	if err != nil {
		return nil, fmt.Errorf("query bars: %w", err)
	}
	defer rows.Close()

	var bars []model.Bar
	for rows.Next() {
		var (
			date   string
			volume sql.NullFloat64
			b      model.Bar
		)
		if err := rows.Scan(&date, &b.Open, &b.High, &b.Low, &b.Close, &volume, &b.Turnover); err != nil {
			return nil, fmt.Errorf("scan bar: %w", err)
		}
		if b.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, fmt.Errorf("parse trade date %q: %w", date, err)
		}
		b.Volume = volume.Float64
		bars = append(bars, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("no bars stored for %s", symbol)
	}

	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

// Symbols lists the symbols with stored bars.
func (s *SQLiteStore) Symbols() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT DISTINCT symbol FROM daily_bars ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("query symbols: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var sym string
		if err := rows.Scan(&sym); err != nil {
			return nil, err
		}
		out = append(out, sym)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite bar store")
	return s.db.Close()
}
