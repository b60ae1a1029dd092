package store

import "ChipSentinel/internal/model"

// Store persists the historical daily bars the engine replays.
type Store interface {
	SaveBars(symbol string, bars []model.Bar) (int, error)
	Close() error
}

// NoopStore is a no-op implementation used when SQLite is not configured.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (n *NoopStore) SaveBars(_ string, _ []model.Bar) (int, error) { return 0, nil }
func (n *NoopStore) Close() error                                  { return nil }
