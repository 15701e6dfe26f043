package history

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/nao1215/calcsite/internal/model"
)

// MemoryStore is an in-process Store. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]model.HistoryEntry
	limit   int
	now     func() time.Time
}

// NewMemoryStore creates a MemoryStore keeping limit entries per calculator.
func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string][]model.HistoryEntry),
		limit:   normalizeLimit(limit),
		now:     time.Now,
	}
}

// Load returns copies of the stored entries, newest first.
func (s *MemoryStore) Load(_ context.Context, calculatorID string) ([]model.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.entries[calculatorID]
	out := make([]model.HistoryEntry, len(stored))
	for i, e := range stored {
		out[i] = clone(e)
	}
	return out, nil
}

// Save prepends the entry and trims the calculator's history to the limit.
func (s *MemoryStore) Save(_ context.Context, entry *model.HistoryEntry) error {
	if err := prepare(entry, s.now); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := append([]model.HistoryEntry{clone(*entry)}, s.entries[entry.CalculatorID]...)
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if len(list) > s.limit {
		list = list[:s.limit]
	}
	s.entries[entry.CalculatorID] = list
	return nil
}

// Clear removes the history of a calculator.
func (s *MemoryStore) Clear(_ context.Context, calculatorID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, calculatorID)
	return nil
}

// Close is a no-op.
func (s *MemoryStore) Close() error {
	return nil
}

func clone(e model.HistoryEntry) model.HistoryEntry {
	e.Inputs = maps.Clone(e.Inputs)
	e.Outputs = maps.Clone(e.Outputs)
	return e
}
