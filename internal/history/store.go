package history

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nao1215/calcsite/internal/model"
)

// DefaultLimit is the number of entries kept per calculator.
const DefaultLimit = 10

// ErrInvalidEntry is returned when an entry has no calculator ID.
var ErrInvalidEntry = errors.New("invalid history entry")

// Store persists calculation history per calculator.
type Store interface {
	// Load returns the entries of a calculator, newest first.
	Load(ctx context.Context, calculatorID string) ([]model.HistoryEntry, error)

	// Save stores an entry and drops the oldest ones beyond the limit.
	// A missing ID or timestamp is filled in.
	Save(ctx context.Context, entry *model.HistoryEntry) error

	// Clear removes every entry of a calculator.
	Clear(ctx context.Context, calculatorID string) error

	// Close releases the store's resources.
	Close() error
}

// prepare validates an entry and fills in its ID and timestamp.
func prepare(entry *model.HistoryEntry, now func() time.Time) error {
	if entry == nil || entry.CalculatorID == "" {
		return fmt.Errorf("%w: calculator id is required", ErrInvalidEntry)
	}
	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate history id: %w", err)
		}
		entry.ID = id.String()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now().UTC()
	}
	return nil
}

// normalizeLimit applies DefaultLimit to non-positive limits.
func normalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	return limit
}
