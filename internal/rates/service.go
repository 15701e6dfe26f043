package rates

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultTTL is how long a fetched table is served before refreshing.
const DefaultTTL = time.Hour

// retryAfterFailure delays the next fetch after a failed one.
const retryAfterFailure = time.Minute

// Fetcher retrieves a fresh rate table. *Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context) (*Table, error)
}

// Service serves rate tables from a cache. It is safe for concurrent use.
type Service struct {
	fetcher Fetcher
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu        sync.Mutex
	current   *Table
	nextFetch time.Time
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithTTL sets the cache lifetime.
func WithTTL(ttl time.Duration) ServiceOption {
	return func(s *Service) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithLogger sets the logger for fetch failures.
func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a Service. A nil fetcher serves the static table only.
func NewService(fetcher Fetcher, opts ...ServiceOption) *Service {
	s := &Service{
		fetcher: fetcher,
		ttl:     DefaultTTL,
		logger:  slog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Table returns the current table, refreshing it when the cache expired.
// It never fails: on fetch errors the last good table is kept, or the
// static table is used when nothing was fetched yet.
func (s *Service) Table(ctx context.Context) *Table {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fetcher == nil {
		return Static()
	}

	now := s.now()
	if s.current != nil && now.Before(s.nextFetch) {
		return s.current.clone()
	}
	if s.current == nil && now.Before(s.nextFetch) {
		return Static()
	}

	t, err := s.fetcher.Fetch(ctx)
	if err != nil {
		s.logger.Warn("exchange rate refresh failed, using fallback table",
			"error", err,
			"cached", s.current != nil,
		)
		s.nextFetch = now.Add(min(retryAfterFailure, s.ttl))
		if s.current != nil {
			return s.current.clone()
		}
		return Static()
	}

	s.current = t
	s.nextFetch = now.Add(s.ttl)
	s.logger.Debug("exchange rates refreshed", "base", t.Base, "currencies", len(t.Rates))
	return t.clone()
}

// Rate returns the exchange rate between two currency codes.
func (s *Service) Rate(ctx context.Context, from, to string) (float64, error) {
	return s.Table(ctx).Rate(from, to)
}
