package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"eventhub/internal/domain"
)

// DefaultTTL bounds how long a cached result set may be served.
const DefaultTTL = 60 * time.Second

// Store executes a compiled filter against the event store.
type Store interface {
	Search(ctx context.Context, filter domain.EventFilter) ([]*domain.Event, error)
}

// Searcher serves event searches from a result cache, falling back to the
// store on a miss. Any cache failure degrades to a miss; it never fails the search.
type Searcher struct {
	store  Store
	cache  domain.ResultCache
	ttl    time.Duration
	logger *slog.Logger
}

// NewSearcher returns a Searcher. A nil cache disables caching; ttl <= 0 uses DefaultTTL.
func NewSearcher(store Store, cache domain.ResultCache, ttl time.Duration, logger *slog.Logger) *Searcher {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{store: store, cache: cache, ttl: ttl, logger: logger}
}

// Search returns the events matching params.
func (s *Searcher) Search(ctx context.Context, params domain.SearchParams) ([]*domain.Event, error) {
	key := CacheKey(params)

	if events, ok := s.lookup(ctx, key); ok {
		return events, nil
	}

	events, err := s.store.Search(ctx, Compile(params))
	if err != nil {
		return nil, fmt.Errorf("search events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}

	s.populate(ctx, key, events)
	return events, nil
}

func (s *Searcher) lookup(ctx context.Context, key string) ([]*domain.Event, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		s.logger.WarnContext(ctx, "search cache get failed", "key", key, "err", err)
		return nil, false
	}
	if !found {
		s.logger.DebugContext(ctx, "search cache miss", "key", key)
		return nil, false
	}
	var events []*domain.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		s.logger.WarnContext(ctx, "search cache entry undecodable", "key", key, "err", err)
		return nil, false
	}
	s.logger.DebugContext(ctx, "search cache hit", "key", key, "count", len(events))
	return events, true
}

func (s *Searcher) populate(ctx context.Context, key string, events []*domain.Event) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(events)
	if err != nil {
		s.logger.WarnContext(ctx, "search cache encode failed", "key", key, "err", err)
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "search cache set failed", "key", key, "err", err)
	}
}
