package ratings

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/scoutai/predict-api/internal/models"
)

// DefaultServeTTL bounds how stale a cached rating may be on the
// serving path. The batch pipeline uses an unbounded store instead:
// within one run a resolved rating never changes, so per-run
// memoization is all the consistency it needs.
const DefaultServeTTL = 10 * time.Minute

// Store is the cache backend. Get returns (rating, true) on a fresh
// entry; rating may be nil, because "not found" results are cached
// negatively to stop repeated failing calls for a dead team-event pair.
// A stale or missing entry returns false.
type Store interface {
	Get(ctx context.Context, key string) (*models.TeamRating, bool)
	Set(ctx context.Context, key string, rating *models.TeamRating)
}

// Fetcher resolves a rating on cache miss.
type Fetcher interface {
	Fetch(ctx context.Context, team int, eventKey string) *models.TeamRating
}

// CacheConfig configures a Cache. Limiter is optional and only set by
// the batch pipeline.
type CacheConfig struct {
	Fetcher Fetcher
	Store   Store
	Limiter *Limiter
	Logger  *zap.Logger
}

// Cache memoizes rating fetches keyed by (team, event). Concurrent
// lookups for the same key are collapsed into a single in-flight fetch
// so the read-check-fetch-write sequence never races per key.
type Cache struct {
	fetcher Fetcher
	store   Store
	limiter *Limiter
	group   singleflight.Group
	logger  *zap.SugaredLogger
}

// NewCache creates a rating cache.
func NewCache(cfg CacheConfig) *Cache {
	return &Cache{
		fetcher: cfg.Fetcher,
		store:   cfg.Store,
		limiter: cfg.Limiter,
		logger:  cfg.Logger.Sugar(),
	}
}

// GetOrFetch returns the rating for (team, eventKey), fetching and
// caching it on a miss. A nil result means the rating is absent, which
// may itself be a cached answer.
func (c *Cache) GetOrFetch(ctx context.Context, team int, eventKey string) *models.TeamRating {
	key := fmt.Sprintf("%d-%s", team, eventKey)

	if rating, ok := c.store.Get(ctx, key); ok {
		cacheHits.Inc()
		return rating
	}
	cacheMisses.Inc()

	v, _, _ := c.group.Do(key, func() (interface{}, error) {
		// A waiter that piled up behind the winning flight re-reads the
		// store; the winner has already written by the time it returns.
		if rating, ok := c.store.Get(ctx, key); ok {
			return rating, nil
		}

		if c.limiter != nil {
			if err := c.limiter.Throttle(ctx); err != nil {
				c.logger.Warnw("Throttle interrupted", "team", team, "event", eventKey, "error", err)
				return (*models.TeamRating)(nil), nil
			}
		}

		rating := c.fetcher.Fetch(ctx, team, eventKey)
		c.store.Set(ctx, key, rating)
		return rating, nil
	})

	rating, _ := v.(*models.TeamRating)
	return rating
}

// memoryEntry holds one cached resolution. Rating nil = cached absence.
type memoryEntry struct {
	rating    *models.TeamRating
	fetchedAt time.Time
}

// MemoryStore is an in-process Store. TTL 0 means entries never expire
// (batch memoization); a positive TTL makes stale entries read as
// misses, checked lazily on lookup. There is no background sweep.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]memoryEntry
}

// NewMemoryStore creates a memory store. A nil clock uses time.Now;
// tests inject a fake clock to exercise TTL behavior without sleeping.
func NewMemoryStore(ttl time.Duration, clock func() time.Time) *MemoryStore {
	if clock == nil {
		clock = time.Now
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     clock,
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*models.TeamRating, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && s.now().Sub(e.fetchedAt) >= s.ttl {
		delete(s.entries, key)
		return nil, false
	}
	return e.rating, true
}

func (s *MemoryStore) Set(_ context.Context, key string, rating *models.TeamRating) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{rating: rating, fetchedAt: s.now()}
}
