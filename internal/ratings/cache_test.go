package ratings

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/scoutai/predict-api/internal/models"
)

// countingFetcher counts fetches and serves canned ratings.
type countingFetcher struct {
	mu      sync.Mutex
	calls   int
	ratings map[string]*models.TeamRating
	block   chan struct{} // when non-nil, Fetch waits until closed
}

func (f *countingFetcher) Fetch(_ context.Context, team int, eventKey string) *models.TeamRating {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.ratings[eventKey]
}

func (f *countingFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestCacheTTL(t *testing.T) {
	now := time.Unix(1700000000, 0)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(d)
	}

	fetcher := &countingFetcher{ratings: map[string]*models.TeamRating{
		"2024test": {TeamNumber: 254, EventKey: "2024test", Total: 80},
	}}
	cache := NewCache(CacheConfig{
		Fetcher: fetcher,
		Store:   NewMemoryStore(10*time.Minute, clock),
		Logger:  zap.NewNop(),
	})
	ctx := context.Background()

	// Two lookups within the TTL hit the client exactly once.
	if r := cache.GetOrFetch(ctx, 254, "2024test"); r == nil || r.Total != 80 {
		t.Fatalf("unexpected rating %+v", r)
	}
	if r := cache.GetOrFetch(ctx, 254, "2024test"); r == nil || r.Total != 80 {
		t.Fatalf("unexpected rating %+v", r)
	}
	if got := fetcher.callCount(); got != 1 {
		t.Fatalf("expected 1 fetch within TTL, got %d", got)
	}

	// After the TTL elapses the entry reads as a miss and is refetched.
	advance(10 * time.Minute)
	cache.GetOrFetch(ctx, 254, "2024test")
	if got := fetcher.callCount(); got != 2 {
		t.Fatalf("expected refetch after TTL, got %d fetches", got)
	}
}

func TestCacheNegativeCaching(t *testing.T) {
	fetcher := &countingFetcher{ratings: map[string]*models.TeamRating{}}
	cache := NewCache(CacheConfig{
		Fetcher: fetcher,
		Store:   NewMemoryStore(10*time.Minute, nil),
		Logger:  zap.NewNop(),
	})
	ctx := context.Background()

	// An absent rating is cached like a present one: the dead pair is
	// not refetched within the TTL window.
	for i := 0; i < 3; i++ {
		if r := cache.GetOrFetch(ctx, 9999, "2024nope"); r != nil {
			t.Fatalf("expected absent rating, got %+v", r)
		}
	}
	if got := fetcher.callCount(); got != 1 {
		t.Fatalf("expected 1 fetch for cached absence, got %d", got)
	}
}

func TestCacheUnboundedMemoization(t *testing.T) {
	now := time.Unix(1700000000, 0)
	clock := func() time.Time { return now }

	fetcher := &countingFetcher{ratings: map[string]*models.TeamRating{
		"2023roll": {TeamNumber: 118, EventKey: "2023roll", Total: 55},
	}}
	cache := NewCache(CacheConfig{
		Fetcher: fetcher,
		Store:   NewMemoryStore(0, clock), // batch mode: no expiry
		Logger:  zap.NewNop(),
	})
	ctx := context.Background()

	cache.GetOrFetch(ctx, 118, "2023roll")
	now = now.Add(1000 * time.Hour)
	cache.GetOrFetch(ctx, 118, "2023roll")

	if got := fetcher.callCount(); got != 1 {
		t.Fatalf("batch store must never expire, got %d fetches", got)
	}
}

func TestCacheConcurrentLookupsSingleFetch(t *testing.T) {
	fetcher := &countingFetcher{
		ratings: map[string]*models.TeamRating{
			"2024conc": {TeamNumber: 1678, EventKey: "2024conc", Total: 70},
		},
		block: make(chan struct{}),
	}
	cache := NewCache(CacheConfig{
		Fetcher: fetcher,
		Store:   NewMemoryStore(10*time.Minute, nil),
		Logger:  zap.NewNop(),
	})
	ctx := context.Background()

	const n = 16
	var started, done sync.WaitGroup
	var nonNil atomic.Int32
	started.Add(n)
	done.Add(n)
	for i := 0; i < n; i++ {
		go func() {
			started.Done()
			if r := cache.GetOrFetch(ctx, 1678, "2024conc"); r != nil {
				nonNil.Add(1)
			}
			done.Done()
		}()
	}

	started.Wait()
	close(fetcher.block) // release the single in-flight fetch
	done.Wait()

	if got := fetcher.callCount(); got != 1 {
		t.Fatalf("concurrent lookups for one key must share one fetch, got %d", got)
	}
	if nonNil.Load() != n {
		t.Fatalf("expected all %d lookups to resolve, got %d", n, nonNil.Load())
	}
}
