package ratings

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/scoutai/predict-api/internal/models"
)

// redisEntry is the JSON value stored per key. Found distinguishes a
// cached absence from a missing key.
type redisEntry struct {
	Found  bool               `json:"found"`
	Rating *models.TeamRating `json:"rating,omitempty"`
}

// RedisStore is a Store backed by Redis, for serving deployments where
// replicas should share one rating cache. Expiry is delegated to Redis
// via SET TTL, so stale entries simply vanish. Redis errors degrade to
// cache misses, never to request failures.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.SugaredLogger
}

// NewRedisStore creates a Redis-backed store with the given entry TTL.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: logger.Sugar(),
	}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*models.TeamRating, bool) {
	data, err := s.client.Get(ctx, "epa:"+key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warnw("Redis cache read failed", "key", key, "error", err)
		}
		return nil, false
	}

	return decodeEntry(data)
}

func (s *RedisStore) Set(ctx context.Context, key string, rating *models.TeamRating) {
	data, err := encodeEntry(rating)
	if err != nil {
		return
	}
	if err := s.client.Set(ctx, "epa:"+key, data, s.ttl).Err(); err != nil {
		s.logger.Warnw("Redis cache write failed", "key", key, "error", err)
	}
}

func encodeEntry(rating *models.TeamRating) ([]byte, error) {
	return json.Marshal(redisEntry{Found: true, Rating: rating})
}

// decodeEntry turns a stored value back into a cache hit. A nil rating
// with ok=true is a cached absence; corrupt or unmarked data reads as a
// miss.
func decodeEntry(data []byte) (*models.TeamRating, bool) {
	var e redisEntry
	if err := json.Unmarshal(data, &e); err != nil || !e.Found {
		return nil, false
	}
	return e.Rating, true
}
