package idempotency

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a redis-backed once-per-key guard.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Claim reports whether the caller is the first to see key within the TTL.
// Later callers for the same key get false until the claim expires.
func (s *Store) Claim(ctx context.Context, key string) (bool, error) {
	return s.rdb.SetNX(ctx, key, "1", s.ttl).Result()
}
