package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// redisKeyPrefix namespaces the limiter's sorted sets.
const redisKeyPrefix = "doodle:ratelimit:"

// RedisStore keeps per-client request windows in redis sorted sets, scored
// by request time. It lets multiple API instances share one limit state.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a RedisStore over an existing redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Ensure RedisStore implements the Store interface
var _ Store = (*RedisStore)(nil)

// Admit implements Store.Admit. Expired members are removed and the window
// counted in one transaction; the request is recorded only when admitted.
// The count-then-add pair is not atomic across instances, so a burst split
// between instances can admit slightly over the limit. That overshoot is
// accepted; the limiter is an abuse guard, not an accounting system.
func (s *RedisStore) Admit(
	ctx context.Context,
	clientID string,
	now time.Time,
	limit int,
	window time.Duration,
) (bool, error) {
	key := redisKeyPrefix + clientID
	windowStart := now.Add(-window)

	pipe := s.client.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", strconv.FormatInt(windowStart.UnixNano(), 10))
	card := pipe.ZCard(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to read rate limit window: %w", err)
	}

	if card.Val() >= int64(limit) {
		return false, nil
	}

	record := s.client.TxPipeline()
	record.ZAdd(ctx, key, &redis.Z{
		Score: float64(now.UnixNano()),
		// A unique member per request; two requests in the same nanosecond
		// must still count twice.
		Member: uuid.NewString(),
	})
	record.Expire(ctx, key, window)
	if _, err := record.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to record rate limit entry: %w", err)
	}

	return true, nil
}
