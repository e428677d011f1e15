package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"ai-style-review-be/internal/pkg/logger"
)

const DefaultKeyPrefix = "style:quota"

// RedisTracker shares the daily budget between replicas. Each UTC day has
// its own key that expires at the following midnight. Redis errors deny the
// request.
type RedisTracker struct {
	client   redis.Cmdable
	capacity int
	prefix   string
	now      Clock
	logger   logger.ILogger
}

func NewRedisTracker(client redis.Cmdable, capacity int, prefix string, now Clock, log logger.ILogger) *RedisTracker {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	if now == nil {
		now = time.Now
	}
	return &RedisTracker{client: client, capacity: capacity, prefix: prefix, now: now, logger: log}
}

func (t *RedisTracker) key(now time.Time) string {
	return fmt.Sprintf("%s:%s", t.prefix, now.UTC().Format("2006-01-02"))
}

func (t *RedisTracker) TryConsume(ctx context.Context) bool {
	if t.capacity <= 0 {
		return false
	}
	now := t.now()
	key := t.key(now)

	used, err := t.client.Incr(ctx, key).Result()
	if err != nil {
		t.logger.Warn("QUOTA", "Redis increment failed, denying", map[string]interface{}{"error": err.Error()})
		return false
	}
	if used == 1 {
		if err := t.client.ExpireAt(ctx, key, NextReset(now)).Err(); err != nil {
			t.logger.Warn("QUOTA", "Failed to set quota key expiry", map[string]interface{}{"error": err.Error()})
		}
	}
	if used > int64(t.capacity) {
		if err := t.client.Decr(ctx, key).Err(); err != nil {
			t.logger.Warn("QUOTA", "Failed to roll back quota overflow", map[string]interface{}{"error": err.Error()})
		}
		return false
	}
	return true
}

func (t *RedisTracker) State(ctx context.Context) (State, error) {
	now := t.now()
	state := State{Capacity: t.capacity, ResetAt: NextReset(now)}
	used, err := t.client.Get(ctx, t.key(now)).Int()
	if errors.Is(err, redis.Nil) {
		return state, nil
	}
	if err != nil {
		return state, fmt.Errorf("read quota: %w", err)
	}
	state.Used = min(used, t.capacity)
	return state, nil
}
