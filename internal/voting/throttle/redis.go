package throttle

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "votecast:throttle:"

// slidingWindowScript keeps one sorted-set member per admitted event, scored
// by its time in milliseconds. It returns {allowed, count, oldestScore}.
var slidingWindowScript = redis.NewScript(`
redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", ARGV[1] - ARGV[2])
local count = redis.call("ZCARD", KEYS[1])
local oldest = redis.call("ZRANGE", KEYS[1], 0, 0, "WITHSCORES")
if count >= tonumber(ARGV[3]) then
	return {0, count, oldest[2]}
end
redis.call("ZADD", KEYS[1], ARGV[1], ARGV[4])
redis.call("PEXPIRE", KEYS[1], ARGV[2])
if count == 0 then
	return {1, 1, ARGV[1]}
end
return {1, count + 1, oldest[2]}
`)

// RedisSlidingWindow is the shared-state SlidingWindow for deployments with
// more than one replica. Keys expire with the window, so there is nothing to
// sweep.
type RedisSlidingWindow struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

type RedisOption func(*RedisSlidingWindow)

func WithRedisClock(now func() time.Time) RedisOption {
	return func(s *RedisSlidingWindow) {
		if now != nil {
			s.now = now
		}
	}
}

// NewRedis returns a throttle backed by client. A non-positive limit
// disables throttling.
func NewRedis(client *redis.Client, limit int, window time.Duration, opts ...RedisOption) *RedisSlidingWindow {
	s := &RedisSlidingWindow{client: client, limit: limit, window: window, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisSlidingWindow) Allow(ctx context.Context, key string) (Result, error) {
	if s.limit <= 0 {
		return Result{Allowed: true, Remaining: -1}, nil
	}

	now := s.now()
	raw, err := slidingWindowScript.Run(ctx, s.client, []string{redisKeyPrefix + key},
		now.UnixMilli(), s.window.Milliseconds(), s.limit, uuid.NewString(),
	).Slice()
	if err != nil {
		return Result{}, fmt.Errorf("throttle %s: %w", key, err)
	}
	if len(raw) != 3 {
		return Result{}, fmt.Errorf("throttle %s: unexpected reply %v", key, raw)
	}

	allowed, _ := raw[0].(int64)
	count, _ := raw[1].(int64)
	oldestMs, err := parseScore(raw[2])
	if err != nil {
		return Result{}, fmt.Errorf("throttle %s: %w", key, err)
	}
	resetAt := time.UnixMilli(oldestMs).Add(s.window).In(now.Location())

	if allowed == 0 {
		return Result{Allowed: false, ResetAt: resetAt}, nil
	}
	return Result{Allowed: true, Remaining: s.limit - int(count), ResetAt: resetAt}, nil
}

// Sweep is a no-op; Redis expires idle keys.
func (s *RedisSlidingWindow) Sweep() int { return 0 }

func parseScore(v any) (int64, error) {
	switch score := v.(type) {
	case int64:
		return score, nil
	case string:
		f, err := strconv.ParseFloat(score, 64)
		if err != nil {
			return 0, fmt.Errorf("parse score %q: %w", score, err)
		}
		return int64(f), nil
	default:
		return 0, fmt.Errorf("unexpected score type %T", v)
	}
}
