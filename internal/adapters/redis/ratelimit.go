package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/product-service/internal/adapters/http/middleware"
)

// Fixed window counter. Returns the request count and the window's
// remaining lifetime in milliseconds.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('PTTL', KEYS[1])}
`)

type RateLimiter struct {
	client *Client
}

func NewRateLimiter(client *Client) middleware.RateLimiter {
	return &RateLimiter{client: client}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (middleware.RateLimitDecision, error) {
	redisKey := keyNamespace + ":ratelimit:" + key
	res, err := rateLimitScript.Run(ctx, r.client.rdb, []string{redisKey}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return middleware.RateLimitDecision{}, err
	}

	count, ttl := int(res[0]), time.Duration(res[1])*time.Millisecond
	if ttl < 0 {
		ttl = window
	}

	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	decision := middleware.RateLimitDecision{
		Allowed:   count <= limit,
		Limit:     limit,
		Remaining: remaining,
	}
	if !decision.Allowed {
		decision.RetryAfter = ttl
	}
	return decision, nil
}
