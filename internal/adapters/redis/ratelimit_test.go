package redis_test

import (
	"context"
	"testing"
	"time"

	adaptredis "github.com/rafaelleal24/product-service/internal/adapters/redis"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := adaptredis.NewRateLimiter(testClient)
	ctx := context.Background()

	t.Run("allows requests under limit", func(t *testing.T) {
		key := "rate-test-under"
		for i := 0; i < 3; i++ {
			decision, err := rl.Allow(ctx, key, 5, 1*time.Minute)
			if err != nil {
				t.Fatalf("request %d: expected no error, got %v", i, err)
			}
			if !decision.Allowed {
				t.Fatalf("request %d: expected to be allowed", i)
			}
			if decision.Remaining != 5-(i+1) {
				t.Fatalf("request %d: expected %d remaining, got %d", i, 5-(i+1), decision.Remaining)
			}
		}
	})

	t.Run("blocks requests over limit", func(t *testing.T) {
		key := "rate-test-over"
		limit := 2
		for i := 0; i < limit; i++ {
			_, _ = rl.Allow(ctx, key, limit, 1*time.Minute)
		}

		decision, err := rl.Allow(ctx, key, limit, 1*time.Minute)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if decision.Allowed {
			t.Fatal("expected request to be blocked (over limit)")
		}
		if decision.Remaining != 0 {
			t.Fatalf("expected 0 remaining, got %d", decision.Remaining)
		}
		if decision.RetryAfter <= 0 || decision.RetryAfter > time.Minute {
			t.Fatalf("expected retry-after within the window, got %v", decision.RetryAfter)
		}
	})

	t.Run("window expires and resets count", func(t *testing.T) {
		key := "rate-test-expire"
		limit := 1
		window := 500 * time.Millisecond

		decision, _ := rl.Allow(ctx, key, limit, window)
		if !decision.Allowed {
			t.Fatal("first request should be allowed")
		}

		decision, _ = rl.Allow(ctx, key, limit, window)
		if decision.Allowed {
			t.Fatal("second request should be blocked")
		}

		time.Sleep(time.Second)

		decision, _ = rl.Allow(ctx, key, limit, window)
		if !decision.Allowed {
			t.Fatal("request after window should be allowed again")
		}
	})
}
