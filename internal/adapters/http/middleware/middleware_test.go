package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

type fakeLimiter struct {
	decision RateLimitDecision
	err      error
	keys     []string
}

func (f *fakeLimiter) Allow(_ context.Context, key string, _ int, _ time.Duration) (RateLimitDecision, error) {
	f.keys = append(f.keys, key)
	return f.decision, f.err
}

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	handlers = append(handlers, func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	engine.Any("/products", handlers...)
	return engine
}

func TestRateLimit(t *testing.T) {
	t.Run("allowed request passes with headers", func(t *testing.T) {
		limiter := &fakeLimiter{decision: RateLimitDecision{Allowed: true, Limit: 5, Remaining: 4}}
		engine := newEngine(RateLimit(limiter, 5, time.Minute))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/products", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		engine.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if w.Header().Get("X-RateLimit-Remaining") != "4" {
			t.Fatalf("unexpected remaining header %q", w.Header().Get("X-RateLimit-Remaining"))
		}
		if len(limiter.keys) != 1 || limiter.keys[0] != "POST:/products:10.0.0.1" {
			t.Fatalf("unexpected keys %v", limiter.keys)
		}
	})

	t.Run("blocked request gets 429", func(t *testing.T) {
		limiter := &fakeLimiter{decision: RateLimitDecision{Allowed: false, Limit: 5, RetryAfter: 1500 * time.Millisecond}}
		engine := newEngine(RateLimit(limiter, 5, time.Minute))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/products", nil))

		if w.Code != http.StatusTooManyRequests {
			t.Fatalf("expected 429, got %d", w.Code)
		}
		if w.Header().Get("Retry-After") != "2" {
			t.Fatalf("expected Retry-After 2, got %q", w.Header().Get("Retry-After"))
		}
	})

	t.Run("limiter failure lets request through", func(t *testing.T) {
		limiter := &fakeLimiter{err: errors.New("redis down")}
		engine := newEngine(RateLimit(limiter, 5, time.Minute))

		w := httptest.NewRecorder()
		engine.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/products", nil))

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORS())
	engine.GET("/products", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	t.Run("simple request", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/products", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		engine.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("expected allow-origin *, got %q", got)
		}
	})

	t.Run("preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodOptions, "/products", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		req.Header.Set("Access-Control-Request-Method", "POST")
		engine.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Fatalf("expected allow-origin *, got %q", got)
		}
	})
}

func TestLogRequest(t *testing.T) {
	engine := newEngine(LogRequest())

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/products", nil))

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("expected response to pass through, got %d %q", w.Code, w.Body.String())
	}
}
