package middleware

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/product-service/internal/core/logger"
)

type requestInfo struct {
	method   string
	path     string
	route    string
	clientIP string
	status   int
	duration time.Duration
}

func logHTTPRequest(ctx context.Context, info requestInfo, extraAttributes map[string]any) {
	attrs := map[string]any{
		"http.method":      info.method,
		"http.path":        info.path,
		"http.route":       info.route,
		"http.client_ip":   info.clientIP,
		"http.status_code": info.status,
		"http.duration_ms": info.duration.Milliseconds(),
	}

	for key, value := range extraAttributes {
		attrs[key] = value
	}

	level := logger.LogLevelInfo
	if info.status >= 500 {
		level = logger.LogLevelError
	} else if info.status >= 400 {
		level = logger.LogLevelWarn
	}

	logger.Log(ctx, logger.LogEntry{
		Level:      level,
		Message:    "HTTP Request",
		Attributes: attrs,
	})
}

var bufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

const maxResponseBodySize = 64 * 1024

type responseBodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseBodyWriter) Write(b []byte) (int, error) {
	if w.body.Len()+len(b) <= maxResponseBodySize {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseBodyWriter) WriteString(s string) (int, error) {
	if w.body.Len()+len(s) <= maxResponseBodySize {
		w.body.WriteString(s)
	}
	return w.ResponseWriter.WriteString(s)
}

// LogRequest writes one access log entry per request, at warn level for 4xx
// and error level for 5xx. Small JSON response bodies are included.
func LogRequest() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		buf := bufferPool.Get().(*bytes.Buffer)
		defer bufferPool.Put(buf)
		buf.Reset()
		bodyWriter := &responseBodyWriter{
			ResponseWriter: c.Writer,
			body:           buf,
		}
		c.Writer = bodyWriter

		c.Next()

		duration := time.Since(start)

		extraAttributes := map[string]any{}
		if key := c.GetHeader("Idempotency-Key"); key != "" {
			extraAttributes["http.idempotency_key"] = key
		}

		if contentLength := c.Request.Header.Get("Content-Length"); contentLength != "" {
			if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil {
				extraAttributes["http.request_size"] = size
			}
		}

		contentType := c.Writer.Header().Get("Content-Type")
		if strings.Contains(contentType, "application/json") && bodyWriter.body.Len() > 0 && bodyWriter.body.Len() <= maxResponseBodySize {
			extraAttributes["http.response_body"] = bodyWriter.body.String()
			extraAttributes["http.response_size"] = bodyWriter.body.Len()
		}

		logHTTPRequest(c.Request.Context(), requestInfo{
			method:   c.Request.Method,
			path:     c.Request.URL.Path,
			route:    c.FullPath(),
			clientIP: c.ClientIP(),
			status:   c.Writer.Status(),
			duration: duration,
		}, extraAttributes)
	}
}
