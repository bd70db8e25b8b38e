package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 3 * time.Second

type HealthResponse struct {
	Status   string            `json:"status" example:"ok"`
	Services map[string]string `json:"services" example:"mongodb:ok,redis:ok,rabbitmq:ok,s3:ok"`
}

type HealthChecker struct {
	Name  string
	Check func(ctx context.Context) error
}

type HealthController struct {
	checkers []HealthChecker
}

func NewHealthController(checkers []HealthChecker) *HealthController {
	return &HealthController{checkers: checkers}
}

// Health godoc
// @Summary     Health check
// @Description Checks the health of all dependent services
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Failure     503 {object} HealthResponse
// @Router      /api/v1/health [get]
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	var mu sync.Mutex
	services := make(map[string]string, len(h.checkers))

	// checks run concurrently; a failing one never cancels the others
	var g errgroup.Group
	for _, checker := range h.checkers {
		g.Go(func() error {
			result := "ok"
			if err := checker.Check(ctx); err != nil {
				result = err.Error()
			}
			mu.Lock()
			services[checker.Name] = result
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	status := "ok"
	for _, result := range services {
		if result != "ok" {
			status = "degraded"
			break
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:   status,
		Services: services,
	})
}
