package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/product-service/internal/adapters/config"
	"github.com/rafaelleal24/product-service/internal/adapters/http/controllers"
	"github.com/rafaelleal24/product-service/internal/adapters/http/middleware"
)

type Router struct {
	healthController  *controllers.HealthController
	productController *controllers.ProductController
	importController  *controllers.ImportController
	rateLimiter       middleware.RateLimiter
	rateLimits        config.RateLimitConfig
}

func NewRouter(
	healthController *controllers.HealthController,
	productController *controllers.ProductController,
	importController *controllers.ImportController,
	rateLimiter middleware.RateLimiter,
	rateLimits config.RateLimitConfig,
) *Router {
	return &Router{
		healthController:  healthController,
		productController: productController,
		importController:  importController,
		rateLimiter:       rateLimiter,
		rateLimits:        rateLimits,
	}
}

// SetupRoutes mounts the API under /api/v1 and again at the root, where the
// storefront expects it.
func (r *Router) SetupRoutes(router *gin.Engine) {
	router.Use(middleware.CORS())

	r.mount(router.Group("/api/v1"))
	r.mount(router.Group("/"))
}

func (r *Router) mount(group *gin.RouterGroup) {
	rl := r.rateLimiter
	window := r.rateLimits.Window

	group.Use(middleware.LogRequest())
	group.GET("/health", r.healthController.Health)

	group.GET("/products", r.productController.GetAll)
	group.GET("/products/:productId", r.productController.GetOne)
	group.POST("/products", middleware.RateLimit(rl, r.rateLimits.CreateProduct, window), r.productController.CreateProduct)

	group.GET("/import", middleware.RateLimit(rl, r.rateLimits.UploadURL, window), r.importController.CreateUploadURL)
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	engine := gin.New()
	engine.Use(gin.Recovery())
	r.SetupRoutes(engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
