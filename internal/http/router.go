package http

import (
	"context"
	"log/slog"

	"github.com/geocoder89/categoryhub/internal/config"
	"github.com/geocoder89/categoryhub/internal/http/handlers"
	"github.com/geocoder89/categoryhub/internal/http/middlewares"
	"github.com/geocoder89/categoryhub/internal/observability"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Deps struct {
	Categories handlers.CategoryStore
	Users      handlers.UserCreator

	// readiness probe, nil means always ready
	Ping func(ctx context.Context) error

	// optional
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
	// write endpoints are not limited when nil
	Limiter middlewares.Limiter
}

func NewRouter(log *slog.Logger, cfg config.Config, deps Deps) *gin.Engine {
	if cfg.Env != "dev" && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// ClientIP feeds the rate limiter key, so forwarded headers only count
	// when they come from a configured proxy.
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		log.Warn("invalid trusted proxies, trusting none", "err", err)
		_ = r.SetTrustedProxies(nil)
	}

	// middleware
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("categoryhub"))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.CORSAllowedOrigins))

	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}

	// health
	h := handlers.NewHealthHandler(deps.Ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/docs", handlers.SwaggerUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	categoriesHandler := handlers.NewCategoriesHandler(deps.Categories, handlers.CategoriesOptions{
		Strategy: cfg.TreeStrategy,
		MaxDepth: cfg.TreeMaxDepth,
		Timeout:  cfg.RequestTimeout,
		Prom:     deps.Prom,
	})
	usersHandler := handlers.NewUsersHandler(deps.Users, cfg.RequestTimeout)

	writes := []gin.HandlerFunc{
		middlewares.RequireJSON(),
		middlewares.MaxBodyBytes(cfg.MaxBodyBytes),
	}

	if deps.Limiter != nil {
		writes = append(writes, middlewares.RateLimit(deps.Limiter, middlewares.KeyByIP, log))
	}

	write := func(h gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, writes...), h)
	}

	api := r.Group("/api")
	{
		api.GET("/categories", categoriesHandler.ListCategories)
		api.POST("/categories", write(categoriesHandler.CreateCategory)...)
		api.POST("/user", write(usersHandler.CreateUser)...)
	}

	return r
}
