package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/categoryhub/internal/config"
	"github.com/geocoder89/categoryhub/internal/db"
	httpx "github.com/geocoder89/categoryhub/internal/http"
	"github.com/geocoder89/categoryhub/internal/http/middlewares"
	"github.com/geocoder89/categoryhub/internal/observability"
	"github.com/geocoder89/categoryhub/internal/redisclient"
	"github.com/geocoder89/categoryhub/internal/repo/memory"
	"github.com/geocoder89/categoryhub/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid config", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName: "categoryhub-api",
		Env:         cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
		SampleRatio: cfg.TraceSampleRatio,
	})
	if err != nil {
		log.Error("tracer init failed", "err", err)
		os.Exit(1)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	prom := observability.NewProm(reg)

	deps := httpx.Deps{
		Prom:     prom,
		Gatherer: reg,
	}

	switch cfg.Store {
	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on restart")

		deps.Categories = memory.NewCategoriesRepo()
		deps.Users = memory.NewUsersRepo()

	default:
		pool, err := db.ConnectWithRetry(ctx, cfg.DBURL, 5, log)
		if err != nil {
			log.Error("db connect failed", "err", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := db.EnsureSchema(ctx, pool); err != nil {
			log.Error("schema setup failed", "err", err)
			os.Exit(1)
		}

		categoriesRepo := postgres.NewCategoriesRepo(pool, prom)

		deps.Categories = categoriesRepo
		deps.Users = postgres.NewUsersRepo(pool, prom)
		deps.Ping = categoriesRepo.Ping
	}

	if cfg.RedisAddr != "" {
		rc := redisclient.New(redisclient.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rc.Close()

		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rc.Ping(pingCtx); err != nil {
			// the limiter fails open, keep serving
			log.Warn("redis not reachable, rate limiting degraded", "addr", cfg.RedisAddr, "err", err)
		}
		cancel()

		deps.Limiter = middlewares.NewRedisRateLimiter(rc.Raw(), cfg.RateLimitRequests, cfg.RateLimitWindow)
	} else {
		deps.Limiter = middlewares.NewRateLimiter(cfg.RateLimitRequests, cfg.RateLimitWindow)
	}

	router := httpx.NewRouter(log, cfg, deps)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)

	go func() {
		log.Info("Server starting", "port", cfg.Port, "env", cfg.Env, "store", cfg.Store, "tree_strategy", cfg.TreeStrategy)
		err := srv.ListenAndServe()

		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info("server shutting down")
	case err := <-serverErr:
		log.Error("server failed", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "err", err)
	}

	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Error("tracer shutdown failed", "err", err)
	}

	log.Info("shutdown complete")
}
