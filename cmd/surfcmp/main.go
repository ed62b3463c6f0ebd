package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/surfcmp/internal/config"
	"github.com/kailas-cloud/surfcmp/internal/db"
	dbRedis "github.com/kailas-cloud/surfcmp/internal/db/redis"
	"github.com/kailas-cloud/surfcmp/internal/domain/tolerance"
	logpkg "github.com/kailas-cloud/surfcmp/internal/logger"
	"github.com/kailas-cloud/surfcmp/internal/metrics"
	"github.com/kailas-cloud/surfcmp/internal/repository/comparecache"
	chiTransport "github.com/kailas-cloud/surfcmp/internal/transport/chi"
	compareuc "github.com/kailas-cloud/surfcmp/internal/usecase/compare"
	healthuc "github.com/kailas-cloud/surfcmp/internal/usecase/health"
	"github.com/kailas-cloud/surfcmp/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting surfcmp API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("built", version.Date),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("default_mode", cfg.Compare.DefaultMode),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)

	// Register metrics explicitly (no init())
	metrics.Register()

	var store db.Store
	if cfg.Cache.Enabled {
		store = connectCache(cfg.Cache, logger)
		defer store.Close()
	}

	svc := compareuc.New(logger).
		WithEpsilon(cfg.Compare.FixedEpsilon, cfg.Compare.RelativeEpsilon).
		WithWorkers(cfg.Compare.Workers).
		WithChunkSize(cfg.Compare.ChunkSize).
		WithMaxObjects(cfg.Compare.MaxObjects)

	// Decorator chain: Service -> Cached -> Instrumented.
	// Instrumentation is outermost so cache hits are counted too.
	var comparer compareuc.Comparer = svc
	if store != nil {
		comparer = comparecache.New(svc, svc, store, metrics.CompareCacheTotal, logger).
			WithTTL(time.Duration(cfg.Cache.TTLSec) * time.Second).
			WithKeyPrefix(cfg.Cache.KeyPrefix)
	}
	comparer = compareuc.NewInstrumentedComparer(comparer, logger)

	// Pass nil interface (not typed nil pointer!) when the cache is disabled.
	var cachePinger healthuc.CachePinger
	if store != nil {
		cachePinger = store
	}
	healthSvc := healthuc.New(svc, cachePinger)

	server := chiTransport.NewServer(comparer, healthSvc, logger).
		WithDefaultMode(tolerance.Mode(cfg.Compare.DefaultMode)).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(chiTransport.RateLimitMiddleware(cfg.RateLimit.RequestsPerSec, cfg.RateLimit.Burst))
	r.Use(metrics.Middleware())
	server.Register(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// connectCache creates the result cache store and waits for it to accept commands.
// Valkey and Redis speak the same protocol, so both drivers share one client.
func connectCache(cfg config.CacheConfig, logger *zap.Logger) db.Store {
	switch cfg.Driver {
	case "valkey", "redis":
	default:
		logger.Fatal("Unknown cache driver", zap.String("driver", cfg.Driver))
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Addrs,
		Password:   cfg.Password,
		Standalone: cfg.Standalone,
	})
	if err != nil {
		logger.Fatal("Failed to create cache store", zap.Error(err))
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		logger.Fatal("Cache not ready", zap.Error(err))
	}
	logger.Info("Connected to result cache",
		zap.String("driver", cfg.Driver),
		zap.Strings("addrs", cfg.Addrs),
	)
	return store
}
