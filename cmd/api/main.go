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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/logging"
	"bookcatalog/internal/outputcache"
	"bookcatalog/internal/rating"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.New(config.LogConfig{}).Fatal("load config", zap.Error(err))
	}

	log := logging.New(cfg.Log)
	defer func() { _ = log.Sync() }()
	zap.ReplaceGlobals(log)

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := openDB(ctx, cfg.DatabaseDSN, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	checks := map[string]pinger{"postgres": pool}

	var cache *outputcache.Store
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer client.Close()
		cache = outputcache.NewStore(client, "bookcatalog:oc:")
		checks["redis"] = cache
		log.Info("output cache enabled", zap.String("redis_addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	bookRepo := book.NewPostgresRepo(pool, cfg.QueryTimeout)
	ratingRepo := rating.NewPostgresRepo(pool, cfg.QueryTimeout)
	bookService := book.NewService(bookRepo, ratingRepo, log)
	ratingService := rating.NewService(ratingRepo, bookRepo, log)

	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Stop()

	deps := routerDeps{
		cfg:     cfg,
		log:     log,
		authn:   auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience),
		limiter: limiter,
		checks:  checks,
	}
	// A nil *Store must not end up inside the evicter interfaces.
	if cache != nil {
		deps.cache = cache
		deps.books = book.NewHTTPHandler(bookService, cache, log)
		deps.ratings = rating.NewHTTPHandler(ratingService, cache, log)
	} else {
		deps.books = book.NewHTTPHandler(bookService, nil, log)
		deps.ratings = rating.NewHTTPHandler(ratingService, nil, log)
	}
	if cfg.TokenEndpointEnabled {
		issuer := auth.NewIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
		deps.tokens = auth.NewHTTPHandler(issuer, log)
		log.Warn("development token endpoint enabled")
	}

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      buildRouter(deps),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openDB(ctx context.Context, dsn string, log *zap.Logger) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("create db pool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database (%s): %w", config.RedactDSN(dsn), err)
	}
	log.Info("database connection OK", zap.String("dsn", config.RedactDSN(dsn)))
	return pool, nil
}
