package main

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/outputcache"
	"bookcatalog/internal/rating"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type routerDeps struct {
	cfg     config.Config
	log     *zap.Logger
	books   *book.HTTPHandler
	ratings *rating.HTTPHandler
	tokens  *auth.HTTPHandler
	authn   httpx.Authenticator
	cache   *outputcache.Store
	limiter *httpx.RateLimitMiddleware
	checks  map[string]pinger
}

var listVaryKeys = []string{"title", "author", "sortBy", "page", "pageSize"}

func buildRouter(d routerDeps) http.Handler {
	mux := http.NewServeMux()

	cacheList := outputcache.Cache(d.cache, outputcache.Policy{
		Tag: book.CacheTag, TTL: d.cfg.CacheTTL, VaryByQuery: listVaryKeys,
	}, d.log)
	cacheGet := outputcache.Cache(d.cache, outputcache.Policy{
		Tag: book.CacheTag, TTL: d.cfg.CacheTTL,
	}, d.log)
	requireAdmin := httpx.RequireAdmin(d.cfg.AdminAPIKey)

	mux.HandleFunc("GET /_health", healthHandler(d.checks))

	if d.tokens != nil {
		mux.HandleFunc("POST /api/token", d.tokens.IssueToken)
	}

	mux.HandleFunc("GET /api/books", cacheList(d.books.List))
	mux.HandleFunc("GET /api/books/{idOrSlug}", cacheGet(d.books.Get))
	mux.HandleFunc("POST /api/books", httpx.RequireLibrarian(d.books.Create))
	mux.HandleFunc("PUT /api/books/{id}", httpx.RequireLibrarian(d.books.Update))
	mux.HandleFunc("DELETE /api/books/{id}", requireAdmin(d.books.Delete))

	mux.HandleFunc("POST /api/books/{id}/ratings", httpx.RequireUser(d.ratings.RateBook))
	mux.HandleFunc("DELETE /api/books/{id}/ratings", httpx.RequireUser(d.ratings.DeleteRating))
	mux.HandleFunc("GET /api/ratings/me", httpx.RequireUser(d.ratings.ListMine))

	return httpx.Chain(mux,
		httpx.RecoveryMiddleware(d.log),
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(d.log),
		httpx.SecurityHeadersMiddleware(d.cfg.EnableHSTS),
		httpx.CORSMiddleware(d.cfg.CORSOrigins),
		httpx.RequestSizeLimitMiddleware(d.cfg.MaxBodyBytes),
		d.limiter.Middleware,
		httpx.APIVersionMiddleware(httpx.DefaultAPIVersion),
		httpx.AuthMiddleware(d.authn, d.log),
	)
}

func healthHandler(checks map[string]pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, c := range checks {
			if err := c.Ping(ctx); err != nil {
				status = http.StatusServiceUnavailable
				results[name] = "Unhealthy"
				continue
			}
			results[name] = "Healthy"
		}

		overall := "Healthy"
		if status != http.StatusOK {
			overall = "Unhealthy"
			httpx.JSONError(w, r, status, "UNHEALTHY", overall, nil)
			return
		}
		httpx.JSONSuccess(w, r, map[string]any{"status": overall, "checks": results}, nil)
	}
}
