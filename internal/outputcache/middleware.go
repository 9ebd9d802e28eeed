package outputcache

import (
	"bytes"
	"net/http"
	"net/url"
	"sort"
	"time"

	"go.uber.org/zap"
)

// Policy describes how one route is cached.
type Policy struct {
	Tag         string
	TTL         time.Duration
	VaryByQuery []string
}

const cacheStatusHeader = "X-Cache"

// cacheKey is the path plus the vary-by query values in a stable order.
func cacheKey(r *http.Request, vary []string) string {
	q := r.URL.Query()
	keep := url.Values{}
	keys := append([]string(nil), vary...)
	sort.Strings(keys)
	for _, k := range keys {
		if vs, ok := q[k]; ok {
			keep[k] = vs
		}
	}
	if len(keep) == 0 {
		return r.URL.Path
	}
	return r.URL.Path + "?" + keep.Encode()
}

type captureWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (cw *captureWriter) WriteHeader(code int) {
	if cw.status == 0 {
		cw.status = code
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if cw.status == 0 {
		cw.status = http.StatusOK
	}
	cw.buf.Write(b)
	return cw.ResponseWriter.Write(b)
}

// Cache wraps GET handlers. Requests with an Authorization header are never
// served from or written to the cache because their bodies carry the
// caller's own ratings. Cache errors are logged and the handler runs as if
// there were no cache.
func Cache(store *Store, policy Policy, log *zap.Logger) func(http.HandlerFunc) http.HandlerFunc {
	log = log.Named("outputcache")
	return func(next http.HandlerFunc) http.HandlerFunc {
		if store == nil {
			return next
		}
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet || r.Header.Get("Authorization") != "" {
				next(w, r)
				return
			}

			key := cacheKey(r, policy.VaryByQuery)
			entry, hit, err := store.Get(r.Context(), key)
			if err != nil {
				log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
			}
			if hit {
				w.Header().Set("Content-Type", entry.ContentType)
				w.Header().Set(cacheStatusHeader, "HIT")
				w.WriteHeader(entry.Status)
				_, _ = w.Write(entry.Body)
				return
			}

			w.Header().Set(cacheStatusHeader, "MISS")
			cw := &captureWriter{ResponseWriter: w}
			next(cw, r)

			if cw.status != http.StatusOK || err != nil {
				return
			}
			e := &Entry{Status: cw.status, ContentType: w.Header().Get("Content-Type"), Body: cw.buf.Bytes()}
			if err := store.Set(r.Context(), key, policy.Tag, e, policy.TTL); err != nil {
				log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
}
