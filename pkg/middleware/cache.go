package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"cinebook/pkg/utils"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	defaultCacheTTL  = time.Minute
	maxCachedBody    = 1 << 20
	cacheWriteBudget = 2 * time.Second
	scanBatch        = 100
)

// captureWriter forwards the response to the client and keeps a copy of
// the status and body.
type captureWriter struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
	cw.status = code
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.overflow {
		if cw.buf.Len()+len(b) > maxCachedBody {
			cw.overflow = true
			cw.buf.Reset()
		} else {
			cw.buf.Write(b)
		}
	}
	return cw.ResponseWriter.Write(b)
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

func cacheKey(prefix string, r *http.Request) string {
	sum := sha1.Sum([]byte(r.Method + " " + r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", prefix, sum[:])
}

// Cache serves GET responses from Redis and stores 200 responses for the
// configured TTL. It is a pass-through when caching is disabled or rdb is nil.
func Cache(rdb *redis.Client, config utils.CacheConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	if !config.Enabled || rdb == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	ttl := config.TTL
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKey(config.Prefix, r)

			if raw, err := rdb.Get(r.Context(), key).Bytes(); err == nil {
				var cached cachedResponse
				if err := json.Unmarshal(raw, &cached); err == nil {
					w.Header().Set("Content-Type", cached.ContentType)
					w.Header().Set("X-Cache", "HIT")
					w.WriteHeader(cached.Status)
					w.Write(cached.Body)
					return
				}
				logger.Warn("Dropping unreadable cache entry", zap.String("key", key))
			} else if err != redis.Nil {
				logger.Warn("Cache read failed", zap.Error(err))
			}

			w.Header().Set("X-Cache", "MISS")
			cw := &captureWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(cw, r)

			if cw.status != http.StatusOK || cw.overflow {
				return
			}

			payload, err := json.Marshal(cachedResponse{
				Status:      cw.status,
				ContentType: w.Header().Get("Content-Type"),
				Body:        cw.buf.Bytes(),
			})
			if err != nil {
				return
			}

			ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), cacheWriteBudget)
			defer cancel()
			if err := rdb.SetEx(ctx, key, payload, ttl).Err(); err != nil {
				logger.Warn("Cache write failed", zap.Error(err))
			}
		})
	}
}

// InvalidateCache drops every cached catalog response after a successful
// write passes through it.
func InvalidateCache(rdb *redis.Client, config utils.CacheConfig, logger *zap.Logger) func(http.Handler) http.Handler {
	if !config.Enabled || rdb == nil {
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			if r.Method == http.MethodGet || rw.statusCode >= http.StatusBadRequest {
				return
			}

			ctx, cancel := context.WithTimeout(context.WithoutCancel(r.Context()), cacheWriteBudget)
			defer cancel()

			removed, err := PurgeCache(ctx, rdb, config.Prefix)
			if err != nil {
				logger.Warn("Cache invalidation failed", zap.Error(err), zap.String("path", r.URL.Path))
				return
			}
			logger.Debug("Catalog cache invalidated", zap.Int("keys", removed), zap.String("path", r.URL.Path))
		})
	}
}

// PurgeCache deletes all keys under prefix and reports how many were removed.
func PurgeCache(ctx context.Context, rdb *redis.Client, prefix string) (int, error) {
	var (
		cursor  uint64
		removed int
	)

	for {
		keys, next, err := rdb.Scan(ctx, cursor, prefix+":*", scanBatch).Result()
		if err != nil {
			return removed, fmt.Errorf("scan cache keys: %w", err)
		}
		if len(keys) > 0 {
			if err := rdb.Del(ctx, keys...).Err(); err != nil {
				return removed, fmt.Errorf("delete cache keys: %w", err)
			}
			removed += len(keys)
		}
		if next == 0 {
			return removed, nil
		}
		cursor = next
	}
}
