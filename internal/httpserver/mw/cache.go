package mw

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/huangsam/graveyard/internal/logger"
	"github.com/redis/go-redis/v9"
)

// DefaultCacheTTL bounds how stale a cached API response may get.
const DefaultCacheTTL = 30 * time.Second

// cacheKeyPrefix namespaces cached responses in Redis.
const cacheKeyPrefix = "graveyard:api:"

// cachedResponse is the stored envelope for one cached API response.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// recordingWriter tees the response body so it can be cached after the
// handler runs.
type recordingWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
}

func (w *recordingWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *recordingWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

// Cache returns a middleware that serves repeated GET requests from Redis.
// A nil client disables caching entirely. Only 200 responses are cached.
func Cache(client *redis.Client, ttl time.Duration, loggerClient logger.Logger) func(http.Handler) http.Handler {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return func(next http.Handler) http.Handler {
		if client == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next.ServeHTTP(w, r)
				return
			}

			key := cacheKeyPrefix + r.URL.RequestURI()
			payload, err := client.Get(r.Context(), key).Bytes()
			if err == nil {
				var cached cachedResponse
				if json.Unmarshal(payload, &cached) == nil {
					w.Header().Set("Content-Type", cached.ContentType)
					w.Header().Set("X-Cache", "HIT")
					w.WriteHeader(cached.Status)
					_, _ = w.Write(cached.Body)
					return
				}
			} else if !errors.Is(err, redis.Nil) {
				loggerClient.Warn("response cache read failed", logger.Error(err))
			}

			rec := &recordingWriter{ResponseWriter: w}
			rec.Header().Set("X-Cache", "MISS")
			next.ServeHTTP(rec, r)

			if rec.status != http.StatusOK {
				return
			}
			entry, err := json.Marshal(cachedResponse{
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.buf.Bytes(),
			})
			if err != nil {
				return
			}
			if err := client.Set(r.Context(), key, entry, ttl).Err(); err != nil {
				loggerClient.Warn("response cache write failed", logger.Error(err))
			}
		})
	}
}
