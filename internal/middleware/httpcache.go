package middleware

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	cachePrefix      = "tv:api-cache:"
	defaultCacheTTL  = 30 * time.Second
	cacheMaxBodySize = 1 << 20 // 1 MiB
)

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type,omitempty"`
	BodyBase64  string `json:"body_base64"`
}

type cacheBodyWriter struct {
	gin.ResponseWriter
	body     []byte
	overflow bool
}

func (w *cacheBodyWriter) Write(data []byte) (int, error) {
	w.capture(data)
	return w.ResponseWriter.Write(data)
}

func (w *cacheBodyWriter) WriteString(s string) (int, error) {
	w.capture([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *cacheBodyWriter) capture(data []byte) {
	if w.overflow || len(data) == 0 {
		return
	}
	if len(w.body)+len(data) > cacheMaxBodySize {
		w.overflow = true
		return
	}
	w.body = append(w.body, data...)
}

// HTTPCache caches successful anonymous GET responses in Redis for a short
// TTL. Drafts never reach this path: only the public, published-only routes
// are registered behind it. Authenticated requests bypass the cache so
// editors always see fresh state.
func HTTPCache(rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || IsAuthenticated(c) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := cachePrefix + c.Request.URL.RequestURI()

		if raw, err := rdb.Get(ctx, key).Result(); err == nil && raw != "" {
			var cached cachedResponse
			if json.Unmarshal([]byte(raw), &cached) == nil {
				body, decErr := base64.StdEncoding.DecodeString(cached.BodyBase64)
				if decErr == nil {
					c.Header("X-TV-Cache", "hit")
					c.Data(cached.Status, cached.ContentType, body)
					c.Abort()
					return
				}
			}
		}

		writer := &cacheBodyWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		status := c.Writer.Status()
		if status != http.StatusOK || writer.overflow || len(writer.body) == 0 {
			return
		}

		payload, err := json.Marshal(cachedResponse{
			Status:      status,
			ContentType: c.Writer.Header().Get("Content-Type"),
			BodyBase64:  base64.StdEncoding.EncodeToString(writer.body),
		})
		if err != nil {
			return
		}
		rdb.Set(ctx, key, payload, ttl)
	}
}
