package middleware

import (
	"bytes"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/piciu1221/firesignal/internal/cache"
)

type cachedWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *cachedWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *cachedWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CacheKey builds a stable key from the request path and sorted query
// parameters, so parameter order does not fragment the cache.
func CacheKey(ctx *gin.Context) string {
	path := ctx.Request.URL.Path

	query := ctx.Request.URL.Query()
	keys := make([]string, 0, len(query))
	for key := range query {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteString("resp:")
	buf.WriteString(path)
	for _, key := range keys {
		values := query[key]
		sort.Strings(values)
		for _, value := range values {
			buf.WriteByte('&')
			buf.WriteString(key)
			buf.WriteByte('=')
			buf.WriteString(value)
		}
	}

	return buf.String()
}

// CacheResponse serves GET responses from Redis for ttl before hitting the
// database again. With a nil cache the middleware is a pass-through.
func CacheResponse(c *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if c == nil || ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := CacheKey(ctx)

		if body := c.Get(ctx.Request.Context(), key); body != nil {
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", body)
			ctx.Abort()
			return
		}

		writer := &cachedWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = writer

		ctx.Next()

		if ctx.Writer.Status() == http.StatusOK {
			c.Set(ctx.Request.Context(), key, writer.body.Bytes(), ttl)
		}
	}
}
