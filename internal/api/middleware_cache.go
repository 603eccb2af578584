package api

import (
	"bytes"
	"net/http"

	"github.com/gin-gonic/gin"

	"smartmail/internal/cache"
)

// CacheMiddleware is the read-through wrapper for GET /emails/:type.
// On a live entry it serves the cached body and skips the handler chain
// entirely, so handler side effects (inbox ingestion in particular) do
// not run on a hit. On a miss it runs the handler, captures a 200 JSON
// body, and stores it with the configured TTL. A failing cache store
// degrades to always-miss without failing the request.
func CacheMiddleware(c *cache.Cache) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		key := cache.KeyForType(ctx.Param("type"))

		if body, ok := c.Get(ctx.Request.Context(), key); ok {
			ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(body))
			ctx.Abort()
			return
		}

		writer := &bodyCaptureWriter{ResponseWriter: ctx.Writer}
		ctx.Writer = writer

		ctx.Next()

		if writer.Status() == http.StatusOK {
			c.Put(ctx.Request.Context(), key, writer.body.String())
		}
	}
}

// bodyCaptureWriter tees the response body so a successful result can
// be stored after the handler runs.
type bodyCaptureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *bodyCaptureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyCaptureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
