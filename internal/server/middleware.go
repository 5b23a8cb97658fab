package server

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"

	"github.com/rustyeddy/stockreport/i18n"
	"github.com/rustyeddy/stockreport/internal/logger"
	"github.com/rustyeddy/stockreport/internal/trace"
	"github.com/rustyeddy/stockreport/pkg/id"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"

const ctxRequestID = "request_id"

// requestID reuses a well formed incoming id and mints one otherwise.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if _, err := id.Time(rid); err != nil {
			rid = id.New()
		}
		c.Set(ctxRequestID, rid)
		c.Header(HeaderRequestID, rid)
		c.Next()
	}
}

func tracing() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := trace.StartSpan(c.Request.Context(), c.Request.Method+" "+c.FullPath())
		defer span.End()
		span.SetAttributes(attribute.String("request_id", c.GetString(ctxRequestID)))

		c.Request = c.Request.WithContext(ctx)
		c.Next()
		span.SetAttributes(attribute.Int("status", c.Writer.Status()))
	}
}

// requestLogger logs every request except health probes.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/healthz" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		kv := []any{
			"method", c.Request.Method,
			"path", path,
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
			"request_id", c.GetString(ctxRequestID),
		}
		if c.Writer.Status() >= 500 {
			logger.Error(c.Request.Context(), "request failed", kv...)
			return
		}
		logger.Info(c.Request.Context(), "request", kv...)
	}
}

// withProvider scopes the language provider to the request context.
func withProvider(p *i18n.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(i18n.NewContext(c.Request.Context(), p))
		c.Next()
	}
}
