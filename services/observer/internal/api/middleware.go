package api

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/pkg/util"
)

// RequestIDHeader carries the request id in and out.
const RequestIDHeader = "X-Request-ID"

// RequestID stores the caller's request id, or a fresh one, in the request
// context so that every log line of the request carries it.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := util.ContextWithRequestID(c.Request.Context(), c.GetHeader(RequestIDHeader))
		c.Request = c.Request.WithContext(ctx)
		c.Header(RequestIDHeader, util.GetRequestID(ctx))
		c.Next()
	}
}

// AccessLog writes one debug line per request.
func AccessLog(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.DebugContext(c.Request.Context(), "http request",
			logger.NewField("method", c.Request.Method),
			logger.NewField("path", c.Request.URL.Path),
			logger.NewField("status", c.Writer.Status()),
			logger.NewField("latency", time.Since(start).String()),
		)
	}
}
