package middleware

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const HeaderRequestID = "X-Request-Id"

type requestIDKey struct{}

// RequestID reuses the caller's X-Request-Id or generates one, stores it in
// both the gin and the request context, echoes it back and logs one access
// line per request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader(HeaderRequestID))
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Set("request_id", rid)
		c.Request = c.Request.WithContext(context.WithValue(c.Request.Context(), requestIDKey{}, rid))
		c.Writer.Header().Set(HeaderRequestID, rid)

		start := time.Now()
		c.Next()

		log.Printf("[req] id=%s method=%s path=%s status=%d latency=%s",
			rid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// GetRequestID extracts the request ID from a standard context.
func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey{}).(string); ok {
		return rid
	}
	return ""
}
