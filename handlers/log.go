package handlers

import (
	"issuetracker/middleware"
	"log"

	"github.com/gin-gonic/gin"
)

// logf prefixes a handler log line with the request ID so it can be matched
// to the access line written by middleware.RequestID.
func logf(c *gin.Context, format string, args ...any) {
	rid := middleware.GetRequestID(c.Request.Context())
	log.Printf("[req] id=%s "+format, append([]any{rid}, args...)...)
}
