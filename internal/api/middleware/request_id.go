package middleware

import (
	"log"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxRequestID = "request_id"

// RequestID tags every request with a stable id so API responses, audit
// entries, and log lines can be correlated. An incoming X-Request-Id is
// honored, otherwise a fresh uuid is assigned; the id is echoed back in the
// response header and included in the per-request log line.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := strings.TrimSpace(c.GetHeader("X-Request-Id"))
		if rid == "" {
			rid = uuid.New().String()
		}

		c.Set(ctxRequestID, rid)
		c.Writer.Header().Set("X-Request-Id", rid)

		start := time.Now()
		c.Next()

		log.Printf("[req] id=%s method=%s path=%s status=%d latency=%s",
			rid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// GetRequestID returns the id assigned by RequestID, empty if the middleware
// did not run.
func GetRequestID(c *gin.Context) string {
	return c.GetString(ctxRequestID)
}
