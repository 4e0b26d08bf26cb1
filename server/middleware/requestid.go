package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation ID on requests and responses.
const RequestIDHeader = "X-Request-Id"

// requestIDKey is the gin context key the request logger reads the ID from.
const requestIDKey = "request_id"

// RequestID tags every request with a correlation ID. A client-supplied
// header is passed through unchanged; otherwise a fresh UUID is minted. The
// ID is echoed on the response and stashed in the gin context for the
// request logger.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}
