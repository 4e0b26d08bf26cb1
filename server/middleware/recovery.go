package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/pipelat/pipelat/logger"
)

// Recovery returns a Gin middleware that recovers from panics and logs the
// stack.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("Panic recovered", logger.F{
					logger.FieldError:    fmt.Sprintf("%v", err),
					"stack":              string(debug.Stack()),
					logger.FieldPath:     c.Request.URL.Path,
					logger.FieldMethod:   c.Request.Method,
					logger.FieldClientIP: c.ClientIP(),
				})
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
			}
		}()
		c.Next()
	}
}
