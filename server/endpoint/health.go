// Package endpoint provides the standard service endpoints: health and
// version.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pipelat/pipelat/observability"
	"github.com/pipelat/pipelat/version"
)

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []observability.Health

// Health returns a handler that reports service health including component
// statuses.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := observability.NewServiceHealth(serviceName, version.Short())

		if checker != nil {
			for _, ch := range checker(c.Request.Context()) {
				health.AddComponent(ch)
			}
		}

		httpStatus := http.StatusOK
		if health.Status == observability.HealthStatusDown {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     health.Status,
			"service":    health.Service,
			"version":    health.Version,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": health.Components,
		})
	}
}
