package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/cognito-gateway/component"
)

// HealthChecker reports the local state of the registered components.
type HealthChecker func(ctx context.Context) []component.Health

// HealthResponse is the body of the health route. Failing lists only the
// components that are not healthy and is omitted otherwise.
type HealthResponse struct {
	Status    component.HealthStatus `json:"status"`
	Service   string                 `json:"service"`
	Timestamp string                 `json:"timestamp"`
	Failing   []component.Health     `json:"failing,omitempty"`
}

// Health answers 200 while no component is unhealthy and 503 otherwise. It
// never calls the identity provider.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:    component.StatusHealthy,
			Service:   serviceName,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}
		if checker != nil {
			resp.Status, resp.Failing = overall(checker(c.Request.Context()))
		}

		code := http.StatusOK
		if resp.Status == component.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, resp)
	}
}

// overall folds component states: any unhealthy wins over degraded.
func overall(checks []component.Health) (component.HealthStatus, []component.Health) {
	status := component.StatusHealthy
	var failing []component.Health
	for _, h := range checks {
		switch h.Status {
		case component.StatusHealthy:
			continue
		case component.StatusUnhealthy:
			status = component.StatusUnhealthy
		default:
			if status != component.StatusUnhealthy {
				status = component.StatusDegraded
			}
		}
		failing = append(failing, h)
	}
	return status, failing
}
