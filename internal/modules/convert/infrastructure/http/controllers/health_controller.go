package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/docgate/docgate/internal/modules/convert/domain/definitions"
)

// HealthController reports per-subsystem health plus the aggregate
// readiness rule.
type HealthController struct {
	Health definitions.HealthAggregator
}

// Handle returns 200 with the full health map when the aggregate is
// healthy, 503 otherwise. The body always carries every subsystem's
// individual status so a caller can tell which one is down.
func (controller *HealthController) Handle(c *gin.Context) {
	status := http.StatusOK
	if !controller.Health.Ready() {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, gin.H{
		"health": controller.Health.Snapshot(),
	})
}
