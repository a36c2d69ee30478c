package implementations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthAggregator_ReadyRequiresCoreSubsystems(t *testing.T) {
	health := NewHealthAggregator(false)

	assert.False(t, health.Ready())

	health.Set("webserver", healthHealthy)
	health.Set("jobQueue", healthHealthy)
	health.Set("browser", healthHealthy)
	assert.False(t, health.Ready(), "should still be unready with no office worker reported healthy")

	health.Set("unoservers.2003", healthHealthy)
	assert.True(t, health.Ready())

	health.Set("browser", healthUnhealthy)
	assert.False(t, health.Ready())
}

func TestHealthAggregator_RequiresMarkupWhenConfigured(t *testing.T) {
	health := NewHealthAggregator(true)

	health.Set("webserver", healthHealthy)
	health.Set("jobQueue", healthHealthy)
	health.Set("browser", healthHealthy)
	health.Set("unoservers.2003", healthHealthy)
	assert.False(t, health.Ready(), "markup converter is configured but not yet reported healthy")

	health.Set("pandoc", healthHealthy)
	assert.True(t, health.Ready())
}

func TestHealthAggregator_SnapshotIsACopy(t *testing.T) {
	health := NewHealthAggregator(false)
	health.Set("webserver", healthHealthy)

	snapshot := health.Snapshot()
	snapshot["webserver"] = healthUnhealthy

	assert.Equal(t, healthHealthy, health.Snapshot()["webserver"])
}
