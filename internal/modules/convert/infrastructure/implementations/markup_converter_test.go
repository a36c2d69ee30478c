package implementations

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarkupConverter_UnconfiguredReportsUnhealthy(t *testing.T) {
	converter := &MarkupConverter{binaryPath: ""}
	assert.False(t, converter.Configured())
	assert.False(t, converter.Healthy())
}

func TestMarkupConverter_HealthyRequiresResolvableBinary(t *testing.T) {
	converter := &MarkupConverter{binaryPath: "/definitely/not/a/real/pandoc/binary"}
	assert.True(t, converter.Configured())
	assert.False(t, converter.Healthy())
}

func TestMarkupConverter_HealthyWritesThePandocKey(t *testing.T) {
	health := NewHealthAggregator(true)
	converter := &MarkupConverter{binaryPath: "/definitely/not/a/real/pandoc/binary", health: health}

	assert.False(t, converter.Healthy())
	assert.Equal(t, healthUnhealthy, health.Snapshot()["pandoc"])
}
