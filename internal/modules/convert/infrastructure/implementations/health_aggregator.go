package implementations

import (
	"sync"

	"github.com/docgate/docgate/internal/modules/convert/domain/definitions"
)

// healthHealthy and healthUnhealthy are local shorthands for the two
// definitions.HealthStatus values, used throughout this package.
const (
	healthHealthy   = definitions.HealthStatusHealthy
	healthUnhealthy = definitions.HealthStatusUnhealthy
)

// healthAggregator is the in-memory implementation of
// definitions.HealthAggregator. Every supervisor writes its own
// key; Ready() applies the aggregate rule over the current snapshot.
type healthAggregator struct {
	mu     sync.RWMutex
	status map[string]definitions.HealthStatus

	markupConfigured bool
}

var _ definitions.HealthAggregator = (*healthAggregator)(nil)

// NewHealthAggregator constructs the health aggregator; markupConfigured
// decides whether "pandoc" is required for readiness.
func NewHealthAggregator(markupConfigured bool) *healthAggregator {
	return &healthAggregator{
		status:           make(map[string]definitions.HealthStatus),
		markupConfigured: markupConfigured,
	}
}

func (h *healthAggregator) Set(name string, status definitions.HealthStatus) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.status[name] = status
}

func (h *healthAggregator) Snapshot() map[string]definitions.HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	snapshot := make(map[string]definitions.HealthStatus, len(h.status))
	for k, v := range h.status {
		snapshot[k] = v
	}
	return snapshot
}

// Ready reports the aggregate rule: the gateway is healthy iff the webserver, the
// queue and the browser supervisor are healthy, at least one office
// worker is healthy, and — if a markup converter was configured at
// startup — the markup converter is healthy too.
func (h *healthAggregator) Ready() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.status["webserver"] != healthHealthy {
		return false
	}
	if h.status["jobQueue"] != healthHealthy {
		return false
	}
	if h.status["browser"] != healthHealthy {
		return false
	}
	if h.markupConfigured && h.status["pandoc"] != healthHealthy {
		return false
	}

	anyOfficeHealthy := false
	for key, status := range h.status {
		if len(key) > len("unoservers.") && key[:len("unoservers.")] == "unoservers." {
			if status == healthHealthy {
				anyOfficeHealthy = true
				break
			}
		}
	}
	return anyOfficeHealthy
}
