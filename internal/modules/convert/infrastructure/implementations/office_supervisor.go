package implementations

import (
	"sync"

	"github.com/docgate/docgate/internal/modules/convert/domain/errors"
)

// OfficeSupervisor owns a fixed pool of office workers bound to ports
// [BASE..BASE+N-1]. Dispatch picks the first
// available worker in stable port order; if none is available, the
// caller is told to retry (overload), which the queue layer already
// guards against via MAX_CONCURRENT.
type OfficeSupervisor struct {
	workers []*officeWorker
	health  *healthAggregator
}

// NewOfficeSupervisor starts `count` workers on consecutive ports
// beginning at basePort and returns once every worker's start() call has
// returned: each start blocks until its backend reports ready or the
// worker has exhausted its restart budget.
func NewOfficeSupervisor(basePort, count int, health *healthAggregator) *OfficeSupervisor {
	supervisor := &OfficeSupervisor{
		health: health,
	}

	var wg sync.WaitGroup
	for i := 0; i < count; i++ {
		worker := newOfficeWorker(basePort+i, health)
		supervisor.workers = append(supervisor.workers, worker)

		wg.Add(1)
		go func() {
			defer wg.Done()
			worker.start()
		}()
	}
	wg.Wait()

	return supervisor
}

// Convert dispatches to the first available worker in port order.
func (s *OfficeSupervisor) Convert(input []byte) ([]byte, error) {
	for _, worker := range s.workers {
		if worker.isAvailable() {
			return worker.convert(input)
		}
	}
	return nil, errors.NewOverloadError("no office worker available")
}

// Healthy reports true iff at least one worker is currently available,
// that is, running and not busy with a conversion. A worker that is
// running but busy does not count, unlike in the health map.
func (s *OfficeSupervisor) Healthy() bool {
	for _, worker := range s.workers {
		if worker.isAvailable() {
			return true
		}
	}
	return false
}

// Shutdown force-kills every worker's backend process. Exit handlers are
// not suppressed; at process exit this is harmless since nothing is left
// to restart them.
func (s *OfficeSupervisor) Shutdown() {
	for _, worker := range s.workers {
		worker.mu.Lock()
		cmd := worker.cmd
		worker.mu.Unlock()
		if cmd != nil && cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
	}
}
