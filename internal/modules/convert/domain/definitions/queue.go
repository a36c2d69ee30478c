package definitions

import "github.com/docgate/docgate/internal/modules/convert/domain/dto"

// Queue is a bounded FIFO with admission capacity MAX_QUEUED and
// concurrency MAX_CONCURRENT.
type Queue interface {
	// Submit admits a job if the queue has room and returns immediately;
	// it returns a queue-full error otherwise. Admission is O(1) and
	// non-blocking.
	Submit(job *dto.Job, handler func(*dto.Job)) error
	// Healthy reports whether the queue is initialized; true for the
	// process lifetime once Submit is usable.
	Healthy() bool
}
