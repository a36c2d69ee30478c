package implementations

import (
	"sync/atomic"

	"github.com/docgate/docgate/internal/modules/convert/domain/definitions"
	"github.com/docgate/docgate/internal/modules/convert/domain/dto"
	"github.com/docgate/docgate/internal/modules/convert/domain/errors"
)

// JobQueue implements definitions.Queue: a bounded FIFO with
// MAX_QUEUED admission capacity and MAX_CONCURRENT execution slots.
// Admission is O(1) and non-blocking: a buffered channel at MAX_QUEUED
// capacity doubles as both the backing store and the admission gate, and
// a fixed pool of dispatcher goroutines drains it at MAX_CONCURRENT
// concurrency.
type JobQueue struct {
	jobs    chan queuedJob
	healthy atomic.Bool
}

type queuedJob struct {
	job     *dto.Job
	handler func(*dto.Job)
}

func NewJobQueue(maxQueued, maxConcurrent int, health *healthAggregator) *JobQueue {
	q := &JobQueue{
		jobs: make(chan queuedJob, maxQueued),
	}
	q.healthy.Store(true)
	health.Set("jobQueue", healthHealthy)

	for i := 0; i < maxConcurrent; i++ {
		go q.runWorker()
	}

	return q
}

var _ definitions.Queue = (*JobQueue)(nil)

// Submit admits a job if the channel has room, returning immediately
// either way — a non-blocking send is the admission check itself.
func (q *JobQueue) Submit(job *dto.Job, handler func(*dto.Job)) error {
	select {
	case q.jobs <- queuedJob{job: job, handler: handler}:
		return nil
	default:
		return errors.NewQueueFullError("conversion queue is at capacity")
	}
}

func (q *JobQueue) Healthy() bool {
	return q.healthy.Load()
}

func (q *JobQueue) runWorker() {
	for item := range q.jobs {
		item.handler(item.job)
	}
}
