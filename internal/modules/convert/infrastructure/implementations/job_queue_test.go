package implementations

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docgate/docgate/internal/modules/convert/domain/dto"
	sharedErrors "github.com/docgate/docgate/internal/modules/shared/domain/errors"
)

func TestJobQueue_AdmitsUpToCapacityThenRejects(t *testing.T) {
	health := NewHealthAggregator(false)

	// Zero worker goroutines: nothing drains the channel, so every slot
	// stays occupied and the boundary is deterministic.
	queue := NewJobQueue(2, 0, health)

	handler := func(*dto.Job) {}

	assert.NoError(t, queue.Submit(&dto.Job{ID: "1", Done: make(chan struct{})}, handler))
	assert.NoError(t, queue.Submit(&dto.Job{ID: "2", Done: make(chan struct{})}, handler))

	err := queue.Submit(&dto.Job{ID: "3", Done: make(chan struct{})}, handler)
	assert.Error(t, err)

	domainErr, ok := err.(sharedErrors.DomainError)
	assert.True(t, ok)
	assert.Equal(t, sharedErrors.KindQueueFull, domainErr.Code())
}

func TestJobQueue_Healthy(t *testing.T) {
	health := NewHealthAggregator(false)
	queue := NewJobQueue(4, 1, health)
	assert.True(t, queue.Healthy())
	assert.Equal(t, healthHealthy, health.Snapshot()["jobQueue"])
}

func TestJobQueue_WorkersDrainConcurrently(t *testing.T) {
	health := NewHealthAggregator(false)
	queue := NewJobQueue(8, 4, health)

	var wg sync.WaitGroup
	var mu sync.Mutex
	processed := make([]string, 0, 8)

	handler := func(job *dto.Job) {
		mu.Lock()
		processed = append(processed, job.ID)
		mu.Unlock()
		close(job.Done)
		wg.Done()
	}

	for i := 0; i < 8; i++ {
		job := &dto.Job{ID: string(rune('a' + i)), Done: make(chan struct{})}
		wg.Add(1)
		assert.NoError(t, queue.Submit(job, handler))
	}

	wg.Wait()
	assert.Len(t, processed, 8)
}
