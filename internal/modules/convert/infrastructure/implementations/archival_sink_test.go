package implementations

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	sharedDefinitions "github.com/docgate/docgate/internal/modules/shared/domain/definitions"
)

type fakeCloudStorage struct {
	mu      sync.Mutex
	uploads []sharedDefinitions.UploadFileRequest
}

func (s *fakeCloudStorage) UploadFile(request sharedDefinitions.UploadFileRequest) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads = append(s.uploads, request)
	return "https://bucket.example/" + request.FilePath, nil
}

func (s *fakeCloudStorage) FileExists(sharedDefinitions.FileExistsRequest) (bool, error) {
	return false, nil
}

func TestNewArchivalSink_NilStorageDisablesSink(t *testing.T) {
	sink := NewArchivalSink(nil, "folder", 2)
	assert.Nil(t, sink)

	// Archive on a nil *ArchivalSink must be a safe no-op.
	sink.Archive("hash", []byte("pdf"))
}

func TestArchivalSink_UploadsEnqueuedRecords(t *testing.T) {
	storage := &fakeCloudStorage{}
	sink := NewArchivalSink(storage, "conversions", 2)

	sink.Archive("content-hash", []byte("pdf bytes"))

	assert.Eventually(t, func() bool {
		storage.mu.Lock()
		defer storage.mu.Unlock()
		return len(storage.uploads) == 1
	}, time.Second, 10*time.Millisecond)
}
