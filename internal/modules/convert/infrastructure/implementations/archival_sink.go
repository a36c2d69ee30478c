package implementations

import (
	"bytes"
	"fmt"

	sharedDefinitions "github.com/docgate/docgate/internal/modules/shared/domain/definitions"
	sharedInfrastructure "github.com/docgate/docgate/internal/modules/shared/infrastructure"
	sharedUtilities "github.com/docgate/docgate/internal/modules/shared/utilities"
)

// archivalRequest is one fire-and-forget upload of a produced PDF.
type archivalRequest struct {
	contentHash string
	pdf         []byte
}

// ArchivalSink copies every successful conversion to an S3-compatible
// bucket on a bounded worker pool fed by a buffered channel. It is
// a pure side channel: nothing about the HTTP response depends on it.
type ArchivalSink struct {
	storage sharedDefinitions.CloudStorage
	folder  string
	queue   chan archivalRequest
}

// NewArchivalSink returns nil when storage is nil, so callers can treat a
// disabled archival sink as a no-op pointer receiver.
func NewArchivalSink(storage sharedDefinitions.CloudStorage, folder string, workerCount int) *ArchivalSink {
	if storage == nil {
		return nil
	}

	sink := &ArchivalSink{
		storage: storage,
		folder:  folder,
		queue:   make(chan archivalRequest, workerCount*4),
	}

	for i := 0; i < workerCount; i++ {
		go sink.runWorker()
	}

	return sink
}

// Archive enqueues a PDF for upload; a full queue drops the request and
// logs a warning rather than applying backpressure to the caller.
func (s *ArchivalSink) Archive(contentHash string, pdf []byte) {
	if s == nil {
		return
	}

	select {
	case s.queue <- archivalRequest{contentHash: contentHash, pdf: pdf}:
	default:
		sharedUtilities.GetLogger().Warn("archival queue full, dropping record")
	}
}

func (s *ArchivalSink) runWorker() {
	logger := sharedUtilities.GetLogger()

	for req := range s.queue {
		key := fmt.Sprintf("%s-%s.pdf", req.contentHash, sharedInfrastructure.GenerateXID())

		_, err := s.storage.UploadFile(sharedDefinitions.UploadFileRequest{
			FileReader:  bytes.NewReader(req.pdf),
			FileFolder:  s.folder,
			FilePath:    key,
			ContentType: "application/pdf",
		})
		if err != nil {
			logger.WithError(err).WithField("key", key).Warn("archival upload failed")
		}
	}
}
