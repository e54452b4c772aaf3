package stream

import (
	"context"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/logger"
	"github.com/fhuszti/streams-ms-go/internal/port"
)

type streamReconcilerSrv struct {
	slug  string
	repo  port.VideoRepository
	tasks port.TaskDispatcher
}

// compile-time check: *streamReconcilerSrv must satisfy port.StreamReconciler
var _ port.StreamReconciler = (*streamReconcilerSrv)(nil)

// NewStreamReconciler constructs a StreamReconciler implementation.
func NewStreamReconciler(slug string, repo port.VideoRepository, tasks port.TaskDispatcher) port.StreamReconciler {
	return &streamReconcilerSrv{slug, repo, tasks}
}

// ReconcileStreams looks for videos older than one hour whose stream work got
// lost, either never copied or copied but never polled to completion, and
// re-enqueues the missing tasks.
func (s *streamReconcilerSrv) ReconcileStreams(ctx context.Context) error {
	cutoff := time.Now().Add(-1 * time.Hour)

	uncopied, err := s.repo.ListUncopiedCompletedBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if len(uncopied) == 0 {
		logger.Info(ctx, "no videos found awaiting a copy")
	}
	for _, id := range uncopied {
		logger.Infof(ctx, "re-enqueueing copy for video #%s", id)
		if err := s.tasks.EnqueueCopyVideo(ctx, port.TaskRef{CollectionSlug: s.slug, DocumentID: id}); err != nil {
			logger.Warnf(ctx, "failed to enqueue copy task for video #%s: %v", id, err)
		}
	}

	pending, err := s.repo.ListPendingStreamsBefore(ctx, cutoff)
	if err != nil {
		return err
	}

	if len(pending) == 0 {
		logger.Info(ctx, "no streams found awaiting a status poll")
	}
	for _, id := range pending {
		logger.Infof(ctx, "re-enqueueing status poll for video #%s", id)
		if err := s.tasks.EnqueueCheckStreamStatus(ctx, port.TaskRef{CollectionSlug: s.slug, DocumentID: id}); err != nil {
			logger.Warnf(ctx, "failed to enqueue status poll for video #%s: %v", id, err)
		}
	}
	return nil
}
