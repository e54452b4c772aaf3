package stream

import (
	"database/sql"
	"errors"
	"log"

	"golang.org/x/net/context"

	"github.com/fhuszti/streams-ms-go/internal/port"
)

type statusCheckerSrv struct {
	repo    port.VideoRepository
	updater port.StreamStatusUpdater
	tasks   port.TaskDispatcher
}

// compile-time check: *statusCheckerSrv must satisfy port.StreamStatusChecker
var _ port.StreamStatusChecker = (*statusCheckerSrv)(nil)

// NewStreamStatusChecker constructs a StreamStatusChecker implementation.
func NewStreamStatusChecker(repo port.VideoRepository, updater port.StreamStatusUpdater, tasks port.TaskDispatcher) port.StreamStatusChecker {
	return &statusCheckerSrv{repo, updater, tasks}
}

// CheckStreamStatus runs one turn of the polling loop for a record. A stream
// that is ready, or that carries an error, ends the loop. Otherwise the
// status is refreshed and, if processing is still underway, an equivalent
// task is re-queued. A failed re-queue is logged and left for reconciliation.
func (s *statusCheckerSrv) CheckStreamStatus(ctx context.Context, ref port.TaskRef) (*port.CheckStreamStatusOutput, error) {
	video, err := s.repo.GetByID(ctx, ref.DocumentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}

	if !video.Stream.Claimed() {
		return nil, ErrStreamNotClaimed
	}
	if video.Stream.ReadyToStream {
		return &port.CheckStreamStatusOutput{Ready: true}, nil
	}
	if video.Stream.Failed() {
		return &port.CheckStreamStatusOutput{Failed: true}, nil
	}

	if err := s.updater.UpdateStreamStatus(ctx, video); err != nil {
		return nil, err
	}

	if video.Stream.ReadyToStream {
		return &port.CheckStreamStatusOutput{Ready: true}, nil
	}
	if video.Stream.Failed() {
		return &port.CheckStreamStatusOutput{Failed: true}, nil
	}

	if err := s.tasks.EnqueueCheckStreamStatus(ctx, ref); err != nil {
		log.Printf("failed to re-queue status poll for video #%s: %v", video.ID, err)
		return &port.CheckStreamStatusOutput{}, nil
	}
	return &port.CheckStreamStatusOutput{Requeued: true}, nil
}
