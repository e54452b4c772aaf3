package worker

import (
	"context"
	"errors"
	"log"

	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/task"
	"github.com/fhuszti/streams-ms-go/internal/usecase/stream"
	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

// CheckStreamStatusHandler handles a check-stream-status task. A status
// fetch that failed is returned as an error so the task runner applies its
// own retry budget to this invocation; when processing simply is not done
// yet the checker has already re-queued a fresh task and this one ends
// cleanly.
func CheckStreamStatusHandler(ctx context.Context, p task.StreamTaskPayload, svc port.StreamStatusChecker) error {
	id, err := uuid.Parse(p.DocumentID)
	if err != nil {
		log.Printf("❌  Invalid video ID %q: %v", p.DocumentID, err)
		return err
	}

	ref := port.TaskRef{CollectionSlug: p.CollectionSlug, DocumentID: id}
	out, err := svc.CheckStreamStatus(ctx, ref)
	switch {
	case err == nil:
	case errors.Is(err, stream.ErrVideoNotFound), errors.Is(err, stream.ErrStreamNotClaimed):
		// the record is gone or lost its claim; there is nothing left to poll
		log.Printf("ending status polls for video #%s: %v", id, err)
		return nil
	default:
		log.Printf("❌  Status poll for video #%s failed: %v", id, err)
		return err
	}

	switch {
	case out.Ready:
		log.Printf("✅  Stream of video #%s is ready to play", id)
	case out.Failed:
		log.Printf("❌  Stream of video #%s ended in an error", id)
	case out.Requeued:
		log.Printf("stream of video #%s is still processing, poll re-queued", id)
	default:
		log.Printf("stream of video #%s is still processing but no poll could be re-queued", id)
	}
	return nil
}
