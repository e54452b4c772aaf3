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

// CopyVideoHandler handles a copy-video task. It converts the incoming task
// payload to the ref expected by the stream.StreamCopier service and
// delegates the call. Outcomes the copier reported as settled are not
// returned as errors, so the task runner never retries them: the record
// already carries whatever state the copy ended in.
func CopyVideoHandler(ctx context.Context, p task.StreamTaskPayload, svc port.StreamCopier) error {
	id, err := uuid.Parse(p.DocumentID)
	if err != nil {
		log.Printf("❌  Invalid video ID %q: %v", p.DocumentID, err)
		return err
	}

	ref := port.TaskRef{CollectionSlug: p.CollectionSlug, DocumentID: id}
	switch err := svc.CopyVideoToStream(ctx, ref); {
	case err == nil:
		log.Printf("✅  Successfully copied video #%s to the streaming platform", id)
		return nil
	case errors.Is(err, stream.ErrVideoNotFound),
		errors.Is(err, stream.ErrNotStreamable),
		errors.Is(err, stream.ErrStreamAlreadyClaimed):
		log.Printf("skipping copy of video #%s: %v", id, err)
		return nil
	case errors.Is(err, stream.ErrCopyFailed):
		// the failure is persisted on the record; retrying the task would
		// only repeat a copy the platform already rejected
		log.Printf("❌  Copy of video #%s failed: %v", id, err)
		return nil
	default:
		log.Printf("❌  Failed to copy video #%s: %v", id, err)
		return err
	}
}
