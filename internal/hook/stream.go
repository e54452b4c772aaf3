package hook

import (
	"context"
	"log"

	"github.com/fhuszti/streams-ms-go/internal/collection"
	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
)

// AttachStreamHooks binds the streaming side effects to a videos collection:
// fetching a record refreshes its processing status, finalising one schedules
// the copy to the streaming platform, deleting one removes the remote copy.
func AttachStreamHooks(c *collection.Collection, updater port.StreamStatusUpdater, remover port.StreamRemover, dispatcher port.TaskDispatcher) {
	c.OnAfterRead(refreshStatusHook(updater))
	c.OnAfterChange(enqueueCopyHook(c.Slug, dispatcher))
	c.OnBeforeDelete(removeRemoteHook(remover))
}

// refreshStatusHook polls the platform for records whose stream was copied
// but is not ready yet, so reads surface fresh state without a worker.
func refreshStatusHook(updater port.StreamStatusUpdater) collection.Hook {
	return func(ctx context.Context, v *model.Video) {
		if v.Stream.ReadyToStream || !v.Stream.Claimed() || !v.IsVideo() {
			return
		}
		if err := updater.UpdateStreamStatus(ctx, v); err != nil {
			log.Printf("failed to refresh stream status for video #%s: %v", v.ID, err)
		}
	}
}

// enqueueCopyHook schedules the copy for video records that have no stream
// on the platform yet.
func enqueueCopyHook(slug string, dispatcher port.TaskDispatcher) collection.Hook {
	return func(ctx context.Context, v *model.Video) {
		if v.Stream.ReadyToStream || v.Stream.Claimed() || !v.IsVideo() {
			return
		}
		ref := port.TaskRef{CollectionSlug: slug, DocumentID: v.ID}
		if err := dispatcher.EnqueueCopyVideo(ctx, ref); err != nil {
			log.Printf("failed to enqueue copy task for video #%s: %v", v.ID, err)
		}
	}
}

func removeRemoteHook(remover port.StreamRemover) collection.Hook {
	return func(ctx context.Context, v *model.Video) {
		remover.RemoveRemoteVideo(ctx, v)
	}
}
