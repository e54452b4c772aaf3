package port

import (
	"context"

	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

// TaskRef identifies the record a deferred task should operate on.
type TaskRef struct {
	CollectionSlug string
	DocumentID     uuid.UUID
}

// TaskDispatcher enqueues asynchronous tasks related to stream processing.
type TaskDispatcher interface {
	// EnqueueCopyVideo schedules a copy of the record's file to the
	// streaming platform, after the configured copy delay.
	EnqueueCopyVideo(ctx context.Context, ref TaskRef) error
	// EnqueueCheckStreamStatus schedules a status poll for the record's
	// platform video, after the configured poll interval.
	EnqueueCheckStreamStatus(ctx context.Context, ref TaskRef) error
}
