package task

import (
	"context"

	"github.com/fhuszti/streams-ms-go/internal/port"
)

// NoopDispatcher stands in when no task backend is configured; records then
// only move forward through the reconciler or manual status refreshes.
type NoopDispatcher struct{}

var _ port.TaskDispatcher = (*NoopDispatcher)(nil)

func NewNoopDispatcher() *NoopDispatcher { return &NoopDispatcher{} }

func (d *NoopDispatcher) EnqueueCopyVideo(ctx context.Context, ref port.TaskRef) error {
	return nil
}

func (d *NoopDispatcher) EnqueueCheckStreamStatus(ctx context.Context, ref port.TaskRef) error {
	return nil
}
