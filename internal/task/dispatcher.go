package task

import (
	"context"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/hibiken/asynq"
)

// QueueStreams is the Asynq queue all stream tasks go through.
const QueueStreams = "streams"

type Dispatcher struct {
	client       *asynq.Client
	provider     string
	copyDelay    time.Duration
	pollInterval time.Duration
	maxRetry     int
}

// compile-time check
var _ port.TaskDispatcher = (*Dispatcher)(nil)

func NewDispatcher(addr, password, provider string, copyDelay, pollInterval time.Duration, maxRetry int) *Dispatcher {
	c := asynq.NewClient(asynq.RedisClientOpt{Addr: addr, Password: password})
	return &Dispatcher{
		client:       c,
		provider:     provider,
		copyDelay:    copyDelay,
		pollInterval: pollInterval,
		maxRetry:     maxRetry,
	}
}

// EnqueueCopyVideo schedules a copy after copyDelay, giving the upload a
// moment to settle before the streaming platform fetches it.
func (d *Dispatcher) EnqueueCopyVideo(ctx context.Context, ref port.TaskRef) error {
	t, err := NewCopyVideoTask(d.provider, payloadFor(ref))
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.Queue(QueueStreams), asynq.ProcessIn(d.copyDelay), asynq.MaxRetry(d.maxRetry)); err != nil {
		return err
	}
	return nil
}

// EnqueueCheckStreamStatus schedules the next status poll after pollInterval.
func (d *Dispatcher) EnqueueCheckStreamStatus(ctx context.Context, ref port.TaskRef) error {
	t, err := NewCheckStreamStatusTask(d.provider, payloadFor(ref))
	if err != nil {
		return err
	}
	if _, err := d.client.EnqueueContext(ctx, t, asynq.Queue(QueueStreams), asynq.ProcessIn(d.pollInterval), asynq.MaxRetry(d.maxRetry)); err != nil {
		return err
	}
	return nil
}

func payloadFor(ref port.TaskRef) StreamTaskPayload {
	return StreamTaskPayload{CollectionSlug: ref.CollectionSlug, DocumentID: ref.DocumentID.String()}
}
