package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/streams-ms-go/internal/mock"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/task"
	"github.com/fhuszti/streams-ms-go/internal/usecase/stream"
	msuuid "github.com/fhuszti/streams-ms-go/internal/uuid"
	"github.com/google/uuid"
)

func TestCheckStreamStatusHandler_InvalidID(t *testing.T) {
	svc := &mock.StreamStatusChecker{}
	p := task.StreamTaskPayload{CollectionSlug: "videos", DocumentID: "invalid"}
	err := CheckStreamStatusHandler(context.Background(), p, svc)
	if err == nil {
		t.Fatal("expected error for invalid UUID")
	}
	if svc.Called {
		t.Error("service should not be called on invalid id")
	}
}

func TestCheckStreamStatusHandler_Outcomes(t *testing.T) {
	id := msuuid.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	p := task.StreamTaskPayload{CollectionSlug: "videos", DocumentID: id.String()}

	for name, out := range map[string]*port.CheckStreamStatusOutput{
		"ready":    {Ready: true},
		"failed":   {Failed: true},
		"requeued": {Requeued: true},
		"stalled":  {},
	} {
		svc := &mock.StreamStatusChecker{Out: out}
		if err := CheckStreamStatusHandler(context.Background(), p, svc); err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
		}
		if !svc.Called {
			t.Errorf("%s: service not called", name)
		}
		if svc.GotRef.DocumentID != id {
			t.Errorf("%s: service got id %s; want %s", name, svc.GotRef.DocumentID, id)
		}
	}
}

func TestCheckStreamStatusHandler_GoneRecord(t *testing.T) {
	id := msuuid.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	p := task.StreamTaskPayload{CollectionSlug: "videos", DocumentID: id.String()}

	for _, svcErr := range []error{stream.ErrVideoNotFound, stream.ErrStreamNotClaimed} {
		svc := &mock.StreamStatusChecker{Err: svcErr}
		if err := CheckStreamStatusHandler(context.Background(), p, svc); err != nil {
			t.Errorf("%v: got error %v; want nil so the task is not retried", svcErr, err)
		}
	}
}

func TestCheckStreamStatusHandler_TransientError(t *testing.T) {
	id := msuuid.UUID(uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee"))
	svcErr := errors.New("platform unreachable")
	svc := &mock.StreamStatusChecker{Err: svcErr}

	p := task.StreamTaskPayload{CollectionSlug: "videos", DocumentID: id.String()}
	err := CheckStreamStatusHandler(context.Background(), p, svc)
	if !errors.Is(err, svcErr) {
		t.Fatalf("got error %v; want %v", err, svcErr)
	}
}
