package hook

import (
	"context"
	"errors"
	"testing"

	"github.com/fhuszti/streams-ms-go/internal/collection"
	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

type mockUpdater struct {
	called bool
	err    error
}

func (m *mockUpdater) UpdateStreamStatus(ctx context.Context, v *model.Video) error {
	m.called = true
	return m.err
}

type mockRemover struct {
	called bool
}

func (m *mockRemover) RemoveRemoteVideo(ctx context.Context, v *model.Video) {
	m.called = true
}

type mockDispatcher struct {
	copyRefs  []port.TaskRef
	checkRefs []port.TaskRef
	err       error
}

func (m *mockDispatcher) EnqueueCopyVideo(ctx context.Context, ref port.TaskRef) error {
	m.copyRefs = append(m.copyRefs, ref)
	return m.err
}

func (m *mockDispatcher) EnqueueCheckStreamStatus(ctx context.Context, ref port.TaskRef) error {
	m.checkRefs = append(m.checkRefs, ref)
	return m.err
}

func attach() (*collection.Collection, *mockUpdater, *mockRemover, *mockDispatcher) {
	c := collection.New("videos")
	updater := &mockUpdater{}
	remover := &mockRemover{}
	dispatcher := &mockDispatcher{}
	AttachStreamHooks(c, updater, remover, dispatcher)
	return c, updater, remover, dispatcher
}

func videoRecord(mimeType string, stream model.Stream) *model.Video {
	var mt *string
	if mimeType != "" {
		mt = &mimeType
	}
	return &model.Video{
		ID:       uuid.NewUUID(),
		MimeType: mt,
		Status:   model.VideoStatusCompleted,
		Stream:   stream,
	}
}

func TestAfterRead_RefreshesPendingStreams(t *testing.T) {
	tests := []struct {
		name       string
		video      *model.Video
		wantUpdate bool
	}{
		{
			name:       "claimed but not ready gets refreshed",
			video:      videoRecord("video/mp4", model.Stream{VideoID: "cf123"}),
			wantUpdate: true,
		},
		{
			name:       "already ready is left alone",
			video:      videoRecord("video/mp4", model.Stream{VideoID: "cf123", ReadyToStream: true}),
			wantUpdate: false,
		},
		{
			name:       "unclaimed stream has nothing to poll",
			video:      videoRecord("video/mp4", model.Stream{}),
			wantUpdate: false,
		},
		{
			name:       "non-video records are never touched",
			video:      videoRecord("image/png", model.Stream{VideoID: "cf123"}),
			wantUpdate: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, updater, _, _ := attach()

			c.NotifyRead(context.Background(), tc.video)

			if updater.called != tc.wantUpdate {
				t.Errorf("updater called = %v; want %v", updater.called, tc.wantUpdate)
			}
		})
	}
}

func TestAfterRead_SwallowsUpdaterError(t *testing.T) {
	c, updater, _, _ := attach()
	updater.err = errors.New("platform unreachable")

	c.NotifyRead(context.Background(), videoRecord("video/mp4", model.Stream{VideoID: "cf123"}))

	if !updater.called {
		t.Error("expected updater to be called")
	}
}

func TestAfterChange_EnqueuesCopyForNewVideos(t *testing.T) {
	tests := []struct {
		name     string
		video    *model.Video
		wantCopy bool
	}{
		{
			name:     "fresh video gets a copy task",
			video:    videoRecord("video/mp4", model.Stream{}),
			wantCopy: true,
		},
		{
			name:     "claimed stream is not copied twice",
			video:    videoRecord("video/mp4", model.Stream{VideoID: "cf123"}),
			wantCopy: false,
		},
		{
			name:     "non-video records are never copied",
			video:    videoRecord("application/pdf", model.Stream{}),
			wantCopy: false,
		},
		{
			name:     "records with no mime type are skipped",
			video:    videoRecord("", model.Stream{}),
			wantCopy: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, _, _, dispatcher := attach()

			c.NotifyChanged(context.Background(), tc.video)

			if got := len(dispatcher.copyRefs) > 0; got != tc.wantCopy {
				t.Errorf("copy enqueued = %v; want %v", got, tc.wantCopy)
			}
			if tc.wantCopy {
				ref := dispatcher.copyRefs[0]
				if ref.CollectionSlug != "videos" || ref.DocumentID != tc.video.ID {
					t.Errorf("unexpected task ref: %+v", ref)
				}
			}
		})
	}
}

func TestAfterChange_SwallowsEnqueueError(t *testing.T) {
	c, _, _, dispatcher := attach()
	dispatcher.err = errors.New("queue down")

	c.NotifyChanged(context.Background(), videoRecord("video/mp4", model.Stream{}))

	if len(dispatcher.copyRefs) != 1 {
		t.Errorf("expected one enqueue attempt, got %d", len(dispatcher.copyRefs))
	}
}

func TestBeforeDelete_ForwardsToRemover(t *testing.T) {
	c, _, remover, _ := attach()

	c.NotifyDeleting(context.Background(), videoRecord("video/mp4", model.Stream{VideoID: "cf123"}))

	if !remover.called {
		t.Error("expected remover to be called")
	}
}
