package mock

import (
	"context"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

// VideoGetter implements port.VideoGetter for tests.
type VideoGetter struct {
	Out    *port.GetVideoOutput
	Err    error
	Called bool
	GotID  uuid.UUID
}

func (m *VideoGetter) GetVideo(ctx context.Context, id uuid.UUID) (*port.GetVideoOutput, error) {
	m.Called = true
	m.GotID = id
	return m.Out, m.Err
}

// VideoDeleter implements port.VideoDeleter for tests.
type VideoDeleter struct {
	Err    error
	Called bool
	GotID  uuid.UUID
}

func (m *VideoDeleter) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	m.Called = true
	m.GotID = id
	return m.Err
}

// UploadLinkGenerator implements port.UploadLinkGenerator for tests.
type UploadLinkGenerator struct {
	Out    port.GenerateUploadLinkOutput
	Err    error
	Called bool
	GotIn  port.GenerateUploadLinkInput
}

func (m *UploadLinkGenerator) GenerateUploadLink(ctx context.Context, in port.GenerateUploadLinkInput) (port.GenerateUploadLinkOutput, error) {
	m.Called = true
	m.GotIn = in
	return m.Out, m.Err
}

// UploadFinaliser implements port.UploadFinaliser for tests.
type UploadFinaliser struct {
	Out    *model.Video
	Err    error
	Called bool
	GotID  uuid.UUID
}

func (m *UploadFinaliser) FinaliseUpload(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	m.Called = true
	m.GotID = id
	return m.Out, m.Err
}

// StreamCopier implements port.StreamCopier for tests.
type StreamCopier struct {
	Err    error
	Called bool
	GotRef port.TaskRef
}

func (m *StreamCopier) CopyVideoToStream(ctx context.Context, ref port.TaskRef) error {
	m.Called = true
	m.GotRef = ref
	return m.Err
}

// StreamStatusChecker implements port.StreamStatusChecker for tests.
type StreamStatusChecker struct {
	Out    *port.CheckStreamStatusOutput
	Err    error
	Called bool
	GotRef port.TaskRef
}

func (m *StreamStatusChecker) CheckStreamStatus(ctx context.Context, ref port.TaskRef) (*port.CheckStreamStatusOutput, error) {
	m.Called = true
	m.GotRef = ref
	return m.Out, m.Err
}

// StreamReconciler implements port.StreamReconciler for tests.
type StreamReconciler struct {
	Err    error
	Called bool
}

func (m *StreamReconciler) ReconcileStreams(ctx context.Context) error {
	m.Called = true
	return m.Err
}
