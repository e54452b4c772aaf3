package stream

import (
	"context"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
	msuuid "github.com/fhuszti/streams-ms-go/internal/uuid"
)

type mockRepo struct {
	videoRecord *model.Video
	getErr      error

	patchedID msuuid.UUID
	patches   []model.StreamPatch
	patchErr  error

	claimedID msuuid.UUID
	claims    []model.StreamPatch
	claimErr  error

	uncopiedIDs []msuuid.UUID
	pendingIDs  []msuuid.UUID
	listErr     error
}

func (m *mockRepo) Create(ctx context.Context, v *model.Video) error { return nil }
func (m *mockRepo) Update(ctx context.Context, v *model.Video) error { return nil }
func (m *mockRepo) GetByID(ctx context.Context, id msuuid.UUID) (*model.Video, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.videoRecord, nil
}
func (m *mockRepo) Delete(ctx context.Context, id msuuid.UUID) error { return nil }
func (m *mockRepo) PatchStream(ctx context.Context, id msuuid.UUID, p model.StreamPatch) error {
	if m.patchErr != nil {
		return m.patchErr
	}
	m.patchedID = id
	m.patches = append(m.patches, p)
	return nil
}
func (m *mockRepo) ClaimStream(ctx context.Context, id msuuid.UUID, p model.StreamPatch) error {
	if m.claimErr != nil {
		return m.claimErr
	}
	m.claimedID = id
	m.claims = append(m.claims, p)
	return nil
}
func (m *mockRepo) ListUncopiedCompletedBefore(ctx context.Context, before time.Time) ([]msuuid.UUID, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.uncopiedIDs, nil
}
func (m *mockRepo) ListPendingStreamsBefore(ctx context.Context, before time.Time) ([]msuuid.UUID, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.pendingIDs, nil
}

type mockProvider struct {
	copyResult *port.StreamResult
	copyErr    error
	copySrc    port.CopySource
	copyCalled bool

	statusResult *port.StreamResult
	statusErr    error
	statusID     string
	statusCalled bool

	deleted   []string
	deleteErr error
}

func (m *mockProvider) Name() string { return "cloudflare-stream" }
func (m *mockProvider) CopyVideo(ctx context.Context, src port.CopySource) (*port.StreamResult, error) {
	m.copyCalled = true
	m.copySrc = src
	if m.copyErr != nil {
		return nil, m.copyErr
	}
	return m.copyResult, nil
}
func (m *mockProvider) GetStatus(ctx context.Context, videoID string) (*port.StreamResult, error) {
	m.statusCalled = true
	m.statusID = videoID
	if m.statusErr != nil {
		return nil, m.statusErr
	}
	return m.statusResult, nil
}
func (m *mockProvider) Delete(ctx context.Context, videoID string) error {
	m.deleted = append(m.deleted, videoID)
	return m.deleteErr
}
func (m *mockProvider) SignedToken(ctx context.Context, videoID string) (string, error) {
	return "tok", nil
}
func (m *mockProvider) HTMLVideoPlayer(ctx context.Context, s *model.Stream) (string, error) {
	return "", nil
}

type mockResolver struct {
	url string
	err error

	rawURL  string
	baseURL string
	signed  bool
}

func (m *mockResolver) Resolve(ctx context.Context, rawURL, baseURL string, requireSignedURL bool) (string, error) {
	m.rawURL = rawURL
	m.baseURL = baseURL
	m.signed = requireSignedURL
	return m.url, m.err
}

type mockDispatcher struct {
	copyRefs  []port.TaskRef
	checkRefs []port.TaskRef
	copyErr   error
	checkErr  error
}

func (m *mockDispatcher) EnqueueCopyVideo(ctx context.Context, ref port.TaskRef) error {
	if m.copyErr != nil {
		return m.copyErr
	}
	m.copyRefs = append(m.copyRefs, ref)
	return nil
}
func (m *mockDispatcher) EnqueueCheckStreamStatus(ctx context.Context, ref port.TaskRef) error {
	if m.checkErr != nil {
		return m.checkErr
	}
	m.checkRefs = append(m.checkRefs, ref)
	return nil
}

type mockUpdater struct {
	err    error
	apply  func(v *model.Video)
	called bool
}

func (m *mockUpdater) UpdateStreamStatus(ctx context.Context, v *model.Video) error {
	m.called = true
	if m.err != nil {
		return m.err
	}
	if m.apply != nil {
		m.apply(v)
	}
	return nil
}
