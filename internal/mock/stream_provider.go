package mock

import (
	"context"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
)

// StreamProvider implements port.StreamProvider for tests.
type StreamProvider struct {
	ProviderName string

	CopyOut *port.StreamResult
	CopyErr error

	StatusOut *port.StreamResult
	StatusErr error

	DeleteErr error

	TokenOut string
	TokenErr error

	PlayerOut string
	PlayerErr error

	// captured inputs
	GotCopySrc   port.CopySource
	GotVideoID   string
	GotStream    *model.Stream
	DeletedIDs   []string
	CopyCalled   bool
	StatusCalled bool
	PlayerCalled bool
}

func (m *StreamProvider) Name() string {
	if m.ProviderName == "" {
		return "cloudflare-stream"
	}
	return m.ProviderName
}

func (m *StreamProvider) CopyVideo(ctx context.Context, src port.CopySource) (*port.StreamResult, error) {
	m.CopyCalled = true
	m.GotCopySrc = src
	return m.CopyOut, m.CopyErr
}

func (m *StreamProvider) GetStatus(ctx context.Context, videoID string) (*port.StreamResult, error) {
	m.StatusCalled = true
	m.GotVideoID = videoID
	return m.StatusOut, m.StatusErr
}

func (m *StreamProvider) Delete(ctx context.Context, videoID string) error {
	m.DeletedIDs = append(m.DeletedIDs, videoID)
	return m.DeleteErr
}

func (m *StreamProvider) SignedToken(ctx context.Context, videoID string) (string, error) {
	m.GotVideoID = videoID
	return m.TokenOut, m.TokenErr
}

func (m *StreamProvider) HTMLVideoPlayer(ctx context.Context, stream *model.Stream) (string, error) {
	m.PlayerCalled = true
	m.GotStream = stream
	return m.PlayerOut, m.PlayerErr
}
