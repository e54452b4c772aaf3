package mock

import (
	"context"

	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

// HTTPRenderer implements port.HTTPRenderer for tests.
type HTTPRenderer struct {
	// stored values
	VideoOut []byte

	// etag values
	EtagVideo string

	// captured inputs
	GotVideoID uuid.UUID

	// errors
	GetVideoErr error

	// call flags
	GetVideoCalled bool
}

func (m *HTTPRenderer) RenderGetVideo(ctx context.Context, getter port.VideoGetter, id uuid.UUID) ([]byte, string, error) {
	m.GetVideoCalled = true
	m.GotVideoID = id
	return m.VideoOut, m.EtagVideo, m.GetVideoErr
}
