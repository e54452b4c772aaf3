package stream

import (
	"context"
	"log"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
)

type streamRemoverSrv struct {
	provider port.StreamProvider
}

// compile-time check: *streamRemoverSrv must satisfy port.StreamRemover
var _ port.StreamRemover = (*streamRemoverSrv)(nil)

// NewStreamRemover constructs a StreamRemover implementation.
func NewStreamRemover(provider port.StreamProvider) port.StreamRemover {
	return &streamRemoverSrv{provider}
}

// RemoveRemoteVideo deletes the platform copy of a record, when one exists.
// Failures are logged and swallowed: an orphan left on the platform must
// never block deleting the record itself.
func (s *streamRemoverSrv) RemoveRemoteVideo(ctx context.Context, video *model.Video) {
	if !video.Stream.Claimed() {
		return
	}

	log.Printf("removing stream %q of video #%s from the platform...", video.Stream.VideoID, video.ID)
	if err := s.provider.Delete(ctx, video.Stream.VideoID); err != nil {
		log.Printf("failed to remove stream %q from the platform: %v", video.Stream.VideoID, err)
	}
}
