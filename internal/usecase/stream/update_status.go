package stream

import (
	"context"
	"fmt"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
)

type statusUpdaterSrv struct {
	repo     port.VideoRepository
	provider port.StreamProvider
}

// compile-time check: *statusUpdaterSrv must satisfy port.StreamStatusUpdater
var _ port.StreamStatusUpdater = (*statusUpdaterSrv)(nil)

// NewStreamStatusUpdater constructs a StreamStatusUpdater implementation.
func NewStreamStatusUpdater(repo port.VideoRepository, provider port.StreamProvider) port.StreamStatusUpdater {
	return &statusUpdaterSrv{repo, provider}
}

// UpdateStreamStatus asks the platform where processing stands and persists
// the descriptive fields the response carries. video.Stream is refreshed in
// place so the caller can branch on it. When the platform cannot be reached
// nothing is persisted and the error is returned: status unknown, try later.
func (s *statusUpdaterSrv) UpdateStreamStatus(ctx context.Context, video *model.Video) error {
	if !video.Stream.Claimed() {
		return ErrStreamNotClaimed
	}

	result, err := s.provider.GetStatus(ctx, video.Stream.VideoID)
	if err != nil {
		return fmt.Errorf("could not fetch status of stream %q: %w", video.Stream.VideoID, err)
	}

	// once a stream has been seen ready it never goes back
	ready := result.ReadyToStream || video.Stream.ReadyToStream

	errText := result.ErrorReason
	if ready {
		errText = ""
	}

	provider := s.provider.Name()
	patch := model.StreamPatch{
		Provider:          &provider,
		ReadyToStream:     &ready,
		RequireSignedURLs: &result.RequireSignedURLs,
		Error:             &errText,
	}
	if result.ReadyToStreamAt != nil {
		patch.ReadyToStreamAt = result.ReadyToStreamAt
	}
	if result.DurationInSeconds != nil {
		patch.DurationInSeconds = result.DurationInSeconds
	}
	if result.Width != nil {
		patch.Width = result.Width
	}
	if result.Height != nil {
		patch.Height = result.Height
	}
	if result.SizeBytes != nil {
		patch.SizeBytes = result.SizeBytes
	}
	if result.ThumbnailURL != "" {
		patch.ThumbnailURL = &result.ThumbnailURL
	}

	if err := s.repo.PatchStream(ctx, video.ID, patch); err != nil {
		return err
	}

	video.Stream.Apply(patch)
	return nil
}
