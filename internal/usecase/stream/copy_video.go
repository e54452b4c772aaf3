package stream

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
)

// CopyErrorMessage is persisted on the stream sub-record when the platform
// rejects or fails a copy. Admins see it verbatim.
const CopyErrorMessage = "Error copying video to streaming service"

type streamCopierSrv struct {
	repo       port.VideoRepository
	provider   port.StreamProvider
	resolver   port.SourceResolver
	tasks      port.TaskDispatcher
	baseURL    string
	signedURLs bool
}

// compile-time check: *streamCopierSrv must satisfy port.StreamCopier
var _ port.StreamCopier = (*streamCopierSrv)(nil)

// NewStreamCopier constructs a StreamCopier implementation.
func NewStreamCopier(repo port.VideoRepository, provider port.StreamProvider, resolver port.SourceResolver, tasks port.TaskDispatcher, baseURL string, signedURLs bool) port.StreamCopier {
	return &streamCopierSrv{repo, provider, resolver, tasks, baseURL, signedURLs}
}

// CopyVideoToStream hands the record's file to the streaming platform and
// records the outcome on the stream sub-record. Only completed video records
// qualify; records that already carry a platform copy, or whose last copy
// failed, are left alone. A platform failure is persisted as the stream
// error and reported as ErrCopyFailed so callers know not to retry.
func (s *streamCopierSrv) CopyVideoToStream(ctx context.Context, ref port.TaskRef) error {
	video, err := s.repo.GetByID(ctx, ref.DocumentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrVideoNotFound
		}
		return err
	}

	if !video.Streamable() {
		return ErrNotStreamable
	}
	if video.Stream.Claimed() {
		return ErrStreamAlreadyClaimed
	}
	if video.Stream.Failed() {
		return ErrCopyFailed
	}

	srcURL, err := s.resolver.Resolve(ctx, video.URL, s.baseURL, s.signedURLs)
	if err != nil {
		return fmt.Errorf("could not resolve source URL for video #%s: %w", video.ID, err)
	}

	result, err := s.provider.CopyVideo(ctx, port.CopySource{
		URL:               srcURL,
		Name:              video.OriginalFilename,
		RequireSignedURLs: s.signedURLs,
	})
	if err != nil {
		log.Printf("platform rejected the copy for video #%s: %v", video.ID, err)
		return s.markCopyFailed(ctx, video)
	}

	if err := s.recordCopy(ctx, video, result); err != nil {
		return err
	}

	if err := s.tasks.EnqueueCheckStreamStatus(ctx, ref); err != nil {
		log.Printf("failed to enqueue status poll for video #%s: %v", video.ID, err)
	}
	return nil
}

func (s *streamCopierSrv) markCopyFailed(ctx context.Context, video *model.Video) error {
	msg := CopyErrorMessage
	err := s.repo.ClaimStream(ctx, video.ID, model.StreamPatch{Error: &msg})
	if err != nil && !errors.Is(err, ErrStreamAlreadyClaimed) {
		return err
	}
	return ErrCopyFailed
}

// recordCopy claims the stream sub-record for the platform copy. Losing the
// claim means another copy won the race, so the fresh platform video is an
// orphan and gets deleted remotely.
func (s *streamCopierSrv) recordCopy(ctx context.Context, video *model.Video, result *port.StreamResult) error {
	provider := s.provider.Name()
	patch := model.StreamPatch{
		VideoID:           &result.VideoID,
		Provider:          &provider,
		ReadyToStream:     &result.ReadyToStream,
		RequireSignedURLs: &result.RequireSignedURLs,
		ThumbnailURL:      &result.ThumbnailURL,
	}

	err := s.repo.ClaimStream(ctx, video.ID, patch)
	if err == nil {
		return nil
	}

	log.Printf("could not record stream %q for video #%s: %v", result.VideoID, video.ID, err)
	if delErr := s.provider.Delete(ctx, result.VideoID); delErr != nil {
		log.Printf("failed to delete orphaned stream %q: %v", result.VideoID, delErr)
	}
	return err
}
