package video

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/fhuszti/streams-ms-go/internal/collection"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

type videoDeleterSrv struct {
	repo  port.VideoRepository
	cache port.Cache
	strg  port.Storage
	coll  *collection.Collection
}

// compile-time check: *videoDeleterSrv must satisfy port.VideoDeleter
var _ port.VideoDeleter = (*videoDeleterSrv)(nil)

// NewVideoDeleter constructs a VideoDeleter implementation.
func NewVideoDeleter(repo port.VideoRepository, cache port.Cache, strg port.Storage, coll *collection.Collection) port.VideoDeleter {
	return &videoDeleterSrv{repo: repo, cache: cache, strg: strg, coll: coll}
}

// DeleteVideo lets delete hooks drop the platform copy first, then removes
// the file from storage, deletes the DB record and clears cache. Hook
// failures never block the local delete.
func (s *videoDeleterSrv) DeleteVideo(ctx context.Context, id uuid.UUID) error {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrObjectNotFound
		}
		return err
	}

	s.coll.NotifyDeleting(ctx, video)

	if err := s.strg.RemoveFile(ctx, video.Bucket, video.ObjectKey); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, video.ID); err != nil {
		return err
	}

	if err := s.cache.DeleteVideoDetails(ctx, video.ID); err != nil {
		log.Printf("failed deleting cache for video #%s: %v", video.ID, err)
	}
	if err := s.cache.DeleteEtagVideoDetails(ctx, video.ID); err != nil {
		log.Printf("failed deleting etag cache for video #%s: %v", video.ID, err)
	}

	return nil
}
