package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/fhuszti/streams-ms-go/internal/collection"
	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

type uploadFinaliserSrv struct {
	repo          port.VideoRepository
	strg          port.Storage
	coll          *collection.Collection
	stagingBucket string
	videosBucket  string
}

// compile-time check: *uploadFinaliserSrv must satisfy port.UploadFinaliser
var _ port.UploadFinaliser = (*uploadFinaliserSrv)(nil)

// NewUploadFinaliser constructs an UploadFinaliser implementation.
func NewUploadFinaliser(repo port.VideoRepository, strg port.Storage, coll *collection.Collection, stagingBucket, videosBucket string) port.UploadFinaliser {
	return &uploadFinaliserSrv{repo: repo, strg: strg, coll: coll, stagingBucket: stagingBucket, videosBucket: videosBucket}
}

// FinaliseUpload validates the staged file and moves it to the videos
// bucket. Change hooks only fire once the record is completed, so a video
// is never handed to the streaming platform before its file settled.
func (s *uploadFinaliserSrv) FinaliseUpload(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	if video.Status == model.VideoStatusCompleted {
		return video, nil
	}
	if video.Status != model.VideoStatusPending {
		return nil, errors.New("video status should be 'pending' to be finalised")
	}

	// moveFile rewrites the object key, so keep the staging one around for cleanup
	stagingKey := video.ObjectKey

	var finalErr error
	defer func() {
		if finalErr != nil {
			if err := s.cleanupFile(stagingKey); err != nil {
				log.Printf("cleanup failed for file %q: %v", stagingKey, err)
			}
			if markErr := s.markAsFailed(ctx, video, finalErr.Error()); markErr != nil {
				log.Printf("markAsFailed failed for file %q: %v", stagingKey, markErr)
			}
		}
	}()

	info, err := s.strg.StatFile(ctx, s.stagingBucket, stagingKey)
	if err != nil {
		if errors.Is(err, ErrObjectNotFound) {
			finalErr = fmt.Errorf("staging file %q not found", stagingKey)
		} else {
			finalErr = fmt.Errorf("stats for file %q failed: %w", stagingKey, err)
		}
		return nil, finalErr
	}

	if info.SizeBytes < MinFileSize {
		finalErr = fmt.Errorf("file %q too small: %d bytes (min size: %d bytes)", stagingKey, info.SizeBytes, MinFileSize)
		return nil, finalErr
	}
	if info.SizeBytes > MaxFileSize {
		finalErr = fmt.Errorf("file %q too large: %d bytes (max size: %d bytes)", stagingKey, info.SizeBytes, MaxFileSize)
		return nil, finalErr
	}

	if !IsMimeTypeAllowed(info.ContentType) {
		finalErr = fmt.Errorf("unsupported mime-type %q for file %q", info.ContentType, stagingKey)
		return nil, finalErr
	}

	if err := s.moveFile(ctx, video, info.SizeBytes, info.ContentType); err != nil {
		finalErr = fmt.Errorf("move file %q from staging to bucket %q failed: %w", stagingKey, s.videosBucket, err)
		return nil, finalErr
	}

	s.coll.NotifyChanged(ctx, video)

	return video, nil
}

func (s *uploadFinaliserSrv) cleanupFile(objectKey string) error {
	return s.strg.RemoveFile(context.Background(), s.stagingBucket, objectKey)
}

func (s *uploadFinaliserSrv) markAsFailed(ctx context.Context, video *model.Video, reason string) error {
	video.Status = model.VideoStatusFailed
	video.FailureMessage = &reason

	return s.repo.Update(ctx, video)
}

func (s *uploadFinaliserSrv) moveFile(ctx context.Context, video *model.Video, size int64, contentType string) error {
	ext, err := MimeTypeToExtension(contentType)
	if err != nil {
		return err
	}
	newObjectKey := fmt.Sprintf("%s%s", video.ObjectKey, ext)

	if err := s.strg.CopyFile(ctx, s.stagingBucket, video.ObjectKey, s.videosBucket, newObjectKey); err != nil {
		return err
	}

	if err := s.strg.RemoveFile(ctx, s.stagingBucket, video.ObjectKey); err != nil {
		log.Printf("failed to clean up file %q in staging: %v", video.ObjectKey, err)
	}

	video.ObjectKey = newObjectKey
	video.Bucket = s.videosBucket
	video.Status = model.VideoStatusCompleted
	video.SizeBytes = &size
	video.MimeType = &contentType
	video.URL = fmt.Sprintf("/videos/%s/file", video.ID)
	if err := s.repo.Update(ctx, video); err != nil {
		return fmt.Errorf("failed updating video: %w", err)
	}

	return nil
}
