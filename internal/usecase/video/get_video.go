package video

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/collection"
	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
	"github.com/fhuszti/streams-ms-go/internal/uuid"
)

const downloadLinkTTL = time.Hour

type videoGetterSrv struct {
	repo port.VideoRepository
	strg port.Storage
	coll *collection.Collection
}

// compile-time check: *videoGetterSrv must satisfy port.VideoGetter
var _ port.VideoGetter = (*videoGetterSrv)(nil)

// NewVideoGetter constructs a VideoGetter implementation.
func NewVideoGetter(repo port.VideoRepository, strg port.Storage, coll *collection.Collection) port.VideoGetter {
	return &videoGetterSrv{repo: repo, strg: strg, coll: coll}
}

// GetVideo returns a presigned download link and the stream details of a
// completed video. Read hooks run before the output is built, so the
// response carries the freshest stream state known.
func (s *videoGetterSrv) GetVideo(ctx context.Context, id uuid.UUID) (*port.GetVideoOutput, error) {
	video, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	if video.Status != model.VideoStatusCompleted {
		return nil, errors.New("video status should be 'completed' to be returned")
	}

	s.coll.NotifyRead(ctx, video)

	url, err := s.strg.GeneratePresignedDownloadURL(ctx, video.Bucket, video.ObjectKey, downloadLinkTTL)
	if err != nil {
		return nil, err
	}

	meta := port.VideoMetadataOutput{OriginalFilename: video.OriginalFilename}
	if video.MimeType != nil {
		meta.MimeType = *video.MimeType
	}
	if video.SizeBytes != nil {
		meta.SizeBytes = *video.SizeBytes
	}

	return &port.GetVideoOutput{
		ValidUntil: time.Now().UTC().Add(downloadLinkTTL),
		Cacheable:  !video.IsVideo() || video.Stream.ReadyToStream || video.Stream.Failed(),
		URL:        url,
		Metadata:   meta,
		Stream:     video.Stream,
	}, nil
}
