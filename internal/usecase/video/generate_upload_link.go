package video

import (
	"context"
	"time"

	"github.com/fhuszti/streams-ms-go/internal/model"
	"github.com/fhuszti/streams-ms-go/internal/port"
)

const uploadLinkTTL = 5 * time.Minute

type uploadLinkGeneratorSrv struct {
	repo          port.VideoRepository
	strg          port.Storage
	genUUID       port.UUIDGen
	stagingBucket string
}

// compile-time check: *uploadLinkGeneratorSrv must satisfy port.UploadLinkGenerator
var _ port.UploadLinkGenerator = (*uploadLinkGeneratorSrv)(nil)

// NewUploadLinkGenerator constructs an UploadLinkGenerator implementation.
func NewUploadLinkGenerator(repo port.VideoRepository, strg port.Storage, genUUID port.UUIDGen, stagingBucket string) port.UploadLinkGenerator {
	return &uploadLinkGeneratorSrv{repo: repo, strg: strg, genUUID: genUUID, stagingBucket: stagingBucket}
}

// GenerateUploadLink creates a pending record and returns a presigned PUT
// link pointing at the staging bucket. The object key is the record ID,
// so two uploads can never collide on a name.
func (s *uploadLinkGeneratorSrv) GenerateUploadLink(ctx context.Context, in port.GenerateUploadLinkInput) (port.GenerateUploadLinkOutput, error) {
	id := s.genUUID()
	video := &model.Video{
		ID:               id,
		ObjectKey:        id.String(),
		Bucket:           s.stagingBucket,
		OriginalFilename: in.Name,
		Status:           model.VideoStatusPending,
	}

	if err := s.repo.Create(ctx, video); err != nil {
		return port.GenerateUploadLinkOutput{}, err
	}

	url, err := s.strg.GeneratePresignedUploadURL(ctx, s.stagingBucket, video.ObjectKey, uploadLinkTTL)
	if err != nil {
		return port.GenerateUploadLinkOutput{}, err
	}

	return port.GenerateUploadLinkOutput{
		ID:  video.ID,
		URL: url,
	}, nil
}
